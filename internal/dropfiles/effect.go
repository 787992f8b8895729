package dropfiles

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Operation is what the receiver of a file drop should do with the files.
// The zero value means "not determined" and is never a valid operation.
type Operation int

const (
	Copy Operation = iota + 1
	Cut
)

// Valid reports whether o is Copy or Cut.
func (o Operation) Valid() bool { return o == Copy || o == Cut }

func (o Operation) String() string {
	switch o {
	case Copy:
		return "copy"
	case Cut:
		return "cut"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// ParseOperation parses "copy" or "cut" (case-insensitive). "move" is
// accepted as a synonym for cut.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copy":
		return Copy, nil
	case "cut", "move":
		return Cut, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOperation, s)
}

// Effect returns the drop effect written for o.
func (o Operation) Effect() DropEffect {
	switch o {
	case Copy:
		return EffectCopy
	case Cut:
		return EffectMove
	}
	return EffectNone
}

// DropEffect is the bit set stored in the "Preferred DropEffect" format.
type DropEffect uint32

const (
	EffectNone DropEffect = 0
	EffectCopy DropEffect = 0x1
	EffectMove DropEffect = 0x2
	EffectLink DropEffect = 0x4
)

// EffectSize is the encoded size of a DropEffect.
const EffectSize = 4

// Operation maps e back to an Operation. Copy is checked first, so a value
// carrying both the copy and move bits is a copy, following the shell.
func (e DropEffect) Operation() (Operation, bool) {
	switch {
	case e&EffectCopy != 0:
		return Copy, true
	case e&EffectMove != 0:
		return Cut, true
	}
	return 0, false
}

func (e DropEffect) bytes() []byte {
	b := make([]byte, EffectSize)
	binary.LittleEndian.PutUint32(b, uint32(e))
	return b
}

func parseEffect(b []byte) (DropEffect, bool) {
	if len(b) < EffectSize {
		return EffectNone, false
	}
	return DropEffect(binary.LittleEndian.Uint32(b)), true
}
