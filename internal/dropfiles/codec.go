// Package dropfiles encodes and decodes the clipboard representation of a
// cut or copied list of files.
//
// A transfer is two blobs written side by side:
//
//	files   Header, then each path as a NUL-terminated UTF-16 string,
//	        then one empty string ending the list
//	effect  4-byte little-endian DropEffect (copy 0x1, move 0x2)
//
// Both are plain values; writing them to a store under the file-drop and
// "Preferred DropEffect" formats is the caller's job, and both writes must
// happen while holding a single store acquisition.
package dropfiles

import (
	"errors"
	"fmt"
	"strings"

	"go.klb.dev/winclip/internal/textenc"
	"go.klb.dev/winclip/internal/wire"
)

var (
	// ErrInvalidOperation is returned when a Descriptor's Op is neither Copy
	// nor Cut.
	ErrInvalidOperation = errors.New("dropfiles: invalid operation type")

	// ErrInvalidPath is returned for paths that cannot be stored in a NUL
	// separated list: empty paths and paths containing NUL.
	ErrInvalidPath = errors.New("dropfiles: invalid path")

	// ErrUnknownOperation is returned by Decode when the effect blob is
	// missing, short, or carries neither the copy nor the move bit.
	ErrUnknownOperation = errors.New("dropfiles: unknown drop effect")

	// ErrMissingFiles is returned by Decode when there is no files blob.
	ErrMissingFiles = errors.New("dropfiles: missing file list")

	// ErrMalformed is returned by Decode when the files blob is too short for
	// its header or points outside itself.
	ErrMalformed = errors.New("dropfiles: malformed file list")
)

// Descriptor is one cut or copy of an ordered list of files. Paths are UTF-8.
type Descriptor struct {
	Op    Operation
	Files []string
}

// NewDescriptor validates op and returns a Descriptor for files. Files is
// never nil in the result.
func NewDescriptor(op Operation, files ...string) (Descriptor, error) {
	if !op.Valid() {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidOperation, op)
	}
	d := Descriptor{Op: op, Files: make([]string, len(files))}
	copy(d.Files, files)
	return d, nil
}

// Encode serializes d into the files and effect blobs, using wide strings.
func Encode(d Descriptor) (files, effect wire.Blob, err error) {
	if !d.Op.Valid() {
		return wire.Blob{}, wire.Blob{}, fmt.Errorf("%w: %v", ErrInvalidOperation, d.Op)
	}

	hdr, err := newHeader().MarshalBinary()
	if err != nil {
		return wire.Blob{}, wire.Blob{}, err
	}

	size := HeaderSize + 2
	for _, f := range d.Files {
		size += 2 * (len(f) + 1)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, hdr...)

	for i, f := range d.Files {
		if f == "" || strings.IndexByte(f, 0) >= 0 {
			return wire.Blob{}, wire.Blob{}, fmt.Errorf("%w: file %d %q", ErrInvalidPath, i, f)
		}
		w, err := textenc.Default.UTF8ToWide(f)
		if err != nil {
			return wire.Blob{}, wire.Blob{}, fmt.Errorf("dropfiles: file %d: %w", i, err)
		}
		buf = append(buf, textenc.WideToBytes(w)...)
		buf = append(buf, 0, 0)
	}
	// Empty entry ending the list.
	buf = append(buf, 0, 0)

	return wire.Wrap(buf), wire.Wrap(d.Op.Effect().bytes()), nil
}

// Decode parses blobs produced by Encode, or by any producer of the same
// layout. Narrow (non-wide) lists are read through the Windows-1252 code
// page; use DecodeWith to choose another.
func Decode(files, effect wire.Blob) (Descriptor, error) {
	return DecodeWith(textenc.Default, files, effect)
}

// DecodeWith is Decode with an explicit converter for narrow path lists.
//
// Paths are read from the header's Files offset until the first empty entry;
// a list missing its final terminator ends at the end of the blob. An empty
// list is not an error.
func DecodeWith(c *textenc.Converter, files, effect wire.Blob) (Descriptor, error) {
	e, ok := parseEffect(effect.Bytes())
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %d byte effect", ErrUnknownOperation, effect.Len())
	}
	op, ok := e.Operation()
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: 0x%x", ErrUnknownOperation, uint32(e))
	}

	if files.IsEmpty() {
		return Descriptor{}, ErrMissingFiles
	}
	data := files.Bytes()

	var h Header
	if err := h.UnmarshalBinary(data); err != nil {
		return Descriptor{}, err
	}
	if h.Files < HeaderSize || int64(h.Files) > int64(len(data)) {
		return Descriptor{}, fmt.Errorf("%w: path offset %d outside %d byte blob", ErrMalformed, h.Files, len(data))
	}

	var (
		paths []string
		err   error
	)
	if h.Wide {
		paths, err = wideList(c, textenc.BytesToWide(data[h.Files:]))
	} else {
		paths, err = narrowList(c, data[h.Files:])
	}
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Op: op, Files: paths}, nil
}

func wideList(c *textenc.Converter, units textenc.Wide) ([]string, error) {
	paths := []string{}
	start := 0
	for i := 0; i <= len(units); i++ {
		if i < len(units) && units[i] != 0 {
			continue
		}
		if i == start {
			break
		}
		p, err := c.WideToUTF8(units[start:i])
		if err != nil {
			return nil, fmt.Errorf("dropfiles: file %d: %w", len(paths), err)
		}
		paths = append(paths, p)
		start = i + 1
	}
	return paths, nil
}

func narrowList(c *textenc.Converter, b []byte) ([]string, error) {
	paths := []string{}
	start := 0
	for i := 0; i <= len(b); i++ {
		if i < len(b) && b[i] != 0 {
			continue
		}
		if i == start {
			break
		}
		p, err := c.ANSIToUTF8(b[start:i])
		if err != nil {
			return nil, fmt.Errorf("dropfiles: file %d: %w", len(paths), err)
		}
		paths = append(paths, p)
		start = i + 1
	}
	return paths, nil
}
