package textenc

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// Wide is text in the 16-bit wide-character form: UTF-16 code units, one
// unit per BMP code point and a surrogate pair for anything above U+FFFF.
type Wide []uint16

// UntilNUL returns w up to, not including, the first zero unit.
func (w Wide) UntilNUL() Wide {
	for i, u := range w {
		if u == 0 {
			return w[:i]
		}
	}
	return w
}

// eachRune calls fn for every code point in w, pairing surrogates.
func (w Wide) eachRune(fn func(rune)) error {
	for i := 0; i < len(w); i++ {
		u := w[i]
		if !utf16.IsSurrogate(rune(u)) {
			fn(rune(u))
			continue
		}
		if u < 0xdc00 && i+1 < len(w) {
			if r := utf16.DecodeRune(rune(u), rune(w[i+1])); r != 0xfffd {
				fn(r)
				i++
				continue
			}
		}
		return fmt.Errorf("%w: unpaired surrogate 0x%04x at unit %d", ErrEncoding, u, i)
	}
	return nil
}

// WideToBytes lays w out as little-endian UTF-16, the byte order clipboard
// payloads use. No terminator is added.
func WideToBytes(w Wide) []byte {
	b := make([]byte, 2*len(w))
	for i, u := range w {
		binary.LittleEndian.PutUint16(b[2*i:], u)
	}
	return b
}

// BytesToWide reads little-endian UTF-16 from b. A trailing odd byte is
// ignored.
func BytesToWide(b []byte) Wide {
	w := make(Wide, len(b)/2)
	for i := range w {
		w[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return w
}
