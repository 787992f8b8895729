// Package textenc classifies byte strings by text encoding and converts
// between UTF-8, wide (UTF-16 code units) and legacy 8-bit code pages.
//
// The predicates mirror what a clipboard consumer needs to decide which
// format to publish: a buffer that is pure ASCII is valid everywhere, an
// ISO-8859-1 buffer is also valid CP1252, and anything else is either UTF-8
// or must be treated as an opaque code-page string.
//
// All predicates stop at the first NUL byte, so C strings read back from the
// clipboard can be passed in without trimming.
package textenc

import "unicode/utf8"

// Encoding tags a byte sequence with the narrowest encoding it is valid in.
type Encoding int

const (
	Unknown Encoding = iota
	ASCII
	UTF8
	ISO8859_1
	CP1252
	Wide16
)

func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ascii"
	case UTF8:
		return "utf-8"
	case ISO8859_1:
		return "iso-8859-1"
	case CP1252:
		return "windows-1252"
	case Wide16:
		return "utf-16le"
	default:
		return "unknown"
	}
}

// terminated returns b up to, not including, the first NUL byte.
func terminated(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

// IsASCII reports whether every byte has its high bit clear.
func IsASCII(b []byte) bool {
	for _, c := range terminated(b) {
		if c > 0x7f {
			return false
		}
	}
	return true
}

// IsCP1252Valid reports whether b contains none of the five byte values
// Windows-1252 leaves undefined (0x81, 0x8D, 0x8F, 0x90, 0x9D).
func IsCP1252Valid(b []byte) bool {
	for _, c := range terminated(b) {
		switch c {
		case 0x81, 0x8d, 0x8f, 0x90, 0x9d:
			return false
		}
	}
	return true
}

// IsISO8859_1Valid reports whether b avoids both control ranges, C0
// [0x00,0x1F] and C1 [0x7F,0x9F]. Line breaks and tabs are C0 controls, so
// multi-line text is never ISO-8859-1 valid under this definition.
//
// A buffer valid here is always CP1252 valid: the undefined CP1252 bytes all
// fall inside C1.
func IsISO8859_1Valid(b []byte) bool {
	for _, c := range terminated(b) {
		if c <= 0x1f || (c >= 0x7f && c <= 0x9f) {
			return false
		}
	}
	return true
}

// IsUTF8Valid reports whether b is a succession of well-formed UTF-8 code
// points. Overlong forms, surrogate code points, values above U+10FFFF and
// stray continuation bytes are rejected. A NUL inside what would be a
// multi-byte sequence ends the input, so the truncated sequence is invalid.
func IsUTF8Valid(b []byte) bool {
	return utf8.Valid(terminated(b))
}

// Classify returns the narrowest encoding b is valid in, checking ASCII,
// UTF-8, ISO-8859-1 and CP1252 in that order.
func Classify(b []byte) Encoding {
	switch {
	case IsASCII(b):
		return ASCII
	case IsUTF8Valid(b):
		return UTF8
	case IsISO8859_1Valid(b):
		return ISO8859_1
	case IsCP1252Valid(b):
		return CP1252
	default:
		return Unknown
	}
}
