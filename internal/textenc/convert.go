package textenc

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

var (
	// ErrEncoding is returned by Converter methods when the input cannot be
	// decoded from, or encoded to, the requested form.
	ErrEncoding = errors.New("textenc: conversion failed")

	// ErrUnsupportedCodepage is returned by NewConverter for names that do not
	// resolve to a single-byte code page.
	ErrUnsupportedCodepage = errors.New("textenc: unsupported code page")
)

// DefaultCodepage is the legacy code page used by the package-level
// conversion functions.
const DefaultCodepage = "windows-1252"

// substitute replaces characters missing from the legacy code page, the same
// default character Windows uses.
const substitute = '?'

// codepageAliases maps common non-IANA spellings onto registered names.
var codepageAliases = map[string]string{
	"cp1252": "windows-1252",
	"ansi":   "windows-1252",
	"cp1250": "windows-1250",
	"cp1251": "windows-1251",
	"cp437":  "ibm437",
	"cp850":  "ibm850",
}

// Default converts through Windows-1252.
var Default = &Converter{name: DefaultCodepage, cm: charmap.Windows1252}

// Converter converts between UTF-8, Wide and one legacy code page.
// A Converter is immutable and safe for concurrent use.
type Converter struct {
	name string
	cm   *charmap.Charmap
}

// NewConverter returns a Converter for the named code page. Names are looked
// up in the IANA registry, so "windows-1252", "ISO-8859-15" and "latin1" all
// work; a few Microsoft spellings such as "cp1252" are accepted as aliases.
func NewConverter(name string) (*Converter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := codepageAliases[key]; ok {
		key = alias
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnsupportedCodepage, name, err)
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("%w %q: not a single-byte code page", ErrUnsupportedCodepage, name)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = key
	}
	return &Converter{name: strings.ToLower(canonical), cm: cm}, nil
}

// Codepage returns the canonical name of the converter's legacy code page.
func (c *Converter) Codepage() string { return c.name }

// UTF8ToWide converts UTF-8 text to UTF-16 code units. Code points outside
// the Basic Multilingual Plane become surrogate pairs.
func (c *Converter) UTF8ToWide(s string) (Wide, error) {
	w := make(Wide, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid utf-8 at byte %d", ErrEncoding, i)
		}
		w = utf16.AppendRune(w, r)
		i += size
	}
	return w, nil
}

// WideToUTF8 converts UTF-16 code units to UTF-8. Unpaired surrogates are an
// error rather than being replaced with U+FFFD.
func (c *Converter) WideToUTF8(w Wide) (string, error) {
	out := make([]byte, 0, len(w))
	err := w.eachRune(func(r rune) {
		out = utf8.AppendRune(out, r)
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// WideToANSI converts UTF-16 code units to the legacy code page. Characters
// the code page cannot represent are replaced with '?'. A C1 code point
// whose byte is unassigned in the code page maps back to that byte.
func (c *Converter) WideToANSI(w Wide) ([]byte, error) {
	out := make([]byte, 0, len(w))
	err := w.eachRune(func(r rune) {
		out = append(out, c.encodeRune(r))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ANSIToWide converts legacy code page bytes to UTF-16 code units. Every
// byte converts: one left unassigned by the code page (0x81 in
// Windows-1252) becomes the code point of the same value, as
// MultiByteToWideChar does.
func (c *Converter) ANSIToWide(b []byte) (Wide, error) {
	w := make(Wide, 0, len(b))
	for _, ch := range b {
		w = utf16.AppendRune(w, c.decodeByte(ch))
	}
	return w, nil
}

func (c *Converter) decodeByte(b byte) rune {
	if r := c.cm.DecodeByte(b); r != utf8.RuneError {
		return r
	}
	return rune(b)
}

func (c *Converter) encodeRune(r rune) byte {
	if b, ok := c.cm.EncodeRune(r); ok {
		return b
	}
	if r < 0x100 && c.cm.DecodeByte(byte(r)) == utf8.RuneError {
		return byte(r)
	}
	return substitute
}

// UTF8ToANSI converts UTF-8 text to the legacy code page by way of Wide.
func (c *Converter) UTF8ToANSI(s string) ([]byte, error) {
	w, err := c.UTF8ToWide(s)
	if err != nil {
		return nil, err
	}
	return c.WideToANSI(w)
}

// ANSIToUTF8 converts legacy code page bytes to UTF-8 by way of Wide.
func (c *Converter) ANSIToUTF8(b []byte) (string, error) {
	w, err := c.ANSIToWide(b)
	if err != nil {
		return "", err
	}
	return c.WideToUTF8(w)
}

// The package-level conversions keep the clipboard library's historical
// contract: failure is reported as an empty result. An empty result for a
// non-empty input must therefore be treated as a conversion error. Callers
// that need the reason should use the Converter methods instead.

// UTF8ToWide converts UTF-8 to wide text, or returns nil on failure.
func UTF8ToWide(s string) Wide {
	w, _ := Default.UTF8ToWide(s)
	return w
}

// WideToUTF8 converts wide text to UTF-8, or returns "" on failure.
func WideToUTF8(w Wide) string {
	s, _ := Default.WideToUTF8(w)
	return s
}

// WideToANSI converts wide text to Windows-1252, or returns nil on failure.
func WideToANSI(w Wide) []byte {
	b, _ := Default.WideToANSI(w)
	return b
}

// ANSIToWide converts Windows-1252 to wide text, or returns nil on failure.
func ANSIToWide(b []byte) Wide {
	w, _ := Default.ANSIToWide(b)
	return w
}

// UTF8ToANSI converts UTF-8 to Windows-1252, or returns nil on failure.
func UTF8ToANSI(s string) []byte {
	b, _ := Default.UTF8ToANSI(s)
	return b
}

// ANSIToUTF8 converts Windows-1252 to UTF-8, or returns "" on failure.
func ANSIToUTF8(b []byte) string {
	s, _ := Default.ANSIToUTF8(b)
	return s
}
