// Package clip reads and writes structured data on a shared clipboard.
//
// A Store is the raw, format-keyed clipboard. Build constraints select the
// system implementation:
//
//	clip_windows.go  native Windows clipboard via user32/kernel32
//	clip_other.go    golang.design/x/clipboard, text formats only
//
// MemoryStore is a process-local Store used by tests and by --store=memory.
//
// Every access to a Store happens inside a Session, acquired with bounded
// retries. Clipboard layers the text, binary and file-drop operations on top.
package clip

import (
	"context"
	"errors"
	"fmt"

	"go.klb.dev/winclip/internal/textenc"
)

// Format identifies one representation of the clipboard contents.
type Format uint32

// Predefined formats. Their values match the Windows CF_* constants.
const (
	FormatText        Format = 1
	FormatUnicodeText Format = 13
	FormatHDrop       Format = 15
)

// Names of the formats registered at runtime.
const (
	BinaryFormatName     = "Binary"
	DropEffectFormatName = "Preferred DropEffect"
)

// firstRegistered is the first id handed out for a registered format name.
const firstRegistered Format = 0xC000

func (f Format) String() string {
	switch f {
	case FormatText:
		return "CF_TEXT"
	case FormatUnicodeText:
		return "CF_UNICODETEXT"
	case FormatHDrop:
		return "CF_HDROP"
	}
	return fmt.Sprintf("0x%04x", uint32(f))
}

var (
	// ErrBusy is returned by Store.Open while another owner holds the store.
	// It is the only error Acquire retries.
	ErrBusy = errors.New("clip: clipboard busy")

	// ErrNotOpen is returned by Store data methods called outside Open/Close.
	ErrNotOpen = errors.New("clip: clipboard not open")

	// ErrFormatUnavailable is returned by Store.Get when the format is absent.
	ErrFormatUnavailable = errors.New("clip: format not available")

	// ErrFormatRegistration is returned when a format name cannot be
	// registered.
	ErrFormatRegistration = errors.New("clip: format registration failed")

	// ErrUnsupportedFormat is returned for content kinds a Clipboard does not
	// know and for formats a Store cannot carry.
	ErrUnsupportedFormat = errors.New("clip: unsupported format")

	// ErrStoreUnavailable is returned when a session cannot be acquired.
	ErrStoreUnavailable = errors.New("clip: clipboard unavailable")
)

// Store is the interface that all clipboard implementations satisfy.
//
// Open and Close bracket every other call except Name and RegisterFormat.
// A Store is not safe for concurrent use between Open and Close by more than
// one goroutine; other openers get ErrBusy.
type Store interface {
	// Name returns a human-readable name for the store.
	Name() string

	// Open takes ownership of the store. It fails with ErrBusy when the
	// store is held elsewhere.
	Open(ctx context.Context) error

	// Close releases ownership.
	Close() error

	// Empty removes every format.
	Empty() error

	// Has reports whether f is present.
	Has(f Format) bool

	// Get returns a copy of the data stored under f, or ErrFormatUnavailable.
	Get(f Format) ([]byte, error)

	// Set stores a copy of data under f, replacing any previous value.
	Set(f Format, data []byte) error

	// RegisterFormat returns the id for a named format, registering it on
	// first use. Registering the same name twice returns the same id.
	RegisterFormat(name string) (Format, error)
}

// FormatSupporter is implemented by stores that carry only some formats.
// A Clipboard refuses to write an unsupported format before it empties the
// store, so existing content survives the failed write.
type FormatSupporter interface {
	Supports(f Format) bool
}

// ConverterSetter is implemented by stores that translate CF_TEXT to and
// from another encoding. New hands such a store the Clipboard's converter.
type ConverterSetter interface {
	SetConverter(conv *textenc.Converter)
}
