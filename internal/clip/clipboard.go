package clip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.klb.dev/winclip/internal/dropfiles"
	"go.klb.dev/winclip/internal/textenc"
	"go.klb.dev/winclip/internal/wire"
)

// Kind is a kind of content a Clipboard reads and writes.
type Kind int

const (
	KindText Kind = iota
	KindUnicode
	KindBinary
	KindFiles
)

// Kinds lists every Kind in display order.
var Kinds = []Kind{KindText, KindUnicode, KindBinary, KindFiles}

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindUnicode:
		return "unicode"
	case KindBinary:
		return "binary"
	case KindFiles:
		return "files"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the names returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrUnsupportedFormat, s)
}

// Clipboard is a handle on a Store. Each method performs exactly one session
// acquisition; setters empty the store before writing.
type Clipboard struct {
	store  Store
	policy RetryPolicy
	conv   *textenc.Converter

	binary Format
	effect Format
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithRetryPolicy sets how sessions wait for a busy store.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Clipboard) { c.policy = p }
}

// WithConverter sets the code page used for narrow text and narrow file
// lists. The default is textenc.Default.
func WithConverter(conv *textenc.Converter) Option {
	return func(c *Clipboard) { c.conv = conv }
}

// New returns a Clipboard over store and registers its custom formats.
// Registration failure is returned wrapped in ErrFormatRegistration. A store
// implementing ConverterSetter receives the Clipboard's converter.
func New(store Store, opts ...Option) (*Clipboard, error) {
	c := &Clipboard{
		store:  store,
		policy: DefaultRetryPolicy(),
		conv:   textenc.Default,
	}
	for _, o := range opts {
		o(c)
	}
	if cs, ok := store.(ConverterSetter); ok {
		cs.SetConverter(c.conv)
	}

	var err error
	if c.binary, err = register(store, BinaryFormatName); err != nil {
		return nil, err
	}
	if c.effect, err = register(store, DropEffectFormatName); err != nil {
		return nil, err
	}
	return c, nil
}

func register(s Store, name string) (Format, error) {
	f, err := s.RegisterFormat(name)
	if err != nil {
		if errors.Is(err, ErrFormatRegistration) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %q: %w", ErrFormatRegistration, name, err)
	}
	if f == 0 {
		return 0, fmt.Errorf("%w: %q", ErrFormatRegistration, name)
	}
	return f, nil
}

// StoreName returns the name of the underlying store.
func (c *Clipboard) StoreName() string { return c.store.Name() }

func (c *Clipboard) format(k Kind) Format {
	switch k {
	case KindText:
		return FormatText
	case KindUnicode:
		return FormatUnicodeText
	case KindBinary:
		return c.binary
	case KindFiles:
		return FormatHDrop
	}
	return 0
}

func (c *Clipboard) with(ctx context.Context, fn func(Store) error) error {
	return With(ctx, c.store, c.policy, fn)
}

// Empty removes all content.
func (c *Clipboard) Empty(ctx context.Context) error {
	return c.with(ctx, func(s Store) error {
		if err := s.Empty(); err != nil {
			return fmt.Errorf("clip: empty: %w", err)
		}
		logItems("clipboard emptied", s.Name(), nil)
		return nil
	})
}

// Present returns the kinds currently on the clipboard, in Kinds order.
func (c *Clipboard) Present(ctx context.Context) ([]Kind, error) {
	var kinds []Kind
	err := c.with(ctx, func(s Store) error {
		for _, k := range Kinds {
			if s.Has(c.format(k)) {
				kinds = append(kinds, k)
			}
		}
		return nil
	})
	return kinds, err
}

// IsEmpty reports whether none of the known kinds is present.
func (c *Clipboard) IsEmpty(ctx context.Context) (bool, error) {
	kinds, err := c.Present(ctx)
	if err != nil {
		return false, err
	}
	return len(kinds) == 0, nil
}

// Contains reports whether k is present.
func (c *Clipboard) Contains(ctx context.Context, k Kind) (bool, error) {
	f := c.format(k)
	if f == 0 {
		return false, fmt.Errorf("%w: %v", ErrUnsupportedFormat, k)
	}
	var ok bool
	err := c.with(ctx, func(s Store) error {
		ok = s.Has(f)
		return nil
	})
	return ok, err
}

// replace empties the store and writes items in one session. Items the store
// cannot carry fail with ErrUnsupportedFormat before anything is emptied.
func (c *Clipboard) replace(ctx context.Context, event string, items ...logItem) error {
	if fs, ok := c.store.(FormatSupporter); ok {
		for _, it := range items {
			if !fs.Supports(it.format) {
				return fmt.Errorf("clip: set %v: %w: %v on %s", it.kind, ErrUnsupportedFormat, it.format, c.store.Name())
			}
		}
	}
	return c.with(ctx, func(s Store) error {
		if err := s.Empty(); err != nil {
			return fmt.Errorf("clip: empty: %w", err)
		}
		for _, it := range items {
			if err := s.Set(it.format, it.data); err != nil {
				return fmt.Errorf("clip: set %v: %w", it.kind, err)
			}
		}
		logItems(event, s.Name(), items)
		return nil
	})
}

func (c *Clipboard) get(ctx context.Context, f Format) ([]byte, error) {
	var b []byte
	err := c.with(ctx, func(s Store) error {
		var err error
		b, err = s.Get(f)
		return err
	})
	return b, err
}

// SetText stores code-page text. Bytes after the first NUL are dropped and a
// terminator is appended.
func (c *Clipboard) SetText(ctx context.Context, text []byte) error {
	if i := bytes.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}
	data := make([]byte, len(text)+1)
	copy(data, text)
	preview, _ := c.conv.ANSIToUTF8(text)
	return c.replace(ctx, "clipboard set", logItem{kind: KindText, format: FormatText, data: data, preview: preview})
}

// GetAsText returns the code-page text up to its terminator.
func (c *Clipboard) GetAsText(ctx context.Context) ([]byte, error) {
	b, err := c.get(ctx, FormatText)
	if err != nil {
		return nil, err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return b, nil
}

// SetTextUnicode stores UTF-8 text as NUL-terminated little-endian UTF-16.
// Text that is not valid UTF-8 fails with textenc.ErrEncoding.
func (c *Clipboard) SetTextUnicode(ctx context.Context, text string) error {
	w, err := c.conv.UTF8ToWide(text)
	if err != nil {
		return fmt.Errorf("clip: %w", err)
	}
	data := textenc.WideToBytes(append(w.UntilNUL(), 0))
	return c.replace(ctx, "clipboard set", logItem{kind: KindUnicode, format: FormatUnicodeText, data: data, preview: text})
}

// GetAsTextUnicode returns the wide text as UTF-8.
func (c *Clipboard) GetAsTextUnicode(ctx context.Context) (string, error) {
	b, err := c.get(ctx, FormatUnicodeText)
	if err != nil {
		return "", err
	}
	s, err := c.conv.WideToUTF8(textenc.BytesToWide(b).UntilNUL())
	if err != nil {
		return "", fmt.Errorf("clip: %w", err)
	}
	return s, nil
}

// SetBinary stores an opaque blob under the registered "Binary" format.
func (c *Clipboard) SetBinary(ctx context.Context, blob wire.Blob) error {
	return c.replace(ctx, "clipboard set", logItem{kind: KindBinary, format: c.binary, data: wire.Unwrap(blob)})
}

// GetAsBinary returns the blob stored under the "Binary" format. The native
// Windows store reports the global allocation size, which the heap may round
// up, so a blob read there can carry trailing padding after the payload.
func (c *Clipboard) GetAsBinary(ctx context.Context) (wire.Blob, error) {
	b, err := c.get(ctx, c.binary)
	if err != nil {
		return wire.Blob{}, err
	}
	return wire.Wrap(b), nil
}

// SetDragDropFiles stores a cut or copied file list. The file list and its
// drop effect are written in the same session.
func (c *Clipboard) SetDragDropFiles(ctx context.Context, d dropfiles.Descriptor) error {
	files, effect, err := dropfiles.Encode(d)
	if err != nil {
		return err
	}
	return c.replace(ctx, "clipboard set",
		logItem{kind: KindFiles, format: FormatHDrop, data: wire.Unwrap(files), preview: strings.Join(d.Files, ", ")},
		logItem{kind: KindFiles, format: c.effect, data: wire.Unwrap(effect), preview: d.Op.String()},
	)
}

// GetAsDragDropFiles reads the file list and drop effect in one session. A
// missing effect fails with dropfiles.ErrUnknownOperation and a missing list
// with dropfiles.ErrMissingFiles.
func (c *Clipboard) GetAsDragDropFiles(ctx context.Context) (dropfiles.Descriptor, error) {
	var files, effect []byte
	err := c.with(ctx, func(s Store) error {
		var err error
		if files, err = getOptional(s, FormatHDrop); err != nil {
			return err
		}
		effect, err = getOptional(s, c.effect)
		return err
	})
	if err != nil {
		return dropfiles.Descriptor{}, err
	}
	return dropfiles.DecodeWith(c.conv, wire.Wrap(files), wire.Wrap(effect))
}

// getOptional returns nil without error when f is absent.
func getOptional(s Store, f Format) ([]byte, error) {
	b, err := s.Get(f)
	if errors.Is(err, ErrFormatUnavailable) {
		return nil, nil
	}
	return b, err
}
