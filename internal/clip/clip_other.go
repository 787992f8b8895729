//go:build !windows

package clip

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/clipboard"

	"go.klb.dev/winclip/internal/textenc"
)

var (
	initOnce sync.Once
	initErr  error
)

// systemStore maps the text formats onto the desktop clipboard through
// golang.design/x/clipboard, which only carries UTF-8 text and images.
// Other formats are refused with ErrUnsupportedFormat; format names are
// still registered so a Clipboard can be built over it.
type systemStore struct {
	mu       sync.Mutex
	held     bool
	conv     *textenc.Converter
	registry *MemoryStore
}

// System returns the desktop clipboard store, or a MemoryStore when no
// display is available (headless servers, containers). clipboard.Init is
// called here rather than in init() so that sub-commands that never touch
// the clipboard don't log spurious warnings.
func System() Store {
	initOnce.Do(func() { initErr = clipboard.Init() })
	if initErr != nil {
		slog.Warn("clipboard unavailable, using process-local store", "err", initErr)
		return NewMemoryStore()
	}
	return &systemStore{conv: textenc.Default, registry: NewMemoryStore()}
}

func (s *systemStore) Name() string { return "desktop clipboard" }

// SetConverter sets the code page CF_TEXT is translated through.
func (s *systemStore) SetConverter(conv *textenc.Converter) { s.conv = conv }

// Supports reports whether f can reach the desktop clipboard.
func (s *systemStore) Supports(f Format) bool { return isText(f) }

func (s *systemStore) Open(context.Context) error {
	if !s.mu.TryLock() {
		return ErrBusy
	}
	s.held = true
	return nil
}

func (s *systemStore) Close() error {
	if !s.held {
		return nil
	}
	s.held = false
	s.mu.Unlock()
	return nil
}

func (s *systemStore) Empty() error {
	if !s.held {
		return ErrNotOpen
	}
	clipboard.Write(clipboard.FmtText, []byte{})
	return nil
}

func (s *systemStore) Has(f Format) bool {
	if !s.held || !isText(f) {
		return false
	}
	return len(clipboard.Read(clipboard.FmtText)) > 0
}

func (s *systemStore) Get(f Format) ([]byte, error) {
	if !s.held {
		return nil, ErrNotOpen
	}
	if !isText(f) {
		return nil, fmt.Errorf("%w: %v", ErrFormatUnavailable, f)
	}
	text := clipboard.Read(clipboard.FmtText)
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrFormatUnavailable, f)
	}
	return textToFormat(s.conv, f, string(text))
}

func (s *systemStore) Set(f Format, data []byte) error {
	if !s.held {
		return ErrNotOpen
	}
	text, err := textFromFormat(s.conv, f, data)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (s *systemStore) RegisterFormat(name string) (Format, error) {
	return s.registry.RegisterFormat(name)
}
