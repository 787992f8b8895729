//go:build windows

package clip

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procSetClipboardData           = user32.NewProc("SetClipboardData")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")
	procRegisterClipboardFormatW   = user32.NewProc("RegisterClipboardFormatW")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalSize   = kernel32.NewProc("GlobalSize")
)

const gmemMoveable = 0x0002

// windowsStore is the native Windows clipboard. Ownership is per thread, so
// the calling goroutine is locked to its OS thread between Open and Close.
type windowsStore struct {
	locked bool
}

// System returns the native Windows clipboard store.
func System() Store {
	slog.Debug("clipboard store selected", "store", "windows")
	return &windowsStore{}
}

func (w *windowsStore) Name() string { return "Windows clipboard" }

func (w *windowsStore) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runtime.LockOSThread()
	r, _, err := procOpenClipboard.Call(0)
	if r == 0 {
		runtime.UnlockOSThread()
		return fmt.Errorf("%w: OpenClipboard: %v", ErrBusy, err)
	}
	w.locked = true
	return nil
}

func (w *windowsStore) Close() error {
	if !w.locked {
		return nil
	}
	defer runtime.UnlockOSThread()
	w.locked = false
	r, _, err := procCloseClipboard.Call()
	if r == 0 {
		return fmt.Errorf("CloseClipboard: %w", err)
	}
	return nil
}

func (w *windowsStore) Empty() error {
	if !w.locked {
		return ErrNotOpen
	}
	r, _, err := procEmptyClipboard.Call()
	if r == 0 {
		return fmt.Errorf("EmptyClipboard: %w", err)
	}
	return nil
}

func (w *windowsStore) Has(f Format) bool {
	r, _, _ := procIsClipboardFormatAvailable.Call(uintptr(f))
	return r != 0
}

func (w *windowsStore) Get(f Format) ([]byte, error) {
	if !w.locked {
		return nil, ErrNotOpen
	}
	h, _, _ := procGetClipboardData.Call(uintptr(f))
	if h == 0 {
		return nil, fmt.Errorf("%w: %v", ErrFormatUnavailable, f)
	}
	size, _, _ := procGlobalSize.Call(h)
	if size == 0 {
		return []byte{}, nil
	}
	p, _, err := procGlobalLock.Call(h)
	if p == 0 {
		return nil, fmt.Errorf("GlobalLock: %w", err)
	}
	defer procGlobalUnlock.Call(h)

	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(p)), size))
	return out, nil
}

func (w *windowsStore) Set(f Format, data []byte) error {
	if !w.locked {
		return ErrNotOpen
	}
	h, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(len(data)))
	if h == 0 {
		return fmt.Errorf("GlobalAlloc: %w", err)
	}
	if len(data) > 0 {
		p, _, err := procGlobalLock.Call(h)
		if p == 0 {
			procGlobalFree.Call(h)
			return fmt.Errorf("GlobalLock: %w", err)
		}
		copy(unsafe.Slice((*byte)(unsafe.Pointer(p)), len(data)), data)
		procGlobalUnlock.Call(h)
	}

	// On success the system owns h.
	r, _, err := procSetClipboardData.Call(uintptr(f), h)
	if r == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("SetClipboardData(%v): %w", f, err)
	}
	return nil
}

func (w *windowsStore) RegisterFormat(name string) (Format, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrFormatRegistration, name, err)
	}
	r, _, err := procRegisterClipboardFormatW.Call(uintptr(unsafe.Pointer(p)))
	if r == 0 {
		return 0, fmt.Errorf("%w: %q: %v", ErrFormatRegistration, name, err)
	}
	return Format(r), nil
}
