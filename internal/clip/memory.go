package clip

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is a process-local Store. The zero value is not usable; call
// NewMemoryStore.
type MemoryStore struct {
	mu    sync.Mutex
	open  bool
	busy  int
	data  map[Format][]byte
	names map[string]Format
	next  Format
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[Format][]byte),
		names: make(map[string]Format),
		next:  firstRegistered,
	}
}

func (m *MemoryStore) Name() string { return "memory" }

// SetBusy makes the next n calls to Open fail with ErrBusy, as if another
// process held the clipboard.
func (m *MemoryStore) SetBusy(n int) {
	m.mu.Lock()
	m.busy = n
	m.mu.Unlock()
}

func (m *MemoryStore) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy > 0 {
		m.busy--
		return ErrBusy
	}
	if m.open {
		return ErrBusy
	}
	m.open = true
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Empty() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return ErrNotOpen
	}
	clear(m.data)
	return nil
}

func (m *MemoryStore) Has(f Format) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[f]
	return m.open && ok
}

func (m *MemoryStore) Get(f Format) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return nil, ErrNotOpen
	}
	b, ok := m.data[f]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrFormatUnavailable, f)
	}
	return append([]byte{}, b...), nil
}

func (m *MemoryStore) Set(f Format, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return ErrNotOpen
	}
	m.data[f] = append([]byte{}, data...)
	return nil
}

func (m *MemoryStore) RegisterFormat(name string) (Format, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrFormatRegistration)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.names[name]; ok {
		return f, nil
	}
	f := m.next
	m.next++
	m.names[name] = f
	return f, nil
}
