package clip

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/winclip/internal/dropfiles"
	"go.klb.dev/winclip/internal/textenc"
	"go.klb.dev/winclip/internal/wire"
)

func newTestClipboard(t *testing.T) (*Clipboard, *MemoryStore) {
	t.Helper()
	m := NewMemoryStore()
	c, err := New(m, WithRetryPolicy(RetryPolicy{Attempts: 2, Backoff: time.Millisecond}))
	require.NoError(t, err)
	return c, m
}

func TestEmptyAndContains(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClipboard(t)

	empty, err := c.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, c.SetText(ctx, []byte("hello")))
	ok, err := c.Contains(ctx, KindText)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.Contains(ctx, KindBinary)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Empty(ctx))
	empty, err = c.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestSetTextStoresTerminator(t *testing.T) {
	ctx := context.Background()
	c, m := newTestClipboard(t)

	require.NoError(t, c.SetText(ctx, []byte("caf\xe9\x00ignored")))
	got, err := c.GetAsText(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9"), got)

	require.NoError(t, m.Open(ctx))
	raw, err := m.Get(FormatText)
	require.NoError(t, m.Close())
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9\x00"), raw)
}

func TestTextUnicodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, m := newTestClipboard(t)

	in := "naïve ☕ \U0001F600"
	require.NoError(t, c.SetTextUnicode(ctx, in))
	got, err := c.GetAsTextUnicode(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	require.NoError(t, m.Open(ctx))
	raw, err := m.Get(FormatUnicodeText)
	require.NoError(t, m.Close())
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, raw[len(raw)-2:])
	assert.Len(t, raw, 2*(len(textenc.UTF8ToWide(in))+1))
}

func TestSetTextUnicodeInvalid(t *testing.T) {
	c, _ := newTestClipboard(t)
	err := c.SetTextUnicode(context.Background(), "bad \xff")
	assert.ErrorIs(t, err, textenc.ErrEncoding)
}

func TestGetAsTextUnicodeUndecodable(t *testing.T) {
	ctx := context.Background()
	c, m := newTestClipboard(t)
	require.NoError(t, m.Open(ctx))
	require.NoError(t, m.Set(FormatUnicodeText, textenc.WideToBytes(textenc.Wide{0xd800, 0})))
	require.NoError(t, m.Close())

	_, err := c.GetAsTextUnicode(ctx)
	assert.ErrorIs(t, err, textenc.ErrEncoding)
}

func TestBinaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClipboard(t)

	in := make([]byte, 256)
	for i := range in {
		in[i] = byte(i)
	}
	require.NoError(t, c.SetBinary(ctx, wire.Wrap(in)))

	got, err := c.GetAsBinary(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, wire.Unwrap(got))

	ok, err := c.Contains(ctx, KindText)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetterEmptiesFirst(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClipboard(t)

	require.NoError(t, c.SetText(ctx, []byte("a")))
	require.NoError(t, c.SetBinary(ctx, wire.Wrap([]byte{1})))

	kinds, err := c.Present(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindBinary}, kinds)

	_, err = c.GetAsText(ctx)
	assert.ErrorIs(t, err, ErrFormatUnavailable)
}

func TestDragDropRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClipboard(t)

	for _, op := range []dropfiles.Operation{dropfiles.Copy, dropfiles.Cut} {
		d, err := dropfiles.NewDescriptor(op, `C:\a.exe`, `C:\b.exe`)
		require.NoError(t, err)
		require.NoError(t, c.SetDragDropFiles(ctx, d))

		ok, err := c.Contains(ctx, KindFiles)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := c.GetAsDragDropFiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestDragDropInvalidOperationLeavesStore(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClipboard(t)
	require.NoError(t, c.SetText(ctx, []byte("keep")))

	err := c.SetDragDropFiles(ctx, dropfiles.Descriptor{Files: []string{"x"}})
	assert.ErrorIs(t, err, dropfiles.ErrInvalidOperation)

	got, err := c.GetAsText(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), got)
}

func TestDragDropMissingEffect(t *testing.T) {
	ctx := context.Background()
	c, m := newTestClipboard(t)

	d, err := dropfiles.NewDescriptor(dropfiles.Copy, `C:\a.exe`)
	require.NoError(t, err)
	files, _, err := dropfiles.Encode(d)
	require.NoError(t, err)

	require.NoError(t, m.Open(ctx))
	require.NoError(t, m.Set(FormatHDrop, wire.Unwrap(files)))
	require.NoError(t, m.Close())

	_, err = c.GetAsDragDropFiles(ctx)
	assert.ErrorIs(t, err, dropfiles.ErrUnknownOperation)
}

func TestDragDropMissingFiles(t *testing.T) {
	ctx := context.Background()
	c, m := newTestClipboard(t)

	require.NoError(t, m.Open(ctx))
	require.NoError(t, m.Set(c.effect, []byte{1, 0, 0, 0}))
	require.NoError(t, m.Close())

	_, err := c.GetAsDragDropFiles(ctx)
	assert.ErrorIs(t, err, dropfiles.ErrMissingFiles)
}

func TestOperationsReportBusyStore(t *testing.T) {
	ctx := context.Background()
	c, m := newTestClipboard(t)
	m.SetBusy(2)

	err := c.SetText(ctx, []byte("x"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	require.NoError(t, c.SetText(ctx, []byte("x")))
}

type failingRegistry struct{ *MemoryStore }

func (failingRegistry) RegisterFormat(string) (Format, error) { return 0, nil }

func TestNewRegistrationFailure(t *testing.T) {
	_, err := New(failingRegistry{NewMemoryStore()})
	assert.ErrorIs(t, err, ErrFormatRegistration)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("image")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	c, _ := newTestClipboard(t)
	_, err = c.Contains(context.Background(), Kind(42))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSetTextUnicodeStopsAtNUL(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClipboard(t)

	require.NoError(t, c.SetTextUnicode(ctx, "ab\x00cd"))
	got, err := c.GetAsTextUnicode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

// textOnlyStore carries the text formats and nothing else, like the desktop
// store outside Windows.
type textOnlyStore struct {
	*MemoryStore
	conv *textenc.Converter
}

func (textOnlyStore) Supports(f Format) bool { return isText(f) }

func (s *textOnlyStore) SetConverter(conv *textenc.Converter) { s.conv = conv }

func TestUnsupportedFormatKeepsContent(t *testing.T) {
	ctx := context.Background()
	store := &textOnlyStore{MemoryStore: NewMemoryStore()}
	c, err := New(store, WithRetryPolicy(RetryPolicy{Attempts: 1, Backoff: time.Millisecond}))
	require.NoError(t, err)
	require.NoError(t, c.SetText(ctx, []byte("keep")))

	err = c.SetBinary(ctx, wire.Wrap([]byte{1, 2}))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	d, err := dropfiles.NewDescriptor(dropfiles.Copy, `C:\a.exe`)
	require.NoError(t, err)
	err = c.SetDragDropFiles(ctx, d)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	got, err := c.GetAsText(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), got)
}

func TestNewHandsConverterToStore(t *testing.T) {
	ibm437, err := textenc.NewConverter("ibm437")
	require.NoError(t, err)

	store := &textOnlyStore{MemoryStore: NewMemoryStore()}
	_, err = New(store)
	require.NoError(t, err)
	assert.Same(t, textenc.Default, store.conv)

	_, err = New(store, WithConverter(ibm437))
	require.NoError(t, err)
	assert.Same(t, ibm437, store.conv)
}
