package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapExactLength(t *testing.T) {
	buf := make([]byte, 1024)
	for i := range buf {
		buf[i] = byte(i % 256)
	}
	b := Wrap(buf)
	assert.Equal(t, len(buf), b.Len())
	assert.Equal(t, buf, Unwrap(b))
}

func TestWrapCopies(t *testing.T) {
	in := []byte{1, 2, 3}
	b := Wrap(in)
	in[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, Unwrap(b))

	out := Unwrap(b)
	out[1] = 9
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes())
}

func TestWrapIdempotent(t *testing.T) {
	for _, in := range [][]byte{nil, {0}, {0, 0, 0}, []byte("payload\x00with\x00nuls")} {
		once := Wrap(in)
		twice := Wrap(Unwrap(once))
		assert.True(t, once.Equal(twice), "%q", in)
		assert.Equal(t, once.Len(), twice.Len())
	}
}

func TestEmpty(t *testing.T) {
	assert.True(t, Wrap(nil).IsEmpty())
	assert.True(t, Wrap([]byte{}).IsEmpty())
	assert.Nil(t, Unwrap(Blob{}))
	assert.False(t, Wrap([]byte{0}).IsEmpty())
}
