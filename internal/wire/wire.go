// Package wire holds the opaque byte blobs exchanged with the clipboard store.
//
// A Blob is a single contiguous allocation whose length is exactly the
// payload length: no padding, no terminator, no transformation. Wrap and
// Bytes both copy, so a Blob never aliases memory on either side of a store
// read or write.
package wire

// Blob is an exactly sized, immutable byte payload.
type Blob struct {
	data []byte
}

// Wrap copies b into a new Blob. A nil or empty b yields an empty Blob.
func Wrap(b []byte) Blob {
	if len(b) == 0 {
		return Blob{}
	}
	data := make([]byte, len(b))
	copy(data, b)
	return Blob{data: data}
}

// Unwrap returns a copy of the blob's full payload.
func Unwrap(b Blob) []byte {
	return b.Bytes()
}

// Bytes returns a copy of the payload. The result is nil for an empty Blob.
func (b Blob) Bytes() []byte {
	if len(b.data) == 0 {
		return nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Len returns the payload length in bytes.
func (b Blob) Len() int { return len(b.data) }

// IsEmpty reports whether the blob carries no bytes.
func (b Blob) IsEmpty() bool { return len(b.data) == 0 }

// Equal reports whether two blobs carry identical payloads.
func (b Blob) Equal(o Blob) bool {
	return string(b.data) == string(o.data)
}
