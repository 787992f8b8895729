package dropfiles

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// HeaderSize is the encoded size of Header. It matches sizeof(DROPFILES) in
// the Windows ABI, so blobs produced here are readable by the shell.
const HeaderSize = 20

// Header is the fixed record at the front of a file-drop blob.
//
// Byte layout, little-endian:
//
//	offset  size  field
//	0       4     Files      offset of the first path (always HeaderSize when encoding)
//	4       4     X          drop point x (always 0)
//	8       4     Y          drop point y (always 0)
//	12      4     NonClient  BOOL, drop point in the non-client area (always 0)
//	16      4     Wide       BOOL, paths are UTF-16 (1) or code-page bytes (0)
type Header struct {
	Files     uint32
	X, Y      int32
	NonClient bool
	Wide      bool
}

// rawHeader is Header as it sits in memory; binary.Size(rawHeader{}) == HeaderSize.
type rawHeader struct {
	Files     uint32
	X, Y      int32
	NonClient int32
	Wide      int32
}

// newHeader returns the header this package always emits.
func newHeader() Header {
	return Header{Files: HeaderSize, Wide: true}
}

// MarshalBinary encodes h in its fixed 20-byte layout.
func (h Header) MarshalBinary() ([]byte, error) {
	raw := rawHeader{
		Files:     h.Files,
		X:         h.X,
		Y:         h.Y,
		NonClient: boolToInt32(h.NonClient),
		Wide:      boolToInt32(h.Wide),
	}
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	if err := binary.Write(&buf, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes the first HeaderSize bytes of b into h.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, header needs %d", ErrMalformed, len(b), HeaderSize)
	}
	var raw rawHeader
	if err := binary.Read(bytes.NewReader(b[:HeaderSize]), binary.LittleEndian, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	*h = Header{
		Files:     raw.Files,
		X:         raw.X,
		Y:         raw.Y,
		NonClient: raw.NonClient != 0,
		Wide:      raw.Wide != 0,
	}
	return nil
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
