package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/winclip/internal/textenc"
)

func TestTextFormatUsesConverter(t *testing.T) {
	ibm437, err := textenc.NewConverter("ibm437")
	require.NoError(t, err)

	// 0x82 is é in IBM437 and a low quotation mark in Windows-1252.
	text, err := textFromFormat(ibm437, FormatText, []byte("caf\x82\x00junk"))
	require.NoError(t, err)
	assert.Equal(t, "café", text)

	b, err := textToFormat(ibm437, FormatText, "café")
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\x82\x00"), b)

	b, err = textToFormat(textenc.Default, FormatText, "café")
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9\x00"), b)
}

func TestTextFormatUnicode(t *testing.T) {
	b, err := textToFormat(textenc.Default, FormatUnicodeText, "h☕")
	require.NoError(t, err)
	assert.Equal(t, []byte{'h', 0, 0x15, 0x26, 0, 0}, b)

	text, err := textFromFormat(textenc.Default, FormatUnicodeText, b)
	require.NoError(t, err)
	assert.Equal(t, "h☕", text)

	_, err = textToFormat(textenc.Default, FormatUnicodeText, "\xff")
	assert.ErrorIs(t, err, textenc.ErrEncoding)
}

func TestTextFormatRejectsOtherFormats(t *testing.T) {
	_, err := textFromFormat(textenc.Default, FormatHDrop, []byte{1})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = textToFormat(textenc.Default, firstRegistered, "x")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.True(t, isText(FormatText))
	assert.False(t, isText(FormatHDrop))
}
