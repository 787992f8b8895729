package clip

import (
	"bytes"
	"fmt"

	"go.klb.dev/winclip/internal/textenc"
)

// isText reports whether f is one of the two text formats a UTF-8 only
// clipboard can carry.
func isText(f Format) bool {
	return f == FormatText || f == FormatUnicodeText
}

// textFromFormat decodes the raw bytes of a text format to UTF-8. Narrow
// text goes through conv; both forms stop at their terminator.
func textFromFormat(conv *textenc.Converter, f Format, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch f {
	case FormatText:
		if i := bytes.IndexByte(data, 0); i >= 0 {
			data = data[:i]
		}
		text, err = conv.ANSIToUTF8(data)
	case FormatUnicodeText:
		text, err = conv.WideToUTF8(textenc.BytesToWide(data).UntilNUL())
	default:
		return "", fmt.Errorf("%w: %v is not text", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return "", fmt.Errorf("clip: %v: %w", f, err)
	}
	return text, nil
}

// textToFormat encodes UTF-8 text as the NUL-terminated raw bytes of f.
func textToFormat(conv *textenc.Converter, f Format, text string) ([]byte, error) {
	switch f {
	case FormatText:
		b, err := conv.UTF8ToANSI(text)
		if err != nil {
			return nil, fmt.Errorf("clip: %v: %w", f, err)
		}
		return append(b, 0), nil
	case FormatUnicodeText:
		w, err := conv.UTF8ToWide(text)
		if err != nil {
			return nil, fmt.Errorf("clip: %v: %w", f, err)
		}
		return textenc.WideToBytes(append(w, 0)), nil
	}
	return nil, fmt.Errorf("%w: %v is not text", ErrUnsupportedFormat, f)
}
