package clip

import (
	"context"
	"log/slog"
)

const previewLen = 120

// logItem is one format written to a store.
type logItem struct {
	kind    Kind
	format  Format
	data    []byte
	preview string
}

// logItems logs a clipboard write at INFO (store, kinds) and DEBUG (text
// preview up to 120 chars, or byte size for binary items).
func logItems(event, store string, items []logItem) {
	kinds := make([]string, 0, len(items))
	for _, it := range items {
		if n := len(kinds); n > 0 && kinds[n-1] == it.kind.String() {
			continue
		}
		kinds = append(kinds, it.kind.String())
	}
	slog.Info(event, "store", store, "kinds", kinds)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, it := range items {
		if it.preview == "" {
			slog.Debug("clipboard item", "format", it.format, "size_bytes", len(it.data))
			continue
		}
		preview := []rune(it.preview)
		if len(preview) > previewLen {
			preview = append(preview[:previewLen], '…')
		}
		slog.Debug("clipboard item", "format", it.format, "size_bytes", len(it.data), "preview", string(preview))
	}
}
