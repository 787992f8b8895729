package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/winclip/internal/clip"
	"go.klb.dev/winclip/internal/dropfiles"
	"go.klb.dev/winclip/internal/wire"
)

func TestCopyStdin(t *testing.T) {
	cases := []struct {
		name string
		as   string
		in   string
		kind clip.Kind
		want []byte
	}{
		{"unicode", "unicode", "héllo ☕", clip.KindUnicode, []byte("héllo ☕")},
		{"text from utf-8", "text", "café", clip.KindText, []byte("caf\xe9")},
		{"text not utf-8", "text", "caf\xe9", clip.KindText, []byte("caf\xe9")},
		{"binary", "binary", "\x00\x01\xff", clip.KindBinary, []byte{0, 1, 0xff}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			c, v := memoryClipboard(t)
			v.Set("as", tc.as)

			require.NoError(t, copyTo(ctx, v, c, strings.NewReader(tc.in), nil))

			kinds, err := c.Present(ctx)
			require.NoError(t, err)
			assert.Equal(t, []clip.Kind{tc.kind}, kinds)

			var got []byte
			switch tc.kind {
			case clip.KindText:
				got, err = c.GetAsText(ctx)
			case clip.KindUnicode:
				var s string
				s, err = c.GetAsTextUnicode(ctx)
				got = []byte(s)
			case clip.KindBinary:
				var b wire.Blob
				b, err = c.GetAsBinary(ctx)
				got = wire.Unwrap(b)
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCopyStdinRejects(t *testing.T) {
	ctx := context.Background()
	c, v := memoryClipboard(t)

	v.Set("as", "files")
	assert.Error(t, copyTo(ctx, v, c, strings.NewReader("x"), nil))

	v.Set("as", "image")
	assert.ErrorIs(t, copyTo(ctx, v, c, strings.NewReader("x"), nil), clip.ErrUnsupportedFormat)

	v.Set("as", "unicode")
	err := copyTo(ctx, v, c, strings.NewReader("x"), []string{"a.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--files")

	empty, err := c.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestCopyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o600))
	t.Chdir(dir)

	wantA, err := filepath.Abs("a.txt")
	require.NoError(t, err)
	wantMissing, err := filepath.Abs("missing.txt")
	require.NoError(t, err)

	cases := []struct {
		name string
		op   string
		cut  bool
		want dropfiles.Operation
	}{
		{"copy", "copy", false, dropfiles.Copy},
		{"cut", "cut", false, dropfiles.Cut},
		{"move", "MOVE", false, dropfiles.Cut},
		{"cut shorthand", "copy", true, dropfiles.Cut},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			c, v := memoryClipboard(t)
			v.Set("files", true)
			v.Set("op", tc.op)
			v.Set("cut", tc.cut)

			require.NoError(t, copyTo(ctx, v, c, strings.NewReader(""), []string{"a.txt", "missing.txt"}))

			d, err := c.GetAsDragDropFiles(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Op)
			assert.Equal(t, []string{wantA, wantMissing}, d.Files)
			for _, f := range d.Files {
				assert.True(t, filepath.IsAbs(f), f)
			}
		})
	}
}

func TestCopyFilesRejects(t *testing.T) {
	ctx := context.Background()
	c, v := memoryClipboard(t)
	v.Set("files", true)

	v.Set("op", "link")
	err := copyTo(ctx, v, c, strings.NewReader(""), []string{"a.txt"})
	assert.ErrorIs(t, err, dropfiles.ErrInvalidOperation)

	v.Set("op", "copy")
	err = copyTo(ctx, v, c, strings.NewReader(""), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one PATH")
}

func TestRunCopyUnknownStore(t *testing.T) {
	v := viper.New()
	v.Set("store", "clipboard-server")
	v.Set("codepage", "windows-1252")
	err := runCopy(context.Background(), v, strings.NewReader("x"), nil)
	assert.ErrorContains(t, err, "unknown store")
}
