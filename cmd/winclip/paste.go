package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/winclip/internal/clip"
	"go.klb.dev/winclip/internal/wire"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Print the clipboard to stdout (like pbpaste)",
		Long: `Writes the clipboard contents in the format chosen by --as to stdout.

Text is always printed as UTF-8; code-page text is converted with --codepage.
A file list is printed one path per line, preceded by "copy" or "cut".

If the clipboard holds nothing in the requested format, nothing is printed
(exit 0). To save a binary payload:

  winclip paste --as binary > payload.bin`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runPaste(cmd.Context(), v) },
	}

	f := cmd.Flags()
	f.String("as", clip.KindUnicode.String(), "clipboard format to print: text|unicode|binary|files")
	f.Bool("json", false, "output JSON")
	addCommonFlags(cmd)

	return cmd
}

// pasteResult is the --json form of a paste.
type pasteResult struct {
	Kind      string   `json:"kind"`
	Text      *string  `json:"text,omitempty"`
	Data      []byte   `json:"data,omitempty"`
	Size      *int     `json:"size,omitempty"`
	Operation string   `json:"operation,omitempty"`
	Files     []string `json:"files,omitempty"`
}

func runPaste(ctx context.Context, v *viper.Viper) error {
	kind, err := clip.ParseKind(v.GetString("as"))
	if err != nil {
		return err
	}
	c, err := openClipboard(v)
	if err != nil {
		return err
	}

	res, raw, err := paste(ctx, v, c, kind)
	if errors.Is(err, clip.ErrFormatUnavailable) {
		// Requested format not present: print nothing (pbpaste behaviour).
		return nil
	}
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}

	if v.GetBool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err = os.Stdout.Write(raw)
	return err
}

// paste reads kind from c and returns both output forms.
func paste(ctx context.Context, v *viper.Viper, c *clip.Clipboard, kind clip.Kind) (pasteResult, []byte, error) {
	res := pasteResult{Kind: kind.String()}

	switch kind {
	case clip.KindText:
		b, err := c.GetAsText(ctx)
		if err != nil {
			return res, nil, err
		}
		conv, err := converter(v)
		if err != nil {
			return res, nil, err
		}
		s, err := conv.ANSIToUTF8(b)
		if err != nil {
			return res, nil, err
		}
		res.Text = &s
		return res, []byte(s), nil

	case clip.KindUnicode:
		s, err := c.GetAsTextUnicode(ctx)
		if err != nil {
			return res, nil, err
		}
		res.Text = &s
		return res, []byte(s), nil

	case clip.KindBinary:
		blob, err := c.GetAsBinary(ctx)
		if err != nil {
			return res, nil, err
		}
		n := blob.Len()
		res.Size = &n
		res.Data = wire.Unwrap(blob)
		return res, res.Data, nil

	case clip.KindFiles:
		ok, err := c.Contains(ctx, clip.KindFiles)
		if err != nil {
			return res, nil, err
		}
		if !ok {
			return res, nil, clip.ErrFormatUnavailable
		}
		d, err := c.GetAsDragDropFiles(ctx)
		if err != nil {
			return res, nil, err
		}
		res.Operation = d.Op.String()
		res.Files = d.Files
		out := []byte(d.Op.String() + "\n")
		for _, f := range d.Files {
			out = append(out, f...)
			out = append(out, '\n')
		}
		return res, out, nil
	}
	return res, nil, fmt.Errorf("unknown kind %v", kind)
}
