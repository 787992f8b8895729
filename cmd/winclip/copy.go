package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/winclip/internal/clip"
	"go.klb.dev/winclip/internal/dropfiles"
	"go.klb.dev/winclip/internal/wire"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy [--files [--op copy|cut] PATH...]",
		Short: "Copy stdin or a list of files to the clipboard (like pbcopy)",
		Long: `Reads stdin and puts it on the clipboard, replacing its contents.

--as selects the clipboard format:
  unicode  UTF-8 stdin stored as UTF-16 text (default)
  text     stdin stored as code-page text (see --codepage)
  binary   stdin stored byte for byte under the "Binary" format

With --files the arguments are put on the clipboard as a file list that
Explorer can paste. --op cut (or --cut) marks them as cut instead of copied:

  winclip copy --files --op cut report.pdf notes.txt`,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(cmd.Context(), v, cmd.InOrStdin(), args)
		},
	}

	f := cmd.Flags()
	f.String("as", clip.KindUnicode.String(), "clipboard format for stdin: text|unicode|binary")
	f.Bool("files", false, "copy the PATH arguments as a file list")
	f.String("op", dropfiles.Copy.String(), "with --files: copy|cut (move is a synonym for cut)")
	f.Bool("cut", false, "shorthand for --op cut")
	addCommonFlags(cmd)

	return cmd
}

func runCopy(ctx context.Context, v *viper.Viper, in io.Reader, args []string) error {
	c, err := openClipboard(v)
	if err != nil {
		return err
	}
	return copyTo(ctx, v, c, in, args)
}

func copyTo(ctx context.Context, v *viper.Viper, c *clip.Clipboard, in io.Reader, args []string) error {
	if v.GetBool("files") {
		op, err := copyOperation(v)
		if err != nil {
			return err
		}
		return copyFiles(ctx, c, args, op)
	}
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments %q (did you mean --files?)", args)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	kind, err := clip.ParseKind(v.GetString("as"))
	if err != nil {
		return err
	}
	switch kind {
	case clip.KindText:
		conv, err := converter(v)
		if err != nil {
			return err
		}
		text, err := conv.UTF8ToANSI(string(data))
		if err != nil {
			slog.Debug("stdin is not UTF-8, storing bytes unchanged", "err", err)
			text = data
		}
		return c.SetText(ctx, text)
	case clip.KindUnicode:
		return c.SetTextUnicode(ctx, string(data))
	case clip.KindBinary:
		return c.SetBinary(ctx, wire.Wrap(data))
	}
	return fmt.Errorf("cannot copy stdin as %v (use --files)", kind)
}

func copyOperation(v *viper.Viper) (dropfiles.Operation, error) {
	if v.GetBool("cut") {
		return dropfiles.Cut, nil
	}
	op, err := dropfiles.ParseOperation(v.GetString("op"))
	if err != nil {
		return 0, fmt.Errorf("--op: %w", err)
	}
	return op, nil
}

func copyFiles(ctx context.Context, c *clip.Clipboard, paths []string, op dropfiles.Operation) error {
	if len(paths) == 0 {
		return fmt.Errorf("--files needs at least one PATH")
	}

	abs := make([]string, len(paths))
	for i, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		if _, err := os.Stat(a); err != nil {
			slog.Warn("file does not exist", "path", a)
		}
		abs[i] = a
	}

	d, err := dropfiles.NewDescriptor(op, abs...)
	if err != nil {
		return err
	}
	return c.SetDragDropFiles(ctx, d)
}
