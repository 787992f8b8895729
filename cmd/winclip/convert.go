package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/winclip/internal/textenc"
)

// errOddWide is returned for UTF-16 input that ends in half a code unit.
var errOddWide = errors.New("--from wide: odd input length")

func newConvertCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "convert --from FORM --to FORM",
		Short: "Convert stdin between UTF-8, UTF-16 and a legacy code page",
		Long: `Reads stdin in the --from form and writes it to stdout in the --to form.

Forms:
  utf8  UTF-8
  wide  UTF-16, little-endian, no BOM
  ansi  the legacy code page selected by --codepage

Characters the code page cannot represent become '?'. Input that cannot be
decoded at all (invalid UTF-8, unpaired surrogates) is an error.

  winclip convert --from utf8 --to ansi --codepage ibm437 < readme.txt`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runConvert(v, os.Stdin, os.Stdout) },
	}

	f := cmd.Flags()
	f.String("from", "utf8", "input form: utf8|wide|ansi")
	f.String("to", "wide", "output form: utf8|wide|ansi")
	addCodepageFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runConvert(v *viper.Viper, in io.Reader, out io.Writer) error {
	conv, err := converter(v)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	res, err := convert(conv, strings.ToLower(v.GetString("from")), strings.ToLower(v.GetString("to")), data)
	if err != nil {
		return err
	}
	_, err = out.Write(res)
	return err
}

// convert routes data through UTF-8 or UTF-16 as the forms require.
func convert(conv *textenc.Converter, from, to string, data []byte) ([]byte, error) {
	var w textenc.Wide
	var err error
	switch from {
	case "utf8":
		w, err = conv.UTF8ToWide(string(data))
	case "wide":
		if len(data)%2 != 0 {
			return nil, fmt.Errorf("%w: %d bytes", errOddWide, len(data))
		}
		w = textenc.BytesToWide(data)
	case "ansi":
		w, err = conv.ANSIToWide(data)
	default:
		return nil, fmt.Errorf("unknown --from %q (want utf8, wide or ansi)", from)
	}
	if err != nil {
		return nil, err
	}

	switch to {
	case "utf8":
		s, err := conv.WideToUTF8(w)
		return []byte(s), err
	case "wide":
		return textenc.WideToBytes(w), nil
	case "ansi":
		return conv.WideToANSI(w)
	}
	return nil, fmt.Errorf("unknown --to %q (want utf8, wide or ansi)", to)
}
