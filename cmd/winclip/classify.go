package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/winclip/internal/textenc"
)

func newClassifyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "classify [FILE]",
		Short: "Report which text encodings the input is valid in",
		Long: `Reads FILE (or stdin) up to the first NUL byte and reports whether it is
valid ASCII, Windows-1252, ISO-8859-1 and UTF-8, followed by the narrowest
encoding that accepts it.

ISO-8859-1 here excludes control characters, so text containing tabs or
newlines is reported as not ISO-8859-1.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, args []string) error { return runClassify(v, args) },
	}

	cmd.Flags().Bool("json", false, "output JSON")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

type classification struct {
	ASCII     bool   `json:"ascii"`
	CP1252    bool   `json:"cp1252"`
	ISO8859_1 bool   `json:"iso8859_1"`
	UTF8      bool   `json:"utf8"`
	Encoding  string `json:"encoding"`
}

func classify(b []byte) classification {
	return classification{
		ASCII:     textenc.IsASCII(b),
		CP1252:    textenc.IsCP1252Valid(b),
		ISO8859_1: textenc.IsISO8859_1Valid(b),
		UTF8:      textenc.IsUTF8Valid(b),
		Encoding:  textenc.Classify(b).String(),
	}
}

func runClassify(v *viper.Viper, args []string) error {
	in := io.Reader(os.Stdin)
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	res := classify(data)
	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(res, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ascii\t%t\n", res.ASCII)
	_, _ = fmt.Fprintf(tw, "windows-1252\t%t\n", res.CP1252)
	_, _ = fmt.Fprintf(tw, "iso-8859-1\t%t\n", res.ISO8859_1)
	_, _ = fmt.Fprintf(tw, "utf-8\t%t\n", res.UTF8)
	_, _ = fmt.Fprintf(tw, "encoding\t%s\n", res.Encoding)
	return tw.Flush()
}
