package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/winclip/internal/clip"
)

func newFormatsCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "formats",
		Short:   "Show which formats are on the clipboard",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runFormats(cmd.Context(), v) },
	}

	cmd.Flags().Bool("json", false, "output JSON")
	addCommonFlags(cmd)

	return cmd
}

type formatStatus struct {
	Kind    string `json:"kind"`
	Present bool   `json:"present"`
}

func runFormats(ctx context.Context, v *viper.Viper) error {
	c, err := openClipboard(v)
	if err != nil {
		return err
	}
	present, err := c.Present(ctx)
	if err != nil {
		return fmt.Errorf("formats: %w", err)
	}

	status := make([]formatStatus, len(clip.Kinds))
	for i, k := range clip.Kinds {
		status[i] = formatStatus{Kind: k.String(), Present: slices.Contains(present, k)}
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(status, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	printFormats(os.Stdout, c.StoreName(), status)
	return nil
}

func printFormats(out io.Writer, store string, status []formatStatus) {
	fmt.Fprintf(out, "Store: %s\n\n", store)

	tw := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "KIND\tPRESENT\n")
	_, _ = fmt.Fprintf(tw, "----\t-------\n")
	for _, s := range status {
		mark := "-"
		if s.Present {
			mark = "yes"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", s.Kind, mark)
	}
	_ = tw.Flush()
}
