// winclip: structured access to the system clipboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "winclip",
		Short: "Read and write text, binary data and file lists on the clipboard",
		Long: `winclip reads and writes the system clipboard in the formats Windows
applications exchange: code-page text, UTF-16 text, an opaque "Binary" blob
and cut/copied file lists (the Explorer file-drop format).

On Windows the native clipboard is used. Elsewhere text goes through the
desktop clipboard and the other formats are kept for the life of the process.
"winclip classify" and "winclip convert" work on stdin and never touch the
clipboard.

Config file search order (first found wins):
  /etc/winclip/winclip.toml
  $HOME/.config/winclip/winclip.toml
  path supplied via --config

All flags can be set via WINCLIP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCopyCmd(),
		newPasteCmd(),
		newFormatsCmd(),
		newEmptyCmd(),
		newClassifyCmd(),
		newConvertCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("winclip %s\n", Version)
		},
	}
}
