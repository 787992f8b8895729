package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newEmptyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "empty",
		Short:   "Clear the clipboard",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openClipboard(v)
			if err != nil {
				return err
			}
			return c.Empty(cmd.Context())
		},
	}
	addCommonFlags(cmd)

	return cmd
}
