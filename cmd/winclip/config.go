package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/winclip/internal/clip"
	"go.klb.dev/winclip/internal/logging"
	"go.klb.dev/winclip/internal/textenc"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and WINCLIP_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → WINCLIP_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("winclip")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/winclip/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/winclip", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("WINCLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return setupLogging(v)
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: warn)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addCodepageFlag adds the --codepage flag to a command.
func addCodepageFlag(cmd *cobra.Command) {
	cmd.Flags().String("codepage", textenc.DefaultCodepage, "legacy code page for narrow text (IANA name, e.g. windows-1252, iso-8859-15, ibm437)")
}

// addStoreFlags adds the flags selecting and opening the clipboard store.
func addStoreFlags(cmd *cobra.Command) {
	def := clip.DefaultRetryPolicy()
	f := cmd.Flags()
	f.String("store", "system", "clipboard store: system|memory")
	f.Int("open-attempts", def.Attempts, "attempts to open a busy clipboard")
	f.Duration("open-backoff", def.Backoff, "wait between open attempts")
	addCodepageFlag(cmd)
}

// addCommonFlags adds the flags every clipboard command takes.
func addCommonFlags(cmd *cobra.Command) {
	addStoreFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) error {
	format, err := logging.ParseFormat(v.GetString("log-format"))
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(v.GetString("log-level"), slog.LevelWarn)
	if err != nil {
		return err
	}
	logging.Setup(format, level)
	return nil
}

// converter returns the converter for the configured code page.
func converter(v *viper.Viper) (*textenc.Converter, error) {
	return textenc.NewConverter(v.GetString("codepage"))
}

// openClipboard builds a Clipboard from the store, code page and retry
// settings in v.
func openClipboard(v *viper.Viper) (*clip.Clipboard, error) {
	conv, err := converter(v)
	if err != nil {
		return nil, err
	}

	var store clip.Store
	switch name := strings.ToLower(v.GetString("store")); name {
	case "", "system":
		store = clip.System()
	case "memory":
		store = clip.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store %q (want system or memory)", name)
	}

	policy := clip.RetryPolicy{
		Attempts: v.GetInt("open-attempts"),
		Backoff:  v.GetDuration("open-backoff"),
	}
	slog.Debug("opening clipboard", "store", store.Name(), "codepage", conv.Codepage(),
		"attempts", policy.Attempts, "backoff", policy.Backoff)

	return clip.New(store, clip.WithRetryPolicy(policy), clip.WithConverter(conv))
}
