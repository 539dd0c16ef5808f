package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/quill/parser"
)

// loadConfig binds the flags of the running command and then layers
// QUILL_* environment variables and the optional config file beneath them.
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("quill")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".quill")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	processGlobalFlags(v)
	return nil
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags(v *viper.Viper) {
	if v.GetBool("no-color") {
		color.NoColor = true
	}
}

// newLogger returns the diagnostic sink handed to the parser. Events below
// the configured level are discarded.
func newLogger(v *viper.Viper, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log-level")))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %q", v.GetString("log-level"))
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: v.GetBool("no-color") || !isTerminal(w)}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func parserOptions(v *viper.Viper, filename string, logger zerolog.Logger) []parser.Option {
	return []parser.Option{
		parser.WithFilename(filename),
		parser.WithMaxDepth(v.GetInt("max-depth")),
		parser.WithLogger(logger),
	}
}
