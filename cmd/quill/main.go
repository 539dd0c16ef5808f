package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/quill/parser"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errParseFailed is returned by commands whose diagnostics were already
// written to stderr. It only sets the exit status.
var errParseFailed = errors.New("parse failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(viper.New()).ExecuteContext(ctx)
	if err != nil {
		if !errors.Is(err, errParseFailed) {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "quill",
		Short:         "Syntax front end for the quill language",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd)
		},
	}

	// Global flags
	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default is .quill.yaml in the working or home directory)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-level", "error", "Level for parser diagnostics on stderr (debug, info, warn, error, disabled)")
	flags.Int("max-depth", parser.DefaultMaxDepth, "Maximum nesting depth accepted by the parser")

	root.AddCommand(
		newParseCmd(v),
		newTokensCmd(v),
		newVersionCmd(v),
	)
	return root
}
