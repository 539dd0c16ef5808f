package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/quill/internal/lexer"
	"github.com/deepnoodle-ai/quill/parser"
)

var outputFormatsCompletion = []string{"json", "text"}

func newParseCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse quill source and print the syntax tree",
		Long: `Parse quill source and print the syntax tree.

Declarations that fail to parse are reported on stderr and left out of the
output; the rest of the file is still printed. The exit status is non-zero
if any error was reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, v, args)
		},
	}
	cmd.Flags().StringP("code", "c", "", "Code to parse")
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	cmd.Flags().BoolP("watch", "w", false, "Parse files again whenever they change")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runParse(cmd *cobra.Command, v *viper.Viper, args []string) error {
	format := strings.ToLower(v.GetString("output"))
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown output format: %s", format)
	}
	watch := v.GetBool("watch")
	if watch && len(args) == 0 {
		return fmt.Errorf("--watch requires at least one file")
	}
	sources, err := getSources(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(v, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	run := func(src source) bool {
		ok, err := parseSource(ctx, v, cmd.OutOrStdout(), cmd.ErrOrStderr(), src, format, parserOptions(v, src.name, logger))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), red(err.Error()))
			return false
		}
		return ok
	}

	failed := false
	for _, src := range sources {
		if !run(src) {
			failed = true
		}
	}
	if watch {
		return watchFiles(ctx, args, func(path string) {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), red(err.Error()))
				return
			}
			run(source{name: path, code: string(data)})
		})
	}
	if failed {
		return errParseFailed
	}
	return nil
}

// parseSource parses one source, writes the tree to out and diagnostics to
// errOut. It reports whether the source parsed cleanly; the error is set
// only when parsing could not run at all.
func parseSource(ctx context.Context, v *viper.Viper, out, errOut io.Writer, src source, format string, opts []parser.Option) (bool, error) {
	p, err := parser.New(lexer.New(src.code, lexer.WithFilename(src.name)), opts...)
	if err != nil {
		return false, err
	}
	defer p.Release()

	program, parseErr := p.Parse(ctx)
	if program == nil {
		return false, parseErr
	}
	switch format {
	case "json":
		data, err := marshalAST(program, useColor(v, out))
		if err != nil {
			return false, err
		}
		fmt.Fprintln(out, string(data))
	default:
		if text := program.String(); text != "" {
			fmt.Fprintln(out, text)
		}
	}
	if parseErr != nil {
		fmt.Fprint(errOut, parser.FormatErrors(parseErr, useColor(v, errOut)))
		return false, nil
	}
	return true, nil
}
