package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/quill/internal/lexer"
	"github.com/deepnoodle-ai/quill/internal/token"
)

func newTokensCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of quill source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := getSources(cmd, args)
			if err != nil {
				return err
			}
			if !printTokens(cmd.OutOrStdout(), sources[0]) {
				return errParseFailed
			}
			return nil
		},
	}
	cmd.Flags().StringP("code", "c", "", "Code to tokenize")
	return cmd
}

// printTokens writes one line per token: position, type and literal.
// Malformed lexemes are printed with their error. It reports whether the
// whole input lexed cleanly.
func printTokens(out io.Writer, src source) bool {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	clean := true
	l := lexer.New(src.code, lexer.WithFilename(src.name))
	for {
		tok, err := l.Next()
		pos := fmt.Sprintf("%d:%d", tok.StartPosition.LineNumber(), tok.StartPosition.ColumnNumber())
		if err != nil {
			clean = false
			fmt.Fprintf(tw, "%s\t%s\t%q\t%s\n", pos, tok.Type, tok.Literal, red(err.Error()))
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%q\n", pos, tok.Type, tok.Literal)
		}
		if tok.Type == token.EOF {
			return clean
		}
	}
}
