package main

import (
	"errors"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var red = color.New(color.FgRed).SprintFunc()

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useColor reports whether output written to w should be colorized.
func useColor(v *viper.Viper, w io.Writer) bool {
	return !v.GetBool("no-color") && !color.NoColor && isTerminal(w)
}

// source is a named piece of quill code to process.
type source struct {
	name string
	code string
}

// getSources determines what code is to be processed. There are three
// possibilities:
// 1. --code <code>
// 2. paths as args
// 3. stdin, when neither is given
func getSources(cmd *cobra.Command, args []string) ([]source, error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	if codeFlagSet && len(args) > 0 {
		return nil, errors.New("multiple input sources specified")
	}
	if codeFlagSet {
		code, err := cmd.Flags().GetString("code")
		if err != nil {
			return nil, err
		}
		return []source{{code: code}}, nil
	}
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return []source{{name: "<stdin>", code: string(data)}}, nil
	}
	sources := make([]source, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{name: path, code: string(data)})
	}
	return sources, nil
}
