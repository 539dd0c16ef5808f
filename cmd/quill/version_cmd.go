package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func newVersionCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{Version: version, Commit: commit, Date: date}
			switch strings.ToLower(v.GetString("output")) {
			case "json":
				data, err := marshalJSON(info, useColor(v, cmd.OutOrStdout()))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "", "text":
				fmt.Fprintf(cmd.OutOrStdout(), "quill %s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
			default:
				return fmt.Errorf("unknown output format: %s", v.GetString("output"))
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	return cmd
}
