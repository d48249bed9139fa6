package main

import (
	"github.com/spf13/cobra"

	"github.com/spicery/span-tokenizer/pkg/config"
)

func newMakeConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make-config",
		Short: "Print the default helper configuration",
		Long: `Print the default helper configuration. The output is a starting point
for a --config file: reorder or trim the helpers list, or add regular
expression helpers under patterns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			format, err := config.ParseFormat(formatName)
			if err != nil {
				return err
			}
			data, err := config.Default().Marshal(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", "config format (yaml|toml)")
	return cmd
}
