package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pngtools/pngr/internal/env"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - PNG decoding and inspection tool",
	}

	rootCmd.AddCommand(DefineDecodeCommand())
	rootCmd.AddCommand(DefineInfoCommand())

	return rootCmd.Execute()
}
