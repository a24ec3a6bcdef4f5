package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/agiangrant/flowlayout/cmd/flowctl/commands"
)

const version = "0.1.0"

func main() {
	var verbose bool
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	rootCmd := &cobra.Command{
		Use:           "flowctl",
		Short:         "inspect flow layouts and scroll physics",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				level.Set(slog.LevelDebug)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every layout pass and scroll state change")

	rootCmd.AddCommand(
		commands.NewLayoutCommand(logger),
		commands.NewFlingCommand(logger),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
