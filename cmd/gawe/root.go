package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juandisay/GaWe/internal/config"
)

const appName = "GaWe"

// version is set via -ldflags at build time.
var version = "(devel)"

var rootCmd = &cobra.Command{
	Use:           "gawe",
	Short:         "Pomodoro-style session timer",
	Long:          "GaWe runs a session of work and break tasks from the system tray, with idle warnings and background music.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		options, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		return runDesktop(cmd.Context(), options)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "gawe", version)
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(versionCmd)
}
