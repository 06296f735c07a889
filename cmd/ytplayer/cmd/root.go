// Package cmd implements the ytplayer CLI commands.
//
// The root command configures logging and error reporting, then dispatches
// to subcommands (play, replay, options, version).
package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// fs backs every file the CLI reads. Tests swap in a memory filesystem.
var fs afero.Fs = afero.NewOsFs()

var rootFlags struct {
	logLevel  string
	logFormat string
	verbose   bool
	configDir string
}

var rootCmd = &cobra.Command{
	Use:   "ytplayer",
	Short: "Drive an embedded video player",
	Long: `ytplayer hosts the embedded player bridge against a headless
script runtime. It plays videos and playlists, replays recorded
signal traces, and prints the resolved player configuration.

Use "ytplayer <command> --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd.ErrOrStderr(), rootFlags.logLevel, rootFlags.logFormat, rootFlags.verbose)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text or json)")
	pf.BoolVarP(&rootFlags.verbose, "verbose", "V", false, "Include stack traces in reported errors")
	pf.StringVar(&rootFlags.configDir, "config-dir", ".", "Directory containing ytplayer.yaml")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ytplayer version %s (built %s)\n", Version, BuildTime)
	},
}

// Execute runs the CLI with os.Args.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
