package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/ytplayer/pkg/options"
)

func init() {
	rootCmd.AddCommand(optionsCmd)
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Print the resolved player configuration",
	Long: `Print the player configuration after applying ytplayer.yaml from
--config-dir over the defaults. Missing files are not an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := options.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func loadConfig() (options.Config, error) {
	cfg, err := options.LoadOptional(fs, rootFlags.configDir)
	if err != nil {
		return options.Config{}, err
	}
	if err := cfg.Player.Validate(); err != nil {
		return options.Config{}, err
	}
	return cfg, nil
}
