package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/statboard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set statboard configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		for _, line := range cfg.Lines() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %v\n", err)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk. Keys: data_dir, base_url, players_file,
education_file, load_timeout_sec, density_points, density_categories (comma
separated), log_level, bandwidths.<measure> (e.g. bandwidths.weight).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Reload so flag overrides are not persisted.
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
