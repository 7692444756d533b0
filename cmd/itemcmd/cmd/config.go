package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long:  "Shows the configuration after applying the config file, ITEMCMD_* variables and flags, as YAML.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	out := cmd.OutOrStdout()
	if cfg.File != "" {
		fmt.Fprintf(out, "# from %s\n", cfg.File)
	}
	fmt.Fprint(out, string(data))
	return nil
}
