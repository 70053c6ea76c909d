package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/hydroplan/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the configuration without planning",
	RunE:  validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cmd.Printf("configuration valid: %d months, thermal cost $%.2f/MWh\n",
		len(cfg.Scenario.DemandsMW), cfg.System.ThermalCostUSDPerMWh)
	return nil
}
