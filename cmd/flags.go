package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/config"
	"github.com/folashadea/Quantum-Entanglement-Network/internal/flags"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List feature flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := cfg.FlagRegistry()
		for _, f := range flags.Catalog() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-5t  %s\n", f.Name, registry.Enabled(f.Name), f.Description); err != nil {
				return err
			}
		}
		return nil
	},
}

var flagsSetCmd = &cobra.Command{
	Use:   "set NAME true|false",
	Short: "Enable or disable a feature flag in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("flag value must be true or false, got %q", args[1])
		}
		if configFileUsed == "" {
			return fmt.Errorf("no config file to update")
		}
		if err := config.SetFlag(configFileUsed, args[0], enabled, cfg.Flags); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s set to %t in %s\n", args[0], enabled, configFileUsed)
		return err
	},
}

func init() {
	flagsCmd.AddCommand(flagsSetCmd)
	rootCmd.AddCommand(flagsCmd)
}
