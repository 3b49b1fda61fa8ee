package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/gapscan/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or generate a configuration file",
	Long: `Config prints the default configuration as YAML, or writes it to a file
with --out so it can be edited and passed to other commands.`,
	RunE: runConfig,
}

var cfgOut string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVarP(&cfgOut, "out", "o", "", "write the default config to this path instead of stdout")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	if cfgOut != "" {
		if err := cfg.SaveToFile(cfgOut); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", cfgOut)
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
