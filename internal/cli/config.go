package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ironsheep/shirt-mockup-mcp/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage shirt-mockup-mcp configuration.

Config file location: ~/.shirt-mockup/config.yaml (override with --config)

Subcommands:
  show    Show the effective configuration
  init    Write a default configuration file
  path    Print the configuration file path`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after environment overrides are applied.
Defaults are shown when no config file exists.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to the config file path.

Fails if the file already exists unless --force is given.`,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
		return nil
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func newLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	return config.NewLoader()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file: (defaults)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	fmt.Fprintln(cmd.OutOrStdout(), "Environment:")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{config.EnvPlainPadding, "plain padding ratio"},
		{config.EnvModelPadding, "model padding ratio"},
		{config.EnvPlainOffset, "plain vertical offset %"},
		{config.EnvModelOffset, "model vertical offset %"},
		{config.EnvThreshold, "detection threshold"},
		{config.EnvBlurKernel, "detection blur kernel"},
		{config.EnvWorkers, "batch workers"},
		{EnvLogLevel, "log level"},
	}
	for _, ev := range envVars {
		value := os.Getenv(ev.key)
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, value)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	if configForce {
		if err := loader.Save(config.DefaultConfig()); err != nil {
			return err
		}
	} else if err := loader.Init(); err != nil {
		return fmt.Errorf("%w (use --force to overwrite)", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file written: %s\n", loader.ConfigPath())
	return nil
}
