package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/liferay-faces/archetype-portal/internal/config"
)

func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage portal configuration",
		Long:  "Validate, view, and create the archetype portal configuration",
	}

	cmd.AddCommand(configValidateCmd())
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())

	return cmd
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigValidate,
	}
}

func configShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [config-file]",
		Short: "Show configuration information",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigShow,
	}

	cmd.Flags().Bool("verbose", false, "Print the effective configuration as YAML")

	return cmd
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [config-file]",
		Short: "Initialize a new configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite existing configuration file")
	cmd.Flags().Bool("snapshot", false, "Scrape the snapshot repository")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath(args)

	fmt.Printf("🔍 Validating configuration file: %s\n", configPath)

	cm := config.NewConfigManager(config.ConfigLoadOptions{
		Path:              configPath,
		AllowMissing:      false,
		ValidateStructure: true,
		ApplyDefaults:     true,
		Quiet:             false,
	})

	cfg, err := cm.LoadConfig()
	if err != nil {
		fmt.Printf("❌ Configuration validation failed:\n%v\n", err)
		return err
	}

	fmt.Printf("✅ Configuration is valid!\n")
	fmt.Printf("\n%s\n", cfg.Summary(configPath))

	tables := config.ParseParameters(cfg.Parameters, false)
	if len(tables.Platform) == 0 {
		fmt.Printf("\n⚠️  No 'liferay-<version> <jsf version>' parameters: archetypes will have no Liferay or JSF version\n")
	}

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath(args)
	verbose, _ := cmd.Flags().GetBool("verbose")

	options := config.DefaultLoadOptions()
	options.Path = configPath

	cfg, err := config.NewConfigManager(options).LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Printf("%s\n", cfg.Summary(configPath))

	if verbose {
		fmt.Printf("\n📝 Effective Configuration:\n")

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}

		fmt.Printf("```yaml\n%s```\n", string(data))
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath(args)
	force, _ := cmd.Flags().GetBool("force")
	snapshot, _ := cmd.Flags().GetBool("snapshot")

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s\nUse --force to overwrite", configPath)
		}
	}

	cfg := config.DefaultConfig()
	if snapshot {
		cfg.Parameters[config.SnapshotParam] = "true"
	}

	if err := config.WriteConfig(configPath, cfg); err != nil {
		return err
	}

	fmt.Printf("✅ Created configuration file: %s\n", configPath)
	fmt.Printf("   Router: %s\n", cfg.Router)
	fmt.Printf("   Snapshot: %t\n", snapshot)

	return nil
}

func getConfigPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultConfigPath
}
