package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/liferay-faces/archetype-portal/internal/catalog"
	"github.com/liferay-faces/archetype-portal/internal/config"
	"github.com/liferay-faces/archetype-portal/internal/extract"
	"github.com/liferay-faces/archetype-portal/internal/listing"
	"github.com/liferay-faces/archetype-portal/internal/resolver"
	"github.com/liferay-faces/archetype-portal/internal/service"
)

const defaultConfigPath = "portal.yaml"

func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", defaultConfigPath, "Path to the portal configuration file")
}

// loadConfig reads the --config file, falling back to defaults when it is
// missing
func loadConfig(cmd *cobra.Command) (*config.PortalConfig, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.NewConfigManager(loadOptions(path)).LoadConfig()
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// loadOptions reads path plus the .env file next to it
func loadOptions(path string) config.ConfigLoadOptions {
	options := config.DefaultLoadOptions()
	options.Path = path
	options.EnvFile = filepath.Join(filepath.Dir(path), ".env")
	return options
}

// reloadConfig reads the configuration again after the file changed
func reloadConfig(path string) (*config.PortalConfig, error) {
	options := loadOptions(path)
	options.Quiet = true
	return config.NewConfigManager(options).LoadConfig()
}

// newLogger creates the service logger and makes it the package default
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "portal",
		ReportTimestamp: true,
	})

	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}

	log.SetDefault(logger)
	return logger
}

// newService wires listing, resolution and extraction into an archetype service
func newService(cfg *config.PortalConfig, logger *log.Logger) (*service.Service, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	release, err := resolver.NewMavenClient(resolver.Options{
		RepositoryURL: cfg.RepositoryURL(false),
		CacheDir:      filepath.Join(cfg.CacheDir, "releases"),
		HTTPClient:    httpClient,
		Logger:        logger.WithPrefix("resolver"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create release resolver: %w", err)
	}

	snapshot, err := resolver.NewMavenClient(resolver.Options{
		RepositoryURL: cfg.RepositoryURL(true),
		Snapshots:     true,
		CacheDir:      filepath.Join(cfg.CacheDir, "snapshots"),
		HTTPClient:    httpClient,
		Logger:        logger.WithPrefix("resolver"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot resolver: %w", err)
	}

	builder := catalog.NewBuilder(catalog.Options{
		Lister:    listing.NewFetcher(httpClient),
		Extractor: extract.Archive{},
		Resolvers: func(snapshotMode bool) resolver.Client {
			if snapshotMode {
				return snapshot
			}
			return release
		},
		ReleaseContext:  cfg.ListingURL(false),
		SnapshotContext: cfg.ListingURL(true),
		Logger:          logger.WithPrefix("catalog"),
	})

	return service.New(builder, logger), nil
}
