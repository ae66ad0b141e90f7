package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported HTTP routers
var ValidRouters = []string{"nethttp", "gin", "echo", "fiber"}

// Valid log levels
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Repository and listing roots for release and snapshot mode
const (
	DefaultReleaseListing     = "https://repo1.maven.org/maven2/com/liferay/faces/archetype/"
	DefaultSnapshotListing    = "https://oss.sonatype.org/content/repositories/snapshots/com/liferay/faces/archetype/"
	DefaultReleaseRepository  = "https://repo1.maven.org/maven2/"
	DefaultSnapshotRepository = "https://oss.sonatype.org/content/repositories/snapshots/"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error in field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return "no validation errors"
	}

	var messages []string
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

func (errs ValidationErrors) HasErrors() bool {
	return len(errs) > 0
}

// PortalConfig is the portal.yaml file
type PortalConfig struct {
	Name        string            `yaml:"name"`
	Port        int               `yaml:"port"`
	Router      string            `yaml:"router"`
	LogLevel    string            `yaml:"log_level"`
	CacheDir    string            `yaml:"cache_dir"`
	HTTPTimeout time.Duration     `yaml:"http_timeout"`
	Watch       bool              `yaml:"watch"`
	Sources     SourcesConfig     `yaml:"sources"`
	Parameters  map[string]string `yaml:"parameters"`
}

// SourcesConfig holds the directory listing and repository roots
type SourcesConfig struct {
	ReleaseListing     string `yaml:"release_listing"`
	SnapshotListing    string `yaml:"snapshot_listing"`
	ReleaseRepository  string `yaml:"release_repository"`
	SnapshotRepository string `yaml:"snapshot_repository"`
}

// ConfigLoadOptions provides options for loading configuration
type ConfigLoadOptions struct {
	Path              string
	EnvFile           string
	AllowMissing      bool
	ValidateStructure bool
	ApplyDefaults     bool
	ApplyEnv          bool
	Quiet             bool
}

// DefaultLoadOptions returns sensible defaults for config loading
func DefaultLoadOptions() ConfigLoadOptions {
	return ConfigLoadOptions{
		Path:              "portal.yaml",
		EnvFile:           ".env",
		AllowMissing:      true,
		ValidateStructure: true,
		ApplyDefaults:     true,
		ApplyEnv:          true,
		Quiet:             false,
	}
}

// ConfigManager handles configuration loading, validation, and management
type ConfigManager struct {
	options ConfigLoadOptions
}

// NewConfigManager creates a new configuration manager
func NewConfigManager(options ConfigLoadOptions) *ConfigManager {
	return &ConfigManager{
		options: options,
	}
}

// LoadConfig loads the configured path
func (cm *ConfigManager) LoadConfig() (*PortalConfig, error) {
	return cm.LoadConfigFromPath(cm.options.Path)
}

// LoadConfigFromPath loads configuration from a specific path
func (cm *ConfigManager) LoadConfigFromPath(path string) (*PortalConfig, error) {
	var config PortalConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !cm.options.AllowMissing {
			return nil, fmt.Errorf("configuration file not found: %s\n\nRun 'portal config init' to create one", path)
		}
		if !cm.options.Quiet {
			fmt.Printf("⚠️  Configuration file not found at %s, using defaults\n", path)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %s: %w\n\nPlease check your YAML syntax", path, err)
		}
	}

	if cm.options.ApplyEnv {
		if err := cm.applyEnv(&config); err != nil {
			return nil, err
		}
	}

	if cm.options.ApplyDefaults {
		applyDefaults(&config)
	}

	if cm.options.ValidateStructure {
		if errs := validateConfig(&config); errs.HasErrors() {
			return nil, fmt.Errorf("configuration validation failed:\n%s", formatValidationErrors(errs))
		}
	}

	return &config, nil
}

// applyEnv loads the env file, if any, and applies PORTAL_* overrides
func (cm *ConfigManager) applyEnv(config *PortalConfig) error {
	if cm.options.EnvFile != "" {
		if err := godotenv.Load(cm.options.EnvFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load env file %s: %w", cm.options.EnvFile, err)
		}
	}

	if v := os.Getenv("PORTAL_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_PORT %q: %w", v, err)
		}
		config.Port = port
	}
	if v := os.Getenv("PORTAL_ROUTER"); v != "" {
		config.Router = v
	}
	if v := os.Getenv("PORTAL_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("PORTAL_CACHE_DIR"); v != "" {
		config.CacheDir = v
	}
	if v := os.Getenv("PORTAL_SNAPSHOT"); v != "" {
		if config.Parameters == nil {
			config.Parameters = make(map[string]string)
		}
		config.Parameters[SnapshotParam] = v
	}

	return nil
}

// applyDefaults sets default values for missing configuration fields
func applyDefaults(config *PortalConfig) {
	if config.Name == "" {
		config.Name = "faces-archetype-portal"
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Router == "" {
		config.Router = "nethttp"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = 30 * time.Second
	}
	if config.CacheDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			config.CacheDir = filepath.Join(dir, "archetype-portal")
		} else {
			config.CacheDir = filepath.Join(os.TempDir(), "archetype-portal")
		}
	}

	if config.Sources.ReleaseListing == "" {
		config.Sources.ReleaseListing = DefaultReleaseListing
	}
	if config.Sources.SnapshotListing == "" {
		config.Sources.SnapshotListing = DefaultSnapshotListing
	}
	if config.Sources.ReleaseRepository == "" {
		config.Sources.ReleaseRepository = DefaultReleaseRepository
	}
	if config.Sources.SnapshotRepository == "" {
		config.Sources.SnapshotRepository = DefaultSnapshotRepository
	}

	if config.Parameters == nil {
		config.Parameters = make(map[string]string)
	}
}

// validateConfig performs validation on the configuration
func validateConfig(config *PortalConfig) ValidationErrors {
	var errors ValidationErrors

	if config.Port <= 0 || config.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "port",
			Value:   config.Port,
			Message: "port must be between 1 and 65535",
		})
	}

	if !contains(ValidRouters, config.Router) {
		errors = append(errors, ValidationError{
			Field:   "router",
			Value:   config.Router,
			Message: fmt.Sprintf("unsupported router '%s', valid options are: %s", config.Router, strings.Join(ValidRouters, ", ")),
		})
	}

	if !contains(ValidLogLevels, config.LogLevel) {
		errors = append(errors, ValidationError{
			Field:   "log_level",
			Value:   config.LogLevel,
			Message: fmt.Sprintf("unsupported log level '%s', valid options are: %s", config.LogLevel, strings.Join(ValidLogLevels, ", ")),
		})
	}

	if config.HTTPTimeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "http_timeout",
			Value:   config.HTTPTimeout,
			Message: "http timeout cannot be negative",
		})
	}

	if v, ok := config.Parameters[SnapshotParam]; ok && v != "true" && v != "false" {
		errors = append(errors, ValidationError{
			Field:   "parameters.snapshot",
			Value:   v,
			Message: "snapshot must be \"true\" or \"false\"",
		})
	}

	for key := range config.Parameters {
		if platformKeyPattern.MatchString(key) && len(strings.Split(key, " ")) < 2 {
			errors = append(errors, ValidationError{
				Field:   "parameters." + key,
				Value:   key,
				Message: "version parameter must be 'liferay-<version> <jsf version>'",
			})
		}
	}

	return errors
}

// formatValidationErrors formats validation errors in a user-friendly way
func formatValidationErrors(errors ValidationErrors) string {
	var lines []string
	for i, err := range errors {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}
	return strings.Join(lines, "\n")
}

// ListingURL returns the directory listing root for the given mode
func (c *PortalConfig) ListingURL(snapshot bool) string {
	if snapshot {
		return c.Sources.SnapshotListing
	}
	return c.Sources.ReleaseListing
}

// RepositoryURL returns the resolution repository for the given mode
func (c *PortalConfig) RepositoryURL(snapshot bool) string {
	if snapshot {
		return c.Sources.SnapshotRepository
	}
	return c.Sources.ReleaseRepository
}

// Summary returns a formatted description of the configuration
func (c *PortalConfig) Summary(path string) string {
	absPath, _ := filepath.Abs(path)
	tables := ParseParameters(c.Parameters, false)

	var lines []string
	lines = append(lines, "📋 Configuration Summary")
	lines = append(lines, fmt.Sprintf("   Path: %s", absPath))
	lines = append(lines, fmt.Sprintf("   Name: %s", c.Name))
	lines = append(lines, fmt.Sprintf("   Port: %d", c.Port))
	lines = append(lines, fmt.Sprintf("   Router: %s", c.Router))
	lines = append(lines, fmt.Sprintf("   Snapshot: %t", tables.Snapshot))
	lines = append(lines, fmt.Sprintf("   Listing: %s", c.ListingURL(tables.Snapshot)))
	lines = append(lines, fmt.Sprintf("   Repository: %s", c.RepositoryURL(tables.Snapshot)))
	lines = append(lines, fmt.Sprintf("   Liferay versions: %s", strings.Join(tables.PlatformVersions, ", ")))
	lines = append(lines, fmt.Sprintf("   JSF versions: %s", strings.Join(tables.FrameworkVersions, ", ")))
	lines = append(lines, fmt.Sprintf("   Cache: %s", c.CacheDir))

	return strings.Join(lines, "\n")
}

// DefaultConfig returns the configuration written by 'portal config init'
func DefaultConfig() *PortalConfig {
	config := &PortalConfig{
		Parameters: map[string]string{
			SnapshotParam:    "false",
			"liferay-70 2.2": "3",
			"liferay-62 2.2": "2",
		},
	}
	applyDefaults(config)
	config.CacheDir = ""
	return config
}

// WriteConfig writes config to path as YAML
func WriteConfig(path string, config *PortalConfig) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
