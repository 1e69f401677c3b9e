package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = ".shirt-mockup"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"
)

// Environment variables that override the configuration file.
const (
	EnvPlainPadding = "MOCKUP_PLAIN_PADDING"
	EnvModelPadding = "MOCKUP_MODEL_PADDING"
	EnvPlainOffset  = "MOCKUP_PLAIN_OFFSET"
	EnvModelOffset  = "MOCKUP_MODEL_OFFSET"
	EnvThreshold    = "MOCKUP_THRESHOLD"
	EnvBlurKernel   = "MOCKUP_BLUR_KERNEL"
	EnvWorkers      = "MOCKUP_WORKERS"
)

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Loader handles configuration loading and saving.
type Loader struct {
	configDir  string
	configPath string
}

// NewLoader creates a loader for ~/.shirt-mockup/config.yaml.
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ConfigDirName)
	return &Loader{
		configDir:  configDir,
		configPath: filepath.Join(configDir, ConfigFileName),
	}, nil
}

// NewLoaderWithPath creates a loader with a custom config path.
func NewLoaderWithPath(configPath string) *Loader {
	return &Loader{
		configDir:  filepath.Dir(configPath),
		configPath: configPath,
	}
}

// ConfigPath returns the configuration file path.
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load reads the configuration file, applies environment overrides and
// validates the result. A missing file yields the defaults.
//
// Keys absent from the file keep their default values.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(l.configPath)
	switch {
	case err == nil:
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", l.configPath, err)
	}
	return cfg, nil
}

// Save writes the configuration to the file.
func (l *Loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Exists checks if the configuration file exists.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.configPath)
	return err == nil
}

// Init creates a default configuration file.
func (l *Loader) Init() error {
	if l.Exists() {
		return fmt.Errorf("config file already exists: %s", l.configPath)
	}
	return l.Save(DefaultConfig())
}

// ApplyEnv overrides cfg with any MOCKUP_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvPlainPadding, &cfg.Placement.Plain.PaddingRatio},
		{EnvModelPadding, &cfg.Placement.Model.PaddingRatio},
		{EnvPlainOffset, &cfg.Placement.Plain.VerticalOffsetPct},
		{EnvModelOffset, &cfg.Placement.Model.VerticalOffsetPct},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", f.key, v, err)
		}
		*f.dst = parsed
	}

	if v := os.Getenv(EnvThreshold); v != "" {
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 8)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", EnvThreshold, v, err)
		}
		cfg.Detection.Threshold = uint8(parsed)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvBlurKernel, &cfg.Detection.BlurKernel},
		{EnvWorkers, &cfg.Batch.Workers},
	}
	for _, i := range ints {
		v := os.Getenv(i.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", i.key, v, err)
		}
		*i.dst = parsed
	}
	return nil
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
