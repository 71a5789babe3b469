package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/zappy/errors"
	"github.com/teranos/zappy/logger"
)

// ConfigFileName is the file looked up in /etc/zappy, ~/.zappy and the project tree
const ConfigFileName = "am.toml"

var (
	globalConfig  *Config
	viperInstance *viper.Viper
	loadedFiles   []string
)

// Load reads the zappy configuration using Viper.
// The result is cached; call Reset to force a reload.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	config, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// BindFlag lets a command-line flag override key. Must be called before Load.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return errors.Newf("no flag to bind for %s", key)
	}
	return initViper().BindPFlag(key, flag)
}

// LoadWithViper loads and validates configuration from a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path, ignoring the environment
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	return LoadWithViper(v)
}

// LoadedFiles returns the config files merged by the last Load, lowest precedence first
func LoadedFiles() []string {
	return append([]string(nil), loadedFiles...)
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	loadedFiles = nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// ZAPPY_API_URL, ZAPPY_API_TIMEOUT_SECONDS, ZAPPY_DISPLAY_TABLE_WIDTH, ...
	v.SetEnvPrefix("ZAPPY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	BindSensitiveEnvVars(v)
	SetDefaults(v)
	loadedFiles = mergeConfigFiles(v)

	viperInstance = v
	return v
}

// SearchPaths lists the candidate config files, lowest precedence first.
// Files that do not exist are included.
func SearchPaths() []string {
	return configSearchPaths()
}

// configSearchPaths lists candidate config files, lowest precedence first
func configSearchPaths() []string {
	paths := []string{filepath.Join("/etc/zappy", ConfigFileName)}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".zappy", ConfigFileName))
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		paths = append(paths, projectConfig)
	}

	return paths
}

// findProjectConfig searches for am.toml by walking up the directory tree.
// Returns the first path found, or empty string if none found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	home, _ := os.UserHomeDir()
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		// ~/.zappy/am.toml is the user config, ~/am.toml is not a project
		if dir != home {
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// mergeConfigFiles merges every existing config file into v's config layer.
// Env vars and flags still take precedence because MergeConfigMap writes below them.
func mergeConfigFiles(v *viper.Viper) []string {
	var merged []string
	for _, configPath := range configSearchPaths() {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(configPath)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			logger.Warnw("skipping unreadable config file", logger.FieldConfigFile, configPath, logger.FieldError, err)
			continue
		}

		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			logger.Warnw("skipping config file", logger.FieldConfigFile, configPath, logger.FieldError, err)
			continue
		}
		merged = append(merged, configPath)
	}
	return merged
}
