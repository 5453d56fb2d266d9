package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "metroscan"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "METROSCAN"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
// It uses the global viper instance so cobra flag bindings take effect.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load loads configuration from files, environment variables, and defaults,
// then validates it.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")

	l.addConfigPaths()
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// SetConfigFile forces a specific configuration file path.
func (l *Loader) SetConfigFile(path string) {
	l.v.SetConfigFile(path)
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "metroscan"))
	}
	l.v.AddConfigPath("/etc/metroscan")
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("log_level", "info")
	l.v.SetDefault("verbose", false)

	l.v.SetDefault("recognizer.command", "metroscan-recognize")
	l.v.SetDefault("recognizer.args", []string{})

	l.v.SetDefault("cluster.line_eps", 2e-2)
	l.v.SetDefault("cluster.column_eps", 0.05)

	l.v.SetDefault("decode.start_hour_low", 4)
	l.v.SetDefault("decode.start_hour_high", 7)
	l.v.SetDefault("decode.footer_markers", []string{"表"})
	l.v.SetDefault("decode.footer_signatures", []string{"520"})

	l.v.SetDefault("preprocess.thresholds", map[string]int{
		"燕房":   192,
		"大兴机场": 128,
		"19":   128,
		"10":   75,
	})
	l.v.SetDefault("preprocess.default_threshold", 80)
	l.v.SetDefault("preprocess.max_side", 8192)
	l.v.SetDefault("preprocess.target_side", 3999)
	l.v.SetDefault("preprocess.tall_ratio", 1.5)
	l.v.SetDefault("preprocess.tall_split_routes", []string{"10"})

	l.v.SetDefault("layout.dual_routes", []string{"18"})
	l.v.SetDefault("layout.default_split", 0.5)

	l.v.SetDefault("stations.overrides_file", "")

	l.v.SetDefault("check.min_gap_minutes", 1)
	l.v.SetDefault("check.max_gap_minutes", 12)

	l.v.SetDefault("batch.workers", 10)
	l.v.SetDefault("batch.recursive", false)
	l.v.SetDefault("batch.output_file", "timetable.jsonl")

	l.v.SetDefault("server.host", "0.0.0.0")
	l.v.SetDefault("server.port", 8443)
	l.v.SetDefault("server.data_dir", "data")
	l.v.SetDefault("server.read_timeout_sec", 30)
}
