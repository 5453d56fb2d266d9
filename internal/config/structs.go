package config

// Config is the complete configuration for metroscan. It covers all commands
// (parse, check, serve) and loads from configuration files, environment
// variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// External recognizer invocation
	Recognizer RecognizerConfig `mapstructure:"recognizer" yaml:"recognizer" json:"recognizer"`

	// Fragment clustering tolerances
	Cluster ClusterConfig `mapstructure:"cluster" yaml:"cluster" json:"cluster"`

	// Digit-stream decoder heuristics
	Decode DecodeConfig `mapstructure:"decode" yaml:"decode" json:"decode"`

	// Image preparation
	Preprocess PreprocessConfig `mapstructure:"preprocess" yaml:"preprocess" json:"preprocess"`

	// Board layout handling
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout" json:"layout"`

	// Station reference
	Stations StationsConfig `mapstructure:"stations" yaml:"stations" json:"stations"`

	// Schedule consistency checking
	Check CheckConfig `mapstructure:"check" yaml:"check" json:"check"`

	// Batch processing
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`

	// Data server (serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// RecognizerConfig locates the external recognition engine. The command
// receives a PNG on stdin and must print a JSON fragment array.
type RecognizerConfig struct {
	Command string   `mapstructure:"command" yaml:"command" json:"command"`
	Args    []string `mapstructure:"args" yaml:"args" json:"args"`
}

// ClusterConfig contains fragment clustering tolerances.
type ClusterConfig struct {
	LineEps   float64 `mapstructure:"line_eps" yaml:"line_eps" json:"line_eps"`
	ColumnEps float64 `mapstructure:"column_eps" yaml:"column_eps" json:"column_eps"`
}

// DecodeConfig contains the digit-stream decoder heuristics.
type DecodeConfig struct {
	StartHourLow     int      `mapstructure:"start_hour_low" yaml:"start_hour_low" json:"start_hour_low"`
	StartHourHigh    int      `mapstructure:"start_hour_high" yaml:"start_hour_high" json:"start_hour_high"`
	FooterMarkers    []string `mapstructure:"footer_markers" yaml:"footer_markers" json:"footer_markers"`
	FooterSignatures []string `mapstructure:"footer_signatures" yaml:"footer_signatures" json:"footer_signatures"`
}

// PreprocessConfig contains image preparation settings.
type PreprocessConfig struct {
	Thresholds       map[string]int `mapstructure:"thresholds" yaml:"thresholds" json:"thresholds"`
	DefaultThreshold int            `mapstructure:"default_threshold" yaml:"default_threshold" json:"default_threshold"`
	MaxSide          int            `mapstructure:"max_side" yaml:"max_side" json:"max_side"`
	TargetSide       int            `mapstructure:"target_side" yaml:"target_side" json:"target_side"`
	TallRatio        float64        `mapstructure:"tall_ratio" yaml:"tall_ratio" json:"tall_ratio"`
	TallSplitRoutes  []string       `mapstructure:"tall_split_routes" yaml:"tall_split_routes" json:"tall_split_routes"`
}

// LayoutConfig contains board layout handling settings.
type LayoutConfig struct {
	DualRoutes   []string `mapstructure:"dual_routes" yaml:"dual_routes" json:"dual_routes"`
	DefaultSplit float64  `mapstructure:"default_split" yaml:"default_split" json:"default_split"`
}

// StationsConfig contains station reference settings.
type StationsConfig struct {
	OverridesFile string `mapstructure:"overrides_file" yaml:"overrides_file" json:"overrides_file"`
}

// CheckConfig contains the plausible headway bounds.
type CheckConfig struct {
	MinGapMinutes int `mapstructure:"min_gap_minutes" yaml:"min_gap_minutes" json:"min_gap_minutes"`
	MaxGapMinutes int `mapstructure:"max_gap_minutes" yaml:"max_gap_minutes" json:"max_gap_minutes"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers    int    `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive  bool   `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	OutputFile string `mapstructure:"output_file" yaml:"output_file" json:"output_file"`
}

// ServerConfig contains data server settings.
type ServerConfig struct {
	Host           string `mapstructure:"host" yaml:"host" json:"host"`
	Port           int    `mapstructure:"port" yaml:"port" json:"port"`
	DataDir        string `mapstructure:"data_dir" yaml:"data_dir" json:"data_dir"`
	ReadTimeoutSec int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec" json:"read_timeout_sec"`
}
