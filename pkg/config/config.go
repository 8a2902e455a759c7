package config

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/llm-d/llm-d-knapsack/pkg/solver"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "KNAPSACK"

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Flag names registered by AddFlags
const (
	FlagConfig            = "config"
	FlagMaxRecursiveItems = "max-recursive-items"
	FlagMaxTableCells     = "max-table-cells"
	FlagLogLevel          = "log-level"
	FlagLogDevelopment    = "log-development"
	FlagOutput            = "output"
	FlagMetrics           = "metrics"
)

// flagKeys maps flag names onto configuration keys.
var flagKeys = map[string]string{
	FlagMaxRecursiveItems: "solver.maxRecursiveItems",
	FlagMaxTableCells:     "solver.maxTableCells",
	FlagLogLevel:          "logging.level",
	FlagLogDevelopment:    "logging.development",
	FlagOutput:            "output.format",
	FlagMetrics:           "output.metrics",
}

// Config is the complete configuration.
type Config struct {
	Solver  SolverConfig  `mapstructure:"solver" json:"solver"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
	Output  OutputConfig  `mapstructure:"output" json:"output"`
}

// SolverConfig bounds the instances the exact strategies accept.
type SolverConfig struct {
	// MaxRecursiveItems is the largest item count the recursive strategy runs on.
	MaxRecursiveItems int `mapstructure:"maxRecursiveItems" json:"maxRecursiveItems"`
	// MaxTableCells is the largest memo/DP table, in cells, the table strategies allocate.
	MaxTableCells int `mapstructure:"maxTableCells" json:"maxTableCells"`
}

// LoggingConfig selects the log level and encoder.
type LoggingConfig struct {
	Level       string `mapstructure:"level" json:"level"`
	Development bool   `mapstructure:"development" json:"development"`
}

// OutputConfig selects how reports are rendered.
type OutputConfig struct {
	Format  string `mapstructure:"format" json:"format"`
	Metrics bool   `mapstructure:"metrics" json:"metrics"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			MaxRecursiveItems: solver.DefaultMaxRecursiveItems,
			MaxTableCells:     solver.DefaultMaxTableCells,
		},
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Format: FormatTable},
	}
}

// Limits converts the solver bounds for solver.WithLimits.
func (c SolverConfig) Limits() solver.Limits {
	return solver.Limits{
		MaxRecursiveItems: c.MaxRecursiveItems,
		MaxTableCells:     c.MaxTableCells,
	}
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	var err error
	if c.Solver.MaxRecursiveItems < 0 {
		err = multierr.Append(err, fmt.Errorf("solver.maxRecursiveItems must be >= 0, got %d", c.Solver.MaxRecursiveItems))
	}
	if c.Solver.MaxTableCells < 0 {
		err = multierr.Append(err, fmt.Errorf("solver.maxTableCells must be >= 0, got %d", c.Solver.MaxTableCells))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "info", "debug", "trace", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.level must be one of info, debug, trace, error, got %q", c.Logging.Level))
	}
	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		err = multierr.Append(err, fmt.Errorf("output.format must be one of %s, %s, %s, got %q",
			FormatTable, FormatJSON, FormatYAML, c.Output.Format))
	}
	return err
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "path to a YAML configuration file")
	fs.Int(FlagMaxRecursiveItems, d.Solver.MaxRecursiveItems, "largest item count accepted by the recursive strategy")
	fs.Int(FlagMaxTableCells, d.Solver.MaxTableCells, "largest memo/DP table, in cells, accepted by the table strategies")
	fs.String(FlagLogLevel, d.Logging.Level, "log level: info, debug, trace or error")
	fs.Bool(FlagLogDevelopment, d.Logging.Development, "use the human-readable development log encoder")
	fs.StringP(FlagOutput, "o", d.Output.Format, "report format: table, json or yaml")
	fs.Bool(FlagMetrics, d.Output.Metrics, "print solver metrics in Prometheus text format after the report")
}

// Load reads the configuration from flags, environment, the file at configFile and defaults,
// in that order of priority. When configFile is empty the --config flag is used, if present.
// fs is the filesystem the config file is read from.
func Load(fs afero.Fs, configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	d := Default()
	v.SetDefault("solver.maxRecursiveItems", d.Solver.MaxRecursiveItems)
	v.SetDefault("solver.maxTableCells", d.Solver.MaxTableCells)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.development", d.Logging.Development)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.metrics", d.Output.Metrics)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
		if configFile == "" {
			if f := flags.Lookup(FlagConfig); f != nil {
				configFile = f.Value.String()
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
