package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "XPTOOLS"
	FileName  = ".xptools"

	DefaultOutput  = "composition_extraction.xlsx"
	DefaultLogFile = "composition_extraction.log"
)

const (
	FormatAuto     = "auto"
	FormatExcel    = "xlsx"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Keys shared by flags, environment variables and the config file.
const (
	KeyVerbose = "verbose"
	KeyOutput  = "output"
	KeyFormat  = "format"
	KeyWorkers = "workers"
	KeyLogFile = "log-file"
)

var Formats = []string{FormatAuto, FormatExcel, FormatJSON, FormatMarkdown}

type Config struct {
	Verbose bool
	Output  string
	Format  string
	Workers int
	LogFile string
}

type ConfigOption func(*Config)

func WithVerbose(verbose bool) ConfigOption {
	return func(c *Config) {
		c.Verbose = verbose
	}
}

func WithOutput(path string) ConfigOption {
	return func(c *Config) {
		c.Output = path
	}
}

func WithFormat(format string) ConfigOption {
	return func(c *Config) {
		c.Format = strings.ToLower(format)
	}
}

func WithWorkers(n int) ConfigOption {
	return func(c *Config) {
		c.Workers = n
	}
}

func WithLogFile(path string) ConfigOption {
	return func(c *Config) {
		c.LogFile = path
	}
}

func NewConfig(opts ...ConfigOption) *Config {
	cfg := &Config{
		Output:  DefaultOutput,
		Format:  FormatAuto,
		Workers: runtime.NumCPU(),
		LogFile: DefaultLogFile,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *Config) Validate() error {
	var errs []error
	if c.Output == "" {
		errs = append(errs, errors.New("output path must not be empty"))
	}
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("unknown format %q, expected one of %s", c.Format, strings.Join(Formats, ", ")))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// SetDefaults registers the defaults on v so that unset flags, variables and
// file keys fall back to them.
func SetDefaults(v *viper.Viper) {
	d := NewConfig()
	v.SetDefault(KeyVerbose, d.Verbose)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyLogFile, d.LogFile)
}

// NewViper returns a viper instance reading XPTOOLS_* environment variables
// and, if present, .xptools.yaml from the working or home directory. A
// non-empty file overrides the search.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := NewConfig(
		WithVerbose(v.GetBool(KeyVerbose)),
		WithOutput(v.GetString(KeyOutput)),
		WithFormat(v.GetString(KeyFormat)),
		WithWorkers(v.GetInt(KeyWorkers)),
		WithLogFile(v.GetString(KeyLogFile)),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
