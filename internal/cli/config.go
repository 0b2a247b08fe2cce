package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mrjoshuak/htmldate"
	"github.com/mrjoshuak/htmldate/internal/fetch"
)

// Config is the effective command line configuration.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Batch  BatchConfig  `yaml:"batch"`
	Log    LogConfig    `yaml:"log"`
}

// SearchConfig maps to the library options.
type SearchConfig struct {
	Original bool   `yaml:"original"`
	Fast     bool   `yaml:"fast"`
	Format   string `yaml:"format"`
	MinDate  string `yaml:"min_date"`
	MaxDate  string `yaml:"max_date"`
	MaxSize  int    `yaml:"max_size"`
	JSON     bool   `yaml:"json"`
}

// FetchConfig configures page downloads.
type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	RespectRobots bool          `yaml:"respect_robots"`
	Rate          float64       `yaml:"rate"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Workers     int    `yaml:"workers"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// LogConfig configures diagnostics on stderr and an optional rotated file.
type LogConfig struct {
	Verbose    bool   `yaml:"verbose"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Format:  "2006-01-02",
			MaxSize: 20_000_000,
		},
		Fetch: FetchConfig{
			Timeout:   fetch.DefaultTimeout,
			UserAgent: fetch.DefaultUserAgent,
			CacheTTL:  fetch.DefaultCacheTTL,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Viper keys mirror the YAML layout of Config.
const (
	keyOriginal      = "search.original"
	keyFast          = "search.fast"
	keyFormat        = "search.format"
	keyMinDate       = "search.min_date"
	keyMaxDate       = "search.max_date"
	keyMaxSize       = "search.max_size"
	keyJSON          = "search.json"
	keyTimeout       = "fetch.timeout"
	keyUserAgent     = "fetch.user_agent"
	keyRespectRobots = "fetch.respect_robots"
	keyRate          = "fetch.rate"
	keyCacheTTL      = "fetch.cache_ttl"
	keyWorkers       = "batch.workers"
	keyMetricsAddr   = "batch.metrics_addr"
	keyVerbose       = "log.verbose"
	keyLogFile       = "log.file"
	keyLogMaxSize    = "log.max_size_mb"
	keyLogBackups    = "log.max_backups"
)

// flagKeys binds command line flags to their viper keys.
var flagKeys = map[string]string{
	"original":       keyOriginal,
	"fast":           keyFast,
	"format":         keyFormat,
	"min-date":       keyMinDate,
	"max-date":       keyMaxDate,
	"max-size":       keyMaxSize,
	"json":           keyJSON,
	"timeout":        keyTimeout,
	"user-agent":     keyUserAgent,
	"respect-robots": keyRespectRobots,
	"rate":           keyRate,
	"cache-ttl":      keyCacheTTL,
	"workers":        keyWorkers,
	"metrics-addr":   keyMetricsAddr,
	"verbose":        keyVerbose,
	"log-file":       keyLogFile,
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			_ = v.BindPFlag(key, f)
		}
	})
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault(keyFormat, d.Search.Format)
	v.SetDefault(keyMaxSize, d.Search.MaxSize)
	v.SetDefault(keyTimeout, d.Fetch.Timeout)
	v.SetDefault(keyUserAgent, d.Fetch.UserAgent)
	v.SetDefault(keyCacheTTL, d.Fetch.CacheTTL)
	v.SetDefault(keyWorkers, d.Batch.Workers)
	v.SetDefault(keyLogMaxSize, d.Log.MaxSizeMB)
	v.SetDefault(keyLogBackups, d.Log.MaxBackups)
}

// readConfig loads the optional config file and the HTMLDATE_* environment.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".htmldate"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("HTMLDATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func configFrom(v *viper.Viper) Config {
	return Config{
		Search: SearchConfig{
			Original: v.GetBool(keyOriginal),
			Fast:     v.GetBool(keyFast),
			Format:   v.GetString(keyFormat),
			MinDate:  v.GetString(keyMinDate),
			MaxDate:  v.GetString(keyMaxDate),
			MaxSize:  v.GetInt(keyMaxSize),
			JSON:     v.GetBool(keyJSON),
		},
		Fetch: FetchConfig{
			Timeout:       v.GetDuration(keyTimeout),
			UserAgent:     v.GetString(keyUserAgent),
			RespectRobots: v.GetBool(keyRespectRobots),
			Rate:          v.GetFloat64(keyRate),
			CacheTTL:      v.GetDuration(keyCacheTTL),
		},
		Batch: BatchConfig{
			Workers:     v.GetInt(keyWorkers),
			MetricsAddr: v.GetString(keyMetricsAddr),
		},
		Log: LogConfig{
			Verbose:    v.GetBool(keyVerbose),
			File:       v.GetString(keyLogFile),
			MaxSizeMB:  v.GetInt(keyLogMaxSize),
			MaxBackups: v.GetInt(keyLogBackups),
		},
	}
}

// Options converts the search settings into library options.
func (c Config) Options() []htmldate.Option {
	opts := []htmldate.Option{
		htmldate.WithOriginalDate(c.Search.Original),
		htmldate.WithExtensiveSearch(!c.Search.Fast),
		htmldate.WithOutputFormat(c.Search.Format),
		htmldate.WithMaxDocumentSize(c.Search.MaxSize),
	}
	if c.Search.MinDate != "" {
		opts = append(opts, htmldate.WithMinDateString(c.Search.MinDate))
	}
	if c.Search.MaxDate != "" {
		opts = append(opts, htmldate.WithMaxDateString(c.Search.MaxDate))
	}
	return opts
}

// fetchConfig converts the fetch settings for the fetcher.
func (c Config) fetchConfig() fetch.Config {
	return fetch.Config{
		Timeout:       c.Fetch.Timeout,
		UserAgent:     c.Fetch.UserAgent,
		MaxBytes:      int64(c.Search.MaxSize),
		CacheTTL:      c.Fetch.CacheTTL,
		RespectRobots: c.Fetch.RespectRobots,
		Rate:          c.Fetch.Rate,
	}
}

func newConfigCmd(app *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect htmldate configuration",
		Long: `Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (HTMLDATE_*)
3. Config file (~/.htmldate/config.yaml)
4. Defaults`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if used := app.viper.ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n", used)
			}
			data, err := yaml.Marshal(configFrom(app.viper))
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return configCmd
}
