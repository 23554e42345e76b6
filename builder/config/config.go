// Loads stemr.yaml and command-line flags
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Kush-Singh-26/stemr/builder/generators"
	"github.com/Kush-Singh-26/stemr/builder/search"
)

// DefaultConfigFile is read from the working directory unless -config is given.
const DefaultConfigFile = "stemr.yaml"

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	Watch           bool          `yaml:"watch"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Stdout     bool   `yaml:"stdout"`
}

type Config struct {
	CorpusDir string `yaml:"corpusDir"`
	OutputDir string `yaml:"outputDir"`
	CacheDir  string `yaml:"cacheDir"`

	BuildConfig `yaml:",inline"`

	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`

	// Runtime-only fields
	ConfigFile   string   `yaml:"-"`
	IsDev        bool     `yaml:"-"`
	ForceRebuild bool     `yaml:"-"`
	Args         []string `yaml:"-"` // positional arguments left after flags
	LoadErr      error    `yaml:"-"` // set when stemr.yaml exists but cannot be parsed
}

// DefaultConfig returns the configuration used when no file or flag says otherwise
func DefaultConfig() *Config {
	return &Config{
		CorpusDir:   "content",
		OutputDir:   "public",
		CacheDir:    ".stemr-cache",
		BuildConfig: DefaultBuildConfig(),
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Stdout:     true,
		},
		ConfigFile: DefaultConfigFile,
	}
}

// Load parses args with a private FlagSet, overlays stemr.yaml, then
// re-applies any flag that was set explicitly. Invalid values are clamped.
// A missing file is not an error; an unparseable one leaves the defaults and
// sets LoadErr.
func Load(args []string) *Config {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("stemr", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configFile := fs.String("config", DefaultConfigFile, "Path to the YAML config file")
	corpus := fs.String("corpus", cfg.CorpusDir, "Directory of documents to index")
	output := fs.String("output", cfg.OutputDir, "Directory for search.bin")
	cacheDir := fs.String("cache", cfg.CacheDir, "Analysis cache directory")
	workers := fs.Int("workers", cfg.Workers, "Analysis workers")
	limit := fs.Int("limit", cfg.MaxResults, "Maximum search results")
	addr := fs.String("addr", cfg.Server.Addr, "HTTP listen address")
	watch := fs.Bool("watch", false, "Re-index when the corpus changes")
	noStem := fs.Bool("no-stem", false, "Disable stemming")
	noStop := fs.Bool("no-stopwords", false, "Keep stop words")
	logLevel := fs.String("log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")
	force := fs.Bool("force", false, "Ignore the analysis cache")
	dev := fs.Bool("dev", false, "Development mode")

	if err := fs.Parse(args); err != nil {
		cfg.LoadErr = err
	}

	cfg.ConfigFile = *configFile
	if data, err := os.ReadFile(cfg.ConfigFile); err == nil {
		fileCfg := *cfg
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			cfg.LoadErr = errors.Wrapf(err, "parse %s", cfg.ConfigFile)
		} else {
			cfg = &fileCfg
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "corpus":
			cfg.CorpusDir = *corpus
		case "output":
			cfg.OutputDir = *output
		case "cache":
			cfg.CacheDir = *cacheDir
		case "workers":
			cfg.Workers = *workers
		case "limit":
			cfg.MaxResults = *limit
		case "addr":
			cfg.Server.Addr = *addr
		case "watch":
			cfg.Server.Watch = *watch
		case "no-stem":
			cfg.Stemming = !*noStem
		case "no-stopwords":
			cfg.StopWords = !*noStop
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})

	cfg.ForceRebuild = *force
	cfg.IsDev = *dev
	cfg.Args = fs.Args()
	cfg.validate()
	return cfg
}

func (c *Config) validate() {
	c.BuildConfig.validate()

	for _, dir := range []*string{&c.CorpusDir, &c.OutputDir, &c.CacheDir} {
		if *dir == "" {
			continue
		}
		*dir = filepath.Clean(*dir)
	}
	if c.CorpusDir == "" {
		c.CorpusDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.CacheDir == "" {
		c.CacheDir = ".stemr-cache"
	}

	c.Server.ShutdownTimeout = clamp(c.Server.ShutdownTimeout, time.Second, 60*time.Second)
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Log.Level = "info"
	}
	c.Log.MaxSizeMB = clamp(c.Log.MaxSizeMB, 1, 10240)
	c.Log.MaxBackups = clamp(c.Log.MaxBackups, 0, 100)
	c.Log.MaxAgeDays = clamp(c.Log.MaxAgeDays, 0, 3650)
}

// SnapshotPath is where the index builder writes and the server reads.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.OutputDir, generators.SnapshotFile)
}

// SearchOptions maps the scoring settings onto the search engine.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		Limit:              c.MaxResults,
		MaxEditDistance:    c.MaxEditDistance,
		ScorePhraseMatch:   c.ScorePhraseMatch,
		ScoreTitleMatch:    c.ScoreTitleMatch,
		ScoreTagMatch:      c.ScoreTagMatch,
		ScoreFuzzyModifier: c.ScoreFuzzyModifier,
		Analyzer:           c.Analyzer(),
	}
}

// Analyzer builds the search analyzer these settings describe.
func (c *Config) Analyzer() *search.Analyzer {
	return search.NewAnalyzer(c.StopWords, c.Stemming)
}

// Fingerprint identifies the analyzer settings. Cached search records built
// under a different fingerprint are stale.
func (c *Config) Fingerprint() string {
	return fmt.Sprintf("porter2;stop=%t;stem=%t", c.StopWords, c.Stemming)
}
