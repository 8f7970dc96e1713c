// Package config loads jolt.yaml.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = "jolt.yaml"

// EnvVar names a config file that overrides DefaultFile.
const EnvVar = "JOLT_CONFIG"

type Config struct {
	Path   string `yaml:"-"`
	REPL   REPL   `yaml:"repl"`
	Server Server `yaml:"server"`
}

type REPL struct {
	Prompt string `yaml:"prompt"`
	Banner *bool  `yaml:"banner"`
	// History is the SQLite file evaluated units are recorded in. "off"
	// disables recording.
	History string `yaml:"history"`
}

type Server struct {
	Addr      string `yaml:"addr"`
	ReadLimit int64  `yaml:"read_limit"`
}

const (
	defaultPrompt    = "> "
	defaultAddr      = ":7007"
	defaultReadLimit = 64 << 10
	historyOff       = "off"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.normalize()
	return cfg
}

// Load reads path. An empty path means $JOLT_CONFIG, then ./jolt.yaml;
// a missing default file yields Default().
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvVar)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultFile
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(err, "config")
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	cfg.Path = path
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = defaultPrompt
	}
	if c.REPL.Banner == nil {
		on := true
		c.REPL.Banner = &on
	}
	if c.REPL.History == "" {
		c.REPL.History = defaultHistory()
	}
	if c.REPL.History == historyOff {
		c.REPL.History = ""
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.ReadLimit <= 0 {
		c.Server.ReadLimit = defaultReadLimit
	}
}

// ShowBanner reports whether the REPL greets the user.
func (c *Config) ShowBanner() bool {
	return c.REPL.Banner == nil || *c.REPL.Banner
}

// HistoryPath is the resolved history database, or "" when disabled.
func (c *Config) HistoryPath() string {
	p := c.REPL.History
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyOff
	}
	return filepath.Join(home, ".jolt", "history.db")
}
