// Package config resolves expensectl settings from defaults, a TOML file,
// a .env file, the environment and command-line overrides.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ledgerline/expensectl/pkg/errors"
)

const (
	appName = "expensectl"

	// DefaultBaseURL is the API address used when nothing else is configured.
	DefaultBaseURL = "http://localhost:5000"

	// Environment variables consulted by Load.
	EnvBaseURL = "EXPENSE_API_BASE_URL"
	EnvTimeout = "EXPENSE_API_TIMEOUT"
	EnvOutput  = "EXPENSECTL_OUTPUT"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config is the resolved configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration // 0 means no client-side timeout
	Output  string

	// File is the config file that was read, empty if none existed.
	File string
}

// Options controls where Load looks.
type Options struct {
	// Path is an explicit config file. Unlike the default location it must exist.
	Path string

	// DotEnv is the .env file to read. Empty means ".env" in the working directory.
	DotEnv string

	// BaseURL overrides every other source when non-empty.
	BaseURL string

	// LookupEnv replaces os.LookupEnv, mainly for tests.
	LookupEnv func(string) (string, bool)
}

// fileConfig mirrors the TOML layout:
//
//	base_url = "http://localhost:5000"
//	timeout  = "10s"
//	output   = "table"
type fileConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
	Output  string `toml:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{BaseURL: DefaultBaseURL, Output: OutputTable}
}

// Load builds a Config. Later sources win: defaults, config file, .env,
// environment, then opts.BaseURL.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return nil, err
		}
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	dotenv, err := readDotEnv(opts.DotEnv)
	if err != nil {
		return nil, err
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := env(EnvBaseURL); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := env(EnvTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvTimeout)
		}
		cfg.Timeout = d
	}
	if v, ok := env(EnvOutput); ok && v != "" {
		cfg.Output = v
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if err := errors.ValidateURL(c.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "base_url")
	}
	if c.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout cannot be negative: %s", c.Timeout)
	}
	switch c.Output {
	case OutputTable, OutputJSON:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "output must be %q or %q, got %q", OutputTable, OutputJSON, c.Output)
	}
	return nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/expensectl/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func (c *Config) readFile(path string, mustExist bool) error {
	var fc fileConfig
	_, err := toml.DecodeFile(path, &fc)
	if stderrors.Is(err, fs.ErrNotExist) && !mustExist {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	c.File = path
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.Timeout != "" {
		d, err := parseTimeout(fc.Timeout)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: timeout", path)
		}
		c.Timeout = d
	}
	if fc.Output != "" {
		c.Output = fc.Output
	}
	return nil
}

func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		path = ".env"
	}
	vars, err := godotenv.Read(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return vars, nil
}

// parseTimeout accepts Go durations ("750ms", "10s") and bare seconds ("10").
func parseTimeout(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := time.ParseDuration(s + "s")
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid duration %q", s)
	}
	return secs, nil
}
