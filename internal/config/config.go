// Package config loads plume settings. Layers apply in order: built-in
// defaults, a TOML file, a .env file, then PLUME_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"plume/internal/log"
)

const (
	DefaultFile    = "plume.toml"
	DefaultEnvFile = ".env"
	envPrefix      = "PLUME_"
)

type Config struct {
	Log        Log        `toml:"log"`
	Trace      Trace      `toml:"trace"`
	Playground Playground `toml:"playground"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Trace struct {
	Enabled bool `toml:"enabled"`
	Indent  int  `toml:"indent"`
}

type Playground struct {
	Addr           string   `toml:"addr"`
	KeyHash        string   `toml:"key_hash"`
	JWTSecret      string   `toml:"jwt_secret"`
	TokenTTL       Duration `toml:"token_ttl"`
	MaxSourceBytes int      `toml:"max_source_bytes"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// AuthEnabled reports whether /ws requires a session token.
func (p Playground) AuthEnabled() bool {
	return p.KeyHash != ""
}

// Duration decodes "15m"-style strings from TOML and the environment.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Default() Config {
	return Config{
		Log:   Log{Level: "info", Format: "text"},
		Trace: Trace{Indent: 2},
		Playground: Playground{
			Addr:           "127.0.0.1:8421",
			TokenTTL:       Duration{15 * time.Minute},
			MaxSourceBytes: 64 << 10,
		},
	}
}

// Options name the files to read. An empty File falls back to DefaultFile,
// which may be missing; an explicitly named file must exist.
type Options struct {
	File    string
	EnvFile string
	// Getenv is used to read PLUME_* variables; defaults to os.Getenv.
	Getenv func(string) string

	// Command-line overrides, applied last.
	LogLevel  string
	LogFormat string
}

func Load(opts Options) (Config, error) {
	cfg := Default()

	file, required := opts.File, true
	if file == "" {
		file, required = DefaultFile, false
	}
	if err := loadFile(&cfg, file, required); err != nil {
		return cfg, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	// godotenv never overrides variables that are already set
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("loading %s: %w", envFile, err)
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}

	return cfg, cfg.Validate()
}

func loadFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("PLAYGROUND_ADDR", &cfg.Playground.Addr)
	str("PLAYGROUND_KEY_HASH", &cfg.Playground.KeyHash)
	str("PLAYGROUND_JWT_SECRET", &cfg.Playground.JWTSecret)

	if v := getenv(envPrefix + "TRACE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sTRACE: %w", envPrefix, err)
		}
		cfg.Trace.Enabled = b
	}
	if v := getenv(envPrefix + "TRACE_INDENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sTRACE_INDENT: %w", envPrefix, err)
		}
		cfg.Trace.Indent = n
	}
	if v := getenv(envPrefix + "PLAYGROUND_TOKEN_TTL"); v != "" {
		if err := cfg.Playground.TokenTTL.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sPLAYGROUND_TOKEN_TTL: %w", envPrefix, err)
		}
	}
	if v := getenv(envPrefix + "PLAYGROUND_MAX_SOURCE_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPLAYGROUND_MAX_SOURCE_BYTES: %w", envPrefix, err)
		}
		cfg.Playground.MaxSourceBytes = n
	}
	if v := getenv(envPrefix + "PLAYGROUND_ALLOWED_ORIGINS"); v != "" {
		cfg.Playground.AllowedOrigins = strings.Split(v, ",")
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	if c.Trace.Indent <= 0 {
		return fmt.Errorf("trace.indent must be positive, got %d", c.Trace.Indent)
	}
	if c.Playground.MaxSourceBytes <= 0 {
		return fmt.Errorf("playground.max_source_bytes must be positive, got %d", c.Playground.MaxSourceBytes)
	}
	if c.Playground.AuthEnabled() {
		if c.Playground.JWTSecret == "" {
			return errors.New("playground.jwt_secret is required when playground.key_hash is set")
		}
		if c.Playground.TokenTTL.Duration <= 0 {
			return errors.New("playground.token_ttl must be positive")
		}
	}
	return nil
}

// Logger builds the logger described by the log section.
func (c Config) Logger() *log.Logger {
	level, _ := log.ParseLevel(c.Log.Level)
	format, _ := log.ParseFormat(c.Log.Format)
	return log.NewWithConfig(log.Config{Level: level, Format: format, Output: os.Stderr})
}
