package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func noEnv(string) string { return "" }

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(Options{
		File:    "",
		EnvFile: filepath.Join(dir, "missing.env"),
		Getenv:  noEnv,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Trace.Indent != 2 || cfg.Playground.TokenTTL.Duration != 15*time.Minute {
		t.Fatalf("defaults wrong: %+v", cfg)
	}
	if cfg.Playground.AuthEnabled() {
		t.Fatalf("auth should be disabled without a key hash")
	}
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "plume.toml", `
[log]
level = "debug"
format = "json"

[trace]
enabled = true
indent = 4

[playground]
addr = ":9000"
key_hash = "$2a$10$abcdefghijklmnopqrstuv"
jwt_secret = "from-file"
token_ttl = "1h"
allowed_origins = ["http://localhost:3000"]
`)

	env := map[string]string{
		"PLUME_LOG_LEVEL":             "warn",
		"PLUME_PLAYGROUND_TOKEN_TTL":  "30m",
		"PLUME_PLAYGROUND_JWT_SECRET": "from-env",
	}
	cfg, err := Load(Options{
		File:    file,
		EnvFile: filepath.Join(dir, "missing.env"),
		Getenv:  func(k string) string { return env[k] },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Fatalf("env should override file level. got=%q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" || !cfg.Trace.Enabled || cfg.Trace.Indent != 4 {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.Playground.Addr != ":9000" || cfg.Playground.JWTSecret != "from-env" {
		t.Fatalf("playground wrong: %+v", cfg.Playground)
	}
	if cfg.Playground.TokenTTL.Duration != 30*time.Minute {
		t.Fatalf("ttl wrong: %v", cfg.Playground.TokenTTL)
	}
	if len(cfg.Playground.AllowedOrigins) != 1 {
		t.Fatalf("origins wrong: %v", cfg.Playground.AllowedOrigins)
	}
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "PLUME_TRACE=true\nPLUME_TRACE_INDENT=3\n")
	t.Cleanup(func() {
		os.Unsetenv("PLUME_TRACE")
		os.Unsetenv("PLUME_TRACE_INDENT")
	})

	cfg, err := Load(Options{EnvFile: envFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Trace.Enabled || cfg.Trace.Indent != 3 {
		t.Fatalf(".env values not applied: %+v", cfg.Trace)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		env     map[string]string
		wantErr string
	}{
		{map[string]string{"PLUME_LOG_LEVEL": "loud"}, "log.level"},
		{map[string]string{"PLUME_LOG_FORMAT": "xml"}, "log.format"},
		{map[string]string{"PLUME_TRACE_INDENT": "0"}, "trace.indent"},
		{map[string]string{"PLUME_TRACE": "maybe"}, "PLUME_TRACE"},
		{map[string]string{"PLUME_PLAYGROUND_KEY_HASH": "$2a$10$x"}, "jwt_secret"},
		{map[string]string{"PLUME_PLAYGROUND_TOKEN_TTL": "soon"}, "TOKEN_TTL"},
	}

	dir := t.TempDir()
	for i, tt := range tests {
		_, err := Load(Options{
			EnvFile: filepath.Join(dir, "missing.env"),
			Getenv:  func(k string) string { return tt.env[k] },
		})
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Fatalf("tests[%d] - expected error mentioning %q, got=%v", i, tt.wantErr, err)
		}
	}
}

func TestExplicitFileMustExist(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.toml"), Getenv: noEnv})
	if err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestFlagOverridesWinOverEnv(t *testing.T) {
	env := map[string]string{
		"PLUME_LOG_LEVEL":  "bogus",
		"PLUME_LOG_FORMAT": "xml",
	}
	cfg, err := Load(Options{
		EnvFile:   filepath.Join(t.TempDir(), "missing.env"),
		Getenv:    func(k string) string { return env[k] },
		LogLevel:  "debug",
		LogFormat: "json",
	})
	if err != nil {
		t.Fatalf("overrides should replace invalid env values before validation: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("overrides not applied: %+v", cfg.Log)
	}

	if _, err := Load(Options{
		EnvFile:  filepath.Join(t.TempDir(), "missing.env"),
		Getenv:   noEnv,
		LogLevel: "loud",
	}); err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Fatalf("invalid override should fail validation, got=%v", err)
	}
}
