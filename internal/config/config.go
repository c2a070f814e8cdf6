// Package config loads pain-lsp.toml.
//
// Every value has a default; a file only needs the keys it changes. Unknown
// keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name Find looks for.
const FileName = "pain-lsp.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Documents  DocumentsConfig  `toml:"documents"`
	Cache      CacheConfig      `toml:"cache"`
	Completion CompletionConfig `toml:"completion"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
}

type DocumentsConfig struct {
	MaxSize int `toml:"max_size"`
}

type CacheConfig struct {
	MaxEntries int `toml:"max_entries"`
}

type CompletionConfig struct {
	MaxDetailed         int `toml:"max_detailed"`
	MaxBuiltins         int `toml:"max_builtins"`
	BuiltinDetailCutoff int `toml:"builtin_detail_cutoff"`
}

type ServerConfig struct {
	Workers int `toml:"workers"`
}

type LogConfig struct {
	// Verbosity: 0 errors and warnings, 1 adds notices, 2 info, 3+ debug.
	Verbosity int `toml:"verbosity"`
	// File is the log path; empty means stderr.
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Documents:  DocumentsConfig{MaxSize: 10 << 20},
		Cache:      CacheConfig{MaxEntries: 50},
		Completion: CompletionConfig{MaxDetailed: 50, MaxBuiltins: 100, BuiltinDetailCutoff: 200},
		Server:     ServerConfig{Workers: 8},
		Log:        LogConfig{Verbosity: 1},
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalid)
	}
	if meta.IsDefined("log", "file") && strings.TrimSpace(cfg.Log.File) == "" {
		return Config{}, fmt.Errorf("%s: [log].file is empty: %w", path, ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	checks := []struct {
		key   string
		value int
		min   int
	}{
		{"[documents].max_size", c.Documents.MaxSize, 1},
		{"[cache].max_entries", c.Cache.MaxEntries, 1},
		{"[completion].max_detailed", c.Completion.MaxDetailed, 1},
		{"[completion].max_builtins", c.Completion.MaxBuiltins, 1},
		{"[completion].builtin_detail_cutoff", c.Completion.BuiltinDetailCutoff, 1},
		{"[server].workers", c.Server.Workers, 1},
		{"[log].verbosity", c.Log.Verbosity, 0},
	}
	for _, chk := range checks {
		if chk.value < chk.min {
			return fmt.Errorf("%s must be at least %d, got %d: %w", chk.key, chk.min, chk.value, ErrInvalid)
		}
	}
	return nil
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve loads the explicit path if given, otherwise the nearest FileName
// above startDir, otherwise the defaults.
func Resolve(path, startDir string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	found, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(found)
}
