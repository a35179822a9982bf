package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is where playthru looks for its config when --config is not given.
const DefaultPath = "playthru.toml"

// Config captures the user editable settings stored in playthru.toml.
type Config struct {
	PlaythroughsDir   string `toml:"playthroughs_dir"`
	PlaythroughSuffix string `toml:"playthrough_suffix"`
	ScriptsDir        string `toml:"scripts_dir"`
	ScriptSuffix      string `toml:"script_suffix"`
	Interpreter       string `toml:"interpreter"`
	BlankLines        string `toml:"blank_lines"`
}

var (
	// ErrMissingInterpreter indicates the config cleared the interpreter.
	ErrMissingInterpreter = errors.New("config.interpreter must be set")
	// ErrInvalidBlankLines indicates the blank line policy is not recognized.
	ErrInvalidBlankLines = errors.New("config.blank_lines must be skip or keep")
)

// Default returns the layout used by the game test suite: playthroughs live
// one directory up and scripts sit in the working directory.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.PlaythroughsDir == "" {
		c.PlaythroughsDir = filepath.Join("..", "playthroughs")
	}
	if c.PlaythroughSuffix == "" {
		c.PlaythroughSuffix = "-playthrough.txt"
	}
	if c.ScriptsDir == "" {
		c.ScriptsDir = "."
	}
	if c.ScriptSuffix == "" {
		c.ScriptSuffix = ".py"
	}
	if c.Interpreter == "" {
		c.Interpreter = "python"
	}
	c.BlankLines = strings.ToLower(strings.TrimSpace(c.BlankLines))
	if c.BlankLines == "" {
		c.BlankLines = "skip"
	}
}

// Validate ensures the configuration can guide playthru's behavior.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Interpreter) == "" {
		return ErrMissingInterpreter
	}
	switch c.BlankLines {
	case "skip", "keep":
		return nil
	default:
		return ErrInvalidBlankLines
	}
}

// PlaythroughPath resolves the playthrough file recorded for game.
func (c Config) PlaythroughPath(game string) string {
	return filepath.Join(c.PlaythroughsDir, game+c.PlaythroughSuffix)
}

// ScriptPath resolves the target script for game.
func (c Config) ScriptPath(game string) string {
	return filepath.Join(c.ScriptsDir, game+c.ScriptSuffix)
}

// Load reads configuration from disk. Missing files return a default config.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile is like Load but a missing file is an error wrapping
// fs.ErrNotExist.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to disk, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
