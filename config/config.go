package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/aircanvas/aircanvas/core"
)

//go:embed sample_config.toml
var sampleConfig string

// Studio contains capture loop settings.
type Studio struct {
	Subject        string  `toml:"subject"`
	Style          string  `toml:"style"`
	Intensity      float64 `toml:"intensity"`
	TriggerGesture string  `toml:"trigger_gesture"`
	MaxGenerations int     `toml:"max_generations"`
	Seed           int64   `toml:"seed"`
}

// Generator selects and tunes the image generation backend.
type Generator struct {
	Provider string `toml:"provider"` // "mock" or "openai"
	Model    string `toml:"model"`
	Size     string `toml:"size"`
}

// Refiner selects the prompt refinement backend.
type Refiner struct {
	Provider string `toml:"provider"` // "static" or "anthropic"
	Model    string `toml:"model"`
	Prefix   string `toml:"prefix"`
	Suffix   string `toml:"suffix"`
}

// Storage contains session persistence settings.
type Storage struct {
	SessionsDir string `toml:"sessions_dir"`
}

// Playback contains replay defaults.
type Playback struct {
	Speed float64 `toml:"speed"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level"`  // debug, info, warn or error
	Format string `toml:"format"` // json or text
}

// Config encapsulates all configuration values for AirCanvas.
type Config struct {
	Studio    Studio    `toml:"studio"`
	Generator Generator `toml:"generator"`
	Refiner   Refiner   `toml:"refiner"`
	Storage   Storage   `toml:"storage"`
	Playback  Playback  `toml:"playback"`
	Logging   Logging   `toml:"logging"`
}

const (
	defaultSubject        = "an abstract composition"
	defaultIntensity      = 0.5
	defaultMaxGenerations = 25
	defaultGeneratorSize  = "1024x1024"
	defaultSessionsDir    = "~/.local/share/aircanvas/sessions"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Studio: Studio{
			Subject:        defaultSubject,
			Intensity:      defaultIntensity,
			TriggerGesture: string(core.GestureOpenPalm),
			MaxGenerations: defaultMaxGenerations,
		},
		Generator: Generator{
			Provider: "mock",
			Size:     defaultGeneratorSize,
		},
		Refiner: Refiner{
			Provider: "static",
		},
		Storage: Storage{
			SessionsDir: defaultSessionsDir,
		},
		Playback: Playback{
			Speed: 1.0,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/aircanvas/config.toml")
}

// Load parses and validates a configuration file. An empty path falls back
// to DefaultConfigPath; a missing file yields the defaults. The returned
// config has its path fields expanded.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	if resolved != "" {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath returns the config file to read, or "" when no file
// exists and defaults should be used. An explicit path must exist.
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", fmt.Errorf("stat config: %w", err)
		}
		return expanded, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}
	info, err := os.Stat(defaultPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("config path %q is a directory", defaultPath)
	}
	return defaultPath, nil
}

func (c *Config) normalize() error {
	dir, err := ExpandPath(c.Storage.SessionsDir)
	if err != nil {
		return err
	}
	c.Storage.SessionsDir = dir
	c.Generator.Provider = strings.ToLower(strings.TrimSpace(c.Generator.Provider))
	c.Refiner.Provider = strings.ToLower(strings.TrimSpace(c.Refiner.Provider))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStudio(); err != nil {
		return err
	}
	if err := c.validateGenerator(); err != nil {
		return err
	}
	if err := c.validateRefiner(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStudio() error {
	if strings.TrimSpace(c.Studio.Subject) == "" {
		return errors.New("studio.subject must be set")
	}
	if c.Studio.Intensity < 0 || c.Studio.Intensity > 1 {
		return errors.New("studio.intensity must be between 0 and 1")
	}
	if strings.TrimSpace(c.Studio.TriggerGesture) == "" {
		return errors.New("studio.trigger_gesture must be set")
	}
	if c.Studio.MaxGenerations < 0 {
		return errors.New("studio.max_generations must be >= 0")
	}
	return nil
}

func (c *Config) validateGenerator() error {
	switch c.Generator.Provider {
	case "mock", "openai":
	default:
		return fmt.Errorf("generator.provider must be one of mock, openai; got %q", c.Generator.Provider)
	}
	if strings.TrimSpace(c.Generator.Size) == "" {
		return errors.New("generator.size must be set")
	}
	return nil
}

func (c *Config) validateRefiner() error {
	switch c.Refiner.Provider {
	case "static", "anthropic":
	default:
		return fmt.Errorf("refiner.provider must be one of static, anthropic; got %q", c.Refiner.Provider)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if strings.TrimSpace(c.Storage.SessionsDir) == "" {
		return errors.New("storage.sessions_dir must be set")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.Speed <= 0 {
		return errors.New("playback.speed must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text; got %q", c.Logging.Format)
	}
	return nil
}

// EnsureDirectories creates the directories the configuration points at.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Storage.SessionsDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Storage.SessionsDir, err)
	}
	return nil
}

// CreateSample writes a commented sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user home directory and makes the
// path absolute.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
