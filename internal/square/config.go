package square

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Square defaults (normalized device coordinates).
const (
	SquareSize     = 0.3
	SquareDefaultX = -0.5
	SquareDefaultY = 0.5
)

// Window defaults.
const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "Drag the square"
)

// ConfigFile is looked up in the working directory (desktop) or the app
// assets (android). SQUARE_CONFIG overrides the path.
const (
	ConfigFile   = "square.yaml"
	ConfigEnvVar = "SQUARE_CONFIG"
)

// DefaultClearColor is the background, light green.
var DefaultClearColor = [4]float32{0.4, 0.8, 0.4, 1}

// Config represents the optional square.yaml configuration.
type Config struct {
	Platform   Platform     `yaml:"platform"`
	Square     SquareConfig `yaml:"square"`
	ClearColor [4]float32   `yaml:"clear_color"`
	Window     WindowConfig `yaml:"window"`
	Audio      bool         `yaml:"audio"`
}

type SquareConfig struct {
	Size float32 `yaml:"size"`
	X    float32 `yaml:"x"`
	Y    float32 `yaml:"y"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Platform: PlatformDesktop,
		Square: SquareConfig{
			Size: SquareSize,
			X:    SquareDefaultX,
			Y:    SquareDefaultY,
		},
		ClearColor: DefaultClearColor,
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Audio: true,
	}
}

// ParseConfig decodes YAML over the defaults. Keys missing from the
// document keep their default value.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional reads the config file at path if present. A missing file
// yields the defaults.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()
	return ParseConfig(f)
}

// ConfigPath returns the config path, honouring SQUARE_CONFIG.
func ConfigPath() string {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	return ConfigFile
}

func (c *Config) validate() error {
	if c.Square.Size <= 0 || c.Square.Size > 2 {
		return fmt.Errorf("square.size must be in (0, 2], got %v", c.Square.Size)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
