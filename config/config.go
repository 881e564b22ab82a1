package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	OpenAI  OpenAIConfig   `yaml:"openai"`
	Input   InputConfig    `yaml:"input"`
	Devices []DeviceConfig `yaml:"devices"`
	Log     LogConfig      `yaml:"log"`
}

type OpenAIConfig struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Language string `yaml:"language"`
}

type InputConfig struct {
	Source     string `yaml:"source"`
	SampleRate int    `yaml:"sample_rate"`
}

// DeviceConfig overrides the built-in light set.
type DeviceConfig struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	On   bool   `yaml:"on"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the config file, expanding ${VAR} references from the
// environment before parsing. A missing file is not an error: the defaults
// plus the OPENAI_API_KEY environment variable are enough to run.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to defaults
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4.1-mini"
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = "en"
	}
	if c.Input.Source == "" {
		c.Input.Source = "console"
	}
	if c.Input.SampleRate == 0 {
		c.Input.SampleRate = 16000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports configuration errors that must stop the process before
// any interaction begins.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai api key not set: set OPENAI_API_KEY or openai.api_key")
	}
	return nil
}
