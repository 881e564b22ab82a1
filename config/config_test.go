package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"lights-assistant/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("TEST_KEY", "sk-from-env")

	path := writeConfig(t, `
openai:
  api_key: ${TEST_KEY}
  model: gpt-test
input:
  source: microphone
devices:
  - id: 1
    name: Desk Lamp
    on: true
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.OpenAI.APIKey != "sk-from-env" {
		t.Errorf("api key not expanded from env, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-test" {
		t.Errorf("model: got %q", cfg.OpenAI.Model)
	}
	if cfg.Input.Source != "microphone" {
		t.Errorf("input source: got %q", cfg.Input.Source)
	}
	if cfg.Input.SampleRate != 16000 {
		t.Errorf("sample rate default: got %d", cfg.Input.SampleRate)
	}
	if len(cfg.Devices) != 1 || cfg.Devices[0].Name != "Desk Lamp" || !cfg.Devices[0].On {
		t.Errorf("devices: got %+v", cfg.Devices)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}

	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key should come from OPENAI_API_KEY, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Errorf("model default: got %q", cfg.OpenAI.Model)
	}
	if cfg.Input.Source != "console" {
		t.Errorf("input source default: got %q", cfg.Input.Source)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults: got %+v", cfg.Log)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate should fail without an api key")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "openai: [not: a: map")

	if _, err := config.Load(path); err == nil {
		t.Fatal("invalid yaml should be an error")
	}
}
