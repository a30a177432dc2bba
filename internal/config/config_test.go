package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected localhost default, got %s", cfg.Host)
	}
	if cfg.Port != 0 {
		t.Errorf("Expected auto port default, got %d", cfg.Port)
	}
	if cfg.ModelsDir != "models" {
		t.Errorf("Expected models dir default, got %s", cfg.ModelsDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "port: 8900\nmodels_dir: /opt/medscreen/models\nheadless: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8900 {
		t.Errorf("Expected port 8900, got %d", cfg.Port)
	}
	if cfg.ModelsDir != "/opt/medscreen/models" {
		t.Errorf("Expected models dir override, got %s", cfg.ModelsDir)
	}
	if !cfg.Headless {
		t.Error("Expected headless true")
	}
	if cfg.Host != "127.0.0.1" {
		t.Errorf("Unset host should keep its default, got %s", cfg.Host)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load should fail on a missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "port: [not a number\n")
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "port: 99999\n")
	if _, err := Load(path); err == nil {
		t.Error("Load should reject an out-of-range port")
	}
}

func TestValidateRejectsEmptyModelsDir(t *testing.T) {
	cfg := Default()
	cfg.ModelsDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject an empty models dir")
	}
}
