package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigTemplateContent(t *testing.T) {
	// Verify that the config template contains all required sections
	requiredSections := []string{
		"loglevel",
		"[gett]",
		"api_key",
		"email",
		"password",
	}

	for _, section := range requiredSections {
		if !strings.Contains(configTemplate, section) {
			t.Errorf("configTemplate missing required section: %s", section)
		}
	}
}

func TestGenerateConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	if err := GenerateConfig(configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read generated config: %v", err)
	}
	if string(data) != configTemplate {
		t.Error("generated config does not match template")
	}
}

func TestGenerateConfigBacksUpExisting(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("old content"), 0644); err != nil {
		t.Fatalf("failed to write existing config: %v", err)
	}

	if err := GenerateConfig(configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	backup, err := os.ReadFile(configPath + ".bak")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(backup) != "old content" {
		t.Errorf("expected backup to hold old content, got '%s'", backup)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, "0 B"},
		{1000, "1.0 kB"},
		{2000000, "2.0 MB"},
		{-1, "-"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.size); got != tt.expected {
			t.Errorf("FormatSize(%d): expected '%s', got '%s'", tt.size, tt.expected, got)
		}
	}
}
