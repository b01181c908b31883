package driver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigWhenNoFilePresent(t *testing.T) {
	dir := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldwd)
	os.Unsetenv("MYTHON_CONFIG")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Trace {
		t.Fatal("expected trace to default to false")
	}
	if cfg.Repl.Prompt != ">>> " {
		t.Fatalf("got prompt %q", cfg.Repl.Prompt)
	}
}

func TestLoadConfigFromLocalFile(t *testing.T) {
	dir := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldwd)
	os.Unsetenv("MYTHON_CONFIG")

	content := "trace: true\nrepl:\n  prompt: \"mython> \"\n  theme: dark\n"
	if err := os.WriteFile(filepath.Join(dir, ".mython.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Trace {
		t.Fatal("expected trace true")
	}
	if cfg.Repl.Prompt != "mython> " || cfg.Repl.Theme != "dark" {
		t.Fatalf("got %+v", cfg.Repl)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldwd)
	os.Unsetenv("MYTHON_CONFIG")

	if err := os.WriteFile(filepath.Join(dir, ".mython.yaml"), []byte("bogus: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for an unknown config key")
	}
}
