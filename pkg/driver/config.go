// Package driver loads the optional interpreter configuration file and
// runs a program file in batch mode.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReplConfig holds the lipgloss-facing REPL settings.
type ReplConfig struct {
	Prompt string `yaml:"prompt"`
	Theme  string `yaml:"theme"`
}

// Config is the parsed contents of .mython.yaml.
type Config struct {
	Trace bool       `yaml:"trace"`
	Repl  ReplConfig `yaml:"repl"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{Repl: ReplConfig{Prompt: ">>> ", Theme: "default"}}
}

// configPaths are checked in order; the first that exists wins.
func configPaths() []string {
	paths := []string{".mython.yaml"}
	if p := os.Getenv("MYTHON_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	return paths
}

// LoadConfig reads the first config file found on configPaths, filling in
// any unset fields from DefaultConfig. A missing file is not an error.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	for _, path := range configPaths() {
		file, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("config: open %s: %w", path, err)
		}
		err = decodeConfig(file, cfg)
		file.Close()
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var raw Config
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config: parse: %w", err)
	}
	cfg.Trace = raw.Trace
	if raw.Repl.Prompt != "" {
		cfg.Repl.Prompt = raw.Repl.Prompt
	}
	if raw.Repl.Theme != "" {
		cfg.Repl.Theme = raw.Repl.Theme
	}
	return nil
}
