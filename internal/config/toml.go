// Package config provides configuration helpers and TOML/YAML parsing.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the configuration file.
type FileConfig struct {
	Analyze AnalyzeConfig `toml:"analyze" yaml:"analyze"`
}

// AnalyzeConfig maps analysis settings. Nil fields were not set in the file.
type AnalyzeConfig struct {
	MinLength  *int      `toml:"min-length" yaml:"min-length"`
	MaxLength  *int      `toml:"max-length" yaml:"max-length"`
	ASCIIOnly  *bool     `toml:"ascii-only" yaml:"ascii-only"`
	Pattern    *string   `toml:"pattern" yaml:"pattern"`
	Enhanced   *bool     `toml:"enhanced" yaml:"enhanced"`
	Dictionary *string   `toml:"dictionary" yaml:"dictionary"`
	Output     *string   `toml:"output" yaml:"output"`
	Formats    *[]string `toml:"formats" yaml:"formats"`
	Shards     *int      `toml:"shards" yaml:"shards"`
	Top        *int      `toml:"top" yaml:"top"`
	Positions  *int      `toml:"positions" yaml:"positions"`
	Encoding   *string   `toml:"encoding" yaml:"encoding"`
	Save       *bool     `toml:"save" yaml:"save"`
}

// LoadConfig reads a config from the given path. Files ending in .yaml or
// .yml are decoded as YAML, anything else as TOML. Missing file is not an
// error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg FileConfig
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
		return cfg, nil
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("failed to decode config: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Template returns a commented default config file.
func Template(minLength, maxLength, shards, top, positions int) string {
	return fmt.Sprintf(`# passlab configuration
# Uncomment a value to enable it. CLI flags override config values.

[analyze]
# min-length = %d
# max-length = %d
# ascii-only = false
# pattern = "Lllllldd"
# enhanced = false
# dictionary = "/usr/share/dict/words"
# output = "./passlab-report"
# formats = ["csv", "json"]
# shards = %d
# top = %d
# positions = %d
# encoding = "utf-8"
# save = false
`, minLength, maxLength, shards, top, positions)
}
