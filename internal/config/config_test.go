package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Analyze.MaxLength != nil {
		t.Fatalf("expected empty config")
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[analyze]
max-length = 20
enhanced = true
pattern = "Lllld"
formats = ["csv", "markdown"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a := cfg.Analyze
	if a.MaxLength == nil || *a.MaxLength != 20 {
		t.Fatalf("unexpected max-length: %v", a.MaxLength)
	}
	if a.Enhanced == nil || !*a.Enhanced || a.Pattern == nil || *a.Pattern != "Lllld" {
		t.Fatalf("unexpected analyze config: %+v", a)
	}
	if a.Formats == nil || !reflect.DeepEqual(*a.Formats, []string{"csv", "markdown"}) {
		t.Fatalf("unexpected formats: %v", a.Formats)
	}
	if a.MinLength != nil || a.Shards != nil {
		t.Fatalf("unset keys must stay nil")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[analyze]\nmax-lenght = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "max-lenght") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passlab.yaml")
	data := "analyze:\n  min-length: 6\n  ascii-only: true\n  shards: 4\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a := cfg.Analyze
	if a.MinLength == nil || *a.MinLength != 6 || a.ASCIIOnly == nil || !*a.ASCIIOnly || a.Shards == nil || *a.Shards != 4 {
		t.Fatalf("unexpected yaml config: %+v", a)
	}

	empty := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(empty); err != nil {
		t.Fatalf("empty yaml should load: %v", err)
	}
}

func TestTemplateDecodes(t *testing.T) {
	var cfg FileConfig
	if _, err := toml.Decode(Template(1, 32, 1, 10, 10), &cfg); err != nil {
		t.Fatalf("template must be valid TOML: %v", err)
	}
	if !strings.Contains(Template(1, 32, 1, 10, 10), "# max-length = 32") {
		t.Fatalf("template missing defaults")
	}
}

func TestDefaultPaths(t *testing.T) {
	if !strings.HasSuffix(DefaultConfigPath(), filepath.Join("passlab", "config.toml")) {
		t.Fatalf("unexpected config path: %s", DefaultConfigPath())
	}
	if !strings.HasSuffix(DefaultDBPath(), filepath.Join("passlab", "passlab.db")) {
		t.Fatalf("unexpected db path: %s", DefaultDBPath())
	}
}
