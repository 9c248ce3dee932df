package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"

	"github.com/oliworks/devbed/internal/templates"
)

const validConfig = `
[framework]
url = "https://github.com/example/courseware.git"
revision = "8b7df143d91c716ecfa5fc1730022f6b421b05cd"
subdir = "courseware"
dest = "courseware"

[module]
name = "analytics"
source = "src/analytics"
tests = "tests/analytics"

[[patch]]
file = "0001-compat.patch"
`

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "config.toml")
	if err := os.WriteFile(path, []byte(validConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Framework.URL != "https://github.com/example/courseware.git" {
		t.Fatalf("unexpected url: %q", cfg.Framework.URL)
	}
	if cfg.Framework.Dest != "courseware" {
		t.Fatalf("unexpected dest: %q", cfg.Framework.Dest)
	}
	if cfg.Framework.Scratch != DefaultScratch {
		t.Fatalf("expected default scratch %q, got %q", DefaultScratch, cfg.Framework.Scratch)
	}
	if cfg.Framework.ModulesDir != DefaultModulesDir {
		t.Fatalf("expected default modules_dir %q, got %q", DefaultModulesDir, cfg.Framework.ModulesDir)
	}
	if cfg.Framework.TestsDir != DefaultTestsDir {
		t.Fatalf("expected default tests_dir %q, got %q", DefaultTestsDir, cfg.Framework.TestsDir)
	}
	if len(cfg.Patches) != 1 || cfg.Patches[0].File != "0001-compat.patch" {
		t.Fatalf("unexpected patches: %+v", cfg.Patches)
	}
	if got := cfg.Patches[0].StripCount(); got != DefaultStrip {
		t.Fatalf("expected default strip %d, got %d", DefaultStrip, got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "missing config file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseConfigExpandsHomeURL(t *testing.T) {
	config := `
[framework]
url = "~/frameworks/courseware"
revision = "main"
subdir = "courseware"
dest = "courseware"

[module]
name = "analytics"
source = "src/analytics"
tests = "tests/analytics"
`
	cfg, err := ParseConfig([]byte(config), "test")
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	home, err := homedir.Dir()
	if err != nil {
		t.Fatalf("resolve home dir: %v", err)
	}
	want := filepath.Join(home, "frameworks", "courseware")
	if cfg.Framework.URL != want {
		t.Fatalf("expected expanded url %q, got %q", want, cfg.Framework.URL)
	}
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	config := validConfig + "\n[framework.extra]\nnope = true\n"
	_, err := ParseConfig([]byte(config), "test")
	if err == nil {
		t.Fatal("expected unknown key error")
	}
	if !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected ErrConfigValidation, got: %v", err)
	}
	if !strings.Contains(err.Error(), "unrecognized config keys") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseConfig_ValidationErrorIncludesGuidance(t *testing.T) {
	config := `
[framework]
url = "https://github.com/example/courseware.git"
`
	_, err := ParseConfig([]byte(config), "test")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "devbed wizard") || !strings.Contains(err.Error(), "devbed doctor") {
		t.Fatalf("expected error to contain guidance about wizard/doctor, got: %v", err)
	}
	if !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected error to wrap ErrConfigValidation, got: %v", err)
	}
}

func TestParseConfig_TOMLSyntaxErrorIsNotValidationError(t *testing.T) {
	_, err := ParseConfig([]byte(`{{{`), "test")
	if err == nil {
		t.Fatal("expected TOML syntax error")
	}
	if errors.Is(err, ErrConfigValidation) {
		t.Fatalf("TOML syntax error should not match ErrConfigValidation, got: %v", err)
	}
}

func TestParseConfigLenient_MissingRequiredFields(t *testing.T) {
	config := `
[framework]
url = "https://github.com/example/courseware.git"
`
	cfg, err := ParseConfigLenient([]byte(config), "test")
	if err != nil {
		t.Fatalf("expected lenient parse to succeed, got: %v", err)
	}
	if cfg.Framework.Revision != "" {
		t.Fatalf("expected empty revision, got %q", cfg.Framework.Revision)
	}
	if cfg.Framework.ModulesDir != DefaultModulesDir {
		t.Fatalf("expected defaults applied, got modules_dir %q", cfg.Framework.ModulesDir)
	}
	// Strict parse should fail on the same input.
	if _, strictErr := ParseConfig([]byte(config), "test"); strictErr == nil {
		t.Fatal("expected strict ParseConfig to fail for missing fields")
	}
}

func TestParseConfigLenient_LeavesURLUnexpanded(t *testing.T) {
	config := `
[framework]
url = "~/frameworks/courseware"
`
	cfg, err := ParseConfigLenient([]byte(config), "test")
	if err != nil {
		t.Fatalf("ParseConfigLenient error: %v", err)
	}
	if cfg.Framework.URL != "~/frameworks/courseware" {
		t.Fatalf("expected unexpanded url, got %q", cfg.Framework.URL)
	}
}

func TestLoadConfigLenient_MissingFile(t *testing.T) {
	_, err := LoadConfigLenient("/nonexistent/config.toml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "missing config file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadTemplateConfig(t *testing.T) {
	cfg, err := LoadTemplateConfig()
	if err != nil {
		t.Fatalf("LoadTemplateConfig error: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected config, got nil")
	}
	if cfg.Framework.URL == "" {
		t.Fatalf("expected framework.url in template config")
	}
}

func TestLoadTemplateConfigReadError(t *testing.T) {
	original := templates.ReadFunc
	templates.ReadFunc = func(path string) ([]byte, error) {
		return nil, errors.New("mock read error")
	}
	t.Cleanup(func() { templates.ReadFunc = original })

	_, err := LoadTemplateConfig()
	if err == nil {
		t.Fatalf("expected error when template read fails")
	}
	if !strings.Contains(err.Error(), "failed to read template") {
		t.Fatalf("unexpected error: %v", err)
	}
}
