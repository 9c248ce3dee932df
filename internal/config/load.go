package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/oliworks/devbed/internal/messages"
	"github.com/oliworks/devbed/internal/templates"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax, filesystem, or other loading errors).
// Callers can use errors.Is(err, ErrConfigValidation) to distinguish
// validation problems from other loading failure modes.
var ErrConfigValidation = errors.New("config validation failed")

// LoadConfig reads .devbed/config.toml and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data, path)
}

// LoadTemplateConfig returns the embedded default config template as a validated Config.
func LoadTemplateConfig() (*Config, error) {
	data, err := templates.Read("config.toml")
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigFailedReadTemplateFmt, err)
	}
	return ParseConfig(data, "template config.toml")
}

// ParseConfig parses and validates config TOML data from a source identifier.
// data is the TOML content; source is used in error messages. The returned
// config has defaults applied and a leading ~ in framework.url expanded.
func ParseConfig(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	if err := cfg.expandURL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
// This catches keys that toml.Unmarshal silently ignores (e.g. a misspelled
// tests_dir under [framework]).
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// ParseConfigLenient parses config TOML data without validation.
// Returns an error only on TOML syntax errors. Missing or invalid fields
// are not checked and framework.url is left unexpanded, making this
// suitable for repair tools (wizard, doctor) that need to read and
// rewrite partially valid configs.
func ParseConfigLenient(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadConfigLenient reads .devbed/config.toml without validation.
// Returns an error only on filesystem or TOML syntax errors.
func LoadConfigLenient(path string) (*Config, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfigLenient(data, path)
}

func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
		}
		return nil, fmt.Errorf(messages.ConfigFailedReadFmt, path, err)
	}
	return data, nil
}
