package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Toggle is an on/off switch. It accepts YAML booleans and the German
// ja/nein spelling used by older configuration files. An empty value keeps
// the default.
type Toggle bool

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Toggle) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: toggle must be a scalar", ErrInvalidConfig, value.Line)
	}
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "":
	case "ja", "true", "yes", "on":
		*t = true
	case "nein", "false", "no", "off":
		*t = false
	default:
		return fmt.Errorf("%w: line %d: toggle value %q, want ja or nein", ErrInvalidConfig, value.Line, value.Value)
	}
	return nil
}

// MarshalYAML writes the ja/nein spelling.
func (t Toggle) MarshalYAML() (any, error) {
	if t {
		return "ja", nil
	}
	return "nein", nil
}
