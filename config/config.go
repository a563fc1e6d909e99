// Package config loads the optional YAML configuration file for the CLI:
// extra request headers, fetch timeout, default SPARQL endpoint, and
// default output form. Flags override file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings such as
// "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds the file-configurable settings.
type Config struct {
	// Headers are extra HTTP headers sent on every fetch and query.
	Headers map[string]string `yaml:"headers"`
	// Timeout bounds a single HTTP request.
	Timeout Duration `yaml:"timeout"`
	// Endpoint is the default SPARQL endpoint URL.
	Endpoint string `yaml:"endpoint"`
	// DefaultOutput is the default result form (json, xml, csv, table).
	DefaultOutput string `yaml:"default_output"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Timeout:       Duration(30 * time.Second),
		DefaultOutput: "json",
	}
}

// Load reads a YAML config file, layered over the defaults. Unknown keys
// are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
