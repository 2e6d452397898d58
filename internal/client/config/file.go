package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts "10s"-style strings or integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return d.parse(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid duration %s", b)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	if node.Tag == "!!int" {
		var n int64
		if err := node.Decode(&n); err != nil {
			return err
		}
		d.Duration = time.Duration(n)
		return nil
	}
	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// fileConfig is the on-disk shape. Pointers tell absent keys from zero
// values.
type fileConfig struct {
	APIBaseURL           *string   `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout       *Duration `json:"request_timeout" yaml:"request_timeout"`
	SessionDB            *string   `json:"session_db" yaml:"session_db"`
	SessionName          *string   `json:"session_name" yaml:"session_name"`
	Ephemeral            *bool     `json:"ephemeral" yaml:"ephemeral"`
	Locale               *string   `json:"locale" yaml:"locale"`
	Timezone             *string   `json:"timezone" yaml:"timezone"`
	SessionCheckInterval *Duration `json:"session_check_interval" yaml:"session_check_interval"`
	LogLevel             *string   `json:"log_level" yaml:"log_level"`
}

var ErrUnknownFormat = errors.New("unknown config format")

// ResolvePath returns the config file to read: the flag value, else the
// WCPREDICT_CONFIG environment variable, else "".
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvConfigFile)
}

// LoadFile overlays cfg with the keys present in the file at path.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	case ".json", "":
		err = json.Unmarshal(data, &fc)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setString(&cfg.SessionDB, fc.SessionDB)
	setString(&cfg.SessionName, fc.SessionName)
	if fc.Ephemeral != nil {
		cfg.Ephemeral = *fc.Ephemeral
	}
	setString(&cfg.Locale, fc.Locale)
	setString(&cfg.Timezone, fc.Timezone)
	setDuration(&cfg.SessionCheckInterval, fc.SessionCheckInterval)
	setString(&cfg.LogLevel, fc.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
