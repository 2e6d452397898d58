package config

import (
	"time"

	"github.com/spf13/pflag"
)

const (
	FlagConfig               = "config"
	FlagAPIBaseURL           = "api"
	FlagRequestTimeout       = "timeout"
	FlagSessionDB            = "session-db"
	FlagSessionName          = "session"
	FlagEphemeral            = "ephemeral"
	FlagLocale               = "locale"
	FlagTimezone             = "timezone"
	FlagSessionCheckInterval = "check-interval"
	FlagLogLevel             = "log-level"
)

// Flags receives the command-line values before they are merged.
type Flags struct {
	ConfigFile string
	values     Config
}

// BindFlags registers the client flags on fs. Defaults shown in help come
// from LoadDefaults.
func BindFlags(fs *pflag.FlagSet, f *Flags) {
	var d Config
	d.LoadDefaults()

	fs.StringVarP(&f.ConfigFile, FlagConfig, "c", "", "path to a JSON or YAML config file (env "+EnvConfigFile+")")
	fs.StringVarP(&f.values.APIBaseURL, FlagAPIBaseURL, "a", d.APIBaseURL, "base URL of the prediction game API")
	fs.DurationVar(&f.values.RequestTimeout, FlagRequestTimeout, d.RequestTimeout, "API request timeout")
	fs.StringVar(&f.values.SessionDB, FlagSessionDB, d.SessionDB, "path of the session database")
	fs.StringVar(&f.values.SessionName, FlagSessionName, d.SessionName, "session name inside the session database")
	fs.BoolVar(&f.values.Ephemeral, FlagEphemeral, d.Ephemeral, "keep the session in memory only")
	fs.StringVar(&f.values.Locale, FlagLocale, d.Locale, "locale used to render dates, e.g. en-GB")
	fs.StringVar(&f.values.Timezone, FlagTimezone, d.Timezone, "time zone used to render dates")
	fs.DurationVarP(&f.values.SessionCheckInterval, FlagSessionCheckInterval, "i", d.SessionCheckInterval, "session expiry check interval")
	fs.StringVar(&f.values.LogLevel, FlagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
}

// applyFlags copies the flags the user set onto cfg.
func (f *Flags) applyFlags(cfg *Config, fs *pflag.FlagSet) {
	str := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration, v time.Duration) {
		if fs.Changed(name) {
			*dst = v
		}
	}

	str(FlagAPIBaseURL, &cfg.APIBaseURL, f.values.APIBaseURL)
	dur(FlagRequestTimeout, &cfg.RequestTimeout, f.values.RequestTimeout)
	str(FlagSessionDB, &cfg.SessionDB, f.values.SessionDB)
	str(FlagSessionName, &cfg.SessionName, f.values.SessionName)
	if fs.Changed(FlagEphemeral) {
		cfg.Ephemeral = f.values.Ephemeral
	}
	str(FlagLocale, &cfg.Locale, f.values.Locale)
	str(FlagTimezone, &cfg.Timezone, f.values.Timezone)
	dur(FlagSessionCheckInterval, &cfg.SessionCheckInterval, f.values.SessionCheckInterval)
	str(FlagLogLevel, &cfg.LogLevel, f.values.LogLevel)
}

// Load builds a Config from defaults, the config file and the flags set on
// fs, in that order.
func Load(fs *pflag.FlagSet, f *Flags) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := ResolvePath(f.ConfigFile); path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	f.applyFlags(cfg, fs)
	return cfg, nil
}
