package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	EnvConfigFile = "WCPREDICT_CONFIG"

	DefaultAPIBaseURL           = "http://127.0.0.1:5000"
	DefaultRequestTimeout       = 10 * time.Second
	DefaultSessionName          = "default"
	DefaultSessionCheckInterval = 30 * time.Second
	DefaultLogLevel             = "warn"
)

// Config holds runtime settings for the wcpredict CLI.
//
// Fields:
//   - APIBaseURL: root URL of the prediction game backend.
//   - RequestTimeout: bound for API calls.
//   - SessionDB: path of the SQLite file holding the persisted session.
//   - SessionName: partition inside SessionDB, so several sessions can share a file.
//   - Ephemeral: keep the session in memory only; it ends with the process.
//   - Locale: BCP 47 tag used to render dates ("" = from the environment).
//   - Timezone: IANA zone of the viewer ("Local" = system zone).
//   - SessionCheckInterval: how often the REPL checks token expiry.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL           string
	RequestTimeout       time.Duration
	SessionDB            string
	SessionName          string
	Ephemeral            bool
	Locale               string
	Timezone             string
	SessionCheckInterval time.Duration
	LogLevel             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.RequestTimeout = DefaultRequestTimeout
	c.SessionDB = defaultSessionDB()
	c.SessionName = DefaultSessionName
	c.Ephemeral = false
	c.Locale = localeFromEnv()
	c.Timezone = "Local"
	c.SessionCheckInterval = DefaultSessionCheckInterval
	c.LogLevel = DefaultLogLevel
}

func defaultSessionDB() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return "wcpredict-session.db"
	}
	return filepath.Join(dir, "wcpredict", "session.db")
}

// localeFromEnv turns a POSIX locale such as "en_GB.UTF-8" into "en-GB".
func localeFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.APIBaseURL) == "":
		return errors.New("api base url is empty")
	case c.RequestTimeout <= 0:
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	case c.SessionCheckInterval <= 0:
		return fmt.Errorf("session check interval must be positive, got %s", c.SessionCheckInterval)
	case !c.Ephemeral && c.SessionDB == "":
		return errors.New("session db path is empty")
	}
	return nil
}
