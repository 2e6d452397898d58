package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func parse(t *testing.T, args ...string) (*pflag.FlagSet, *Flags) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := &Flags{}
	BindFlags(fs, f)
	require.NoError(t, fs.Parse(args))
	return fs, f
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "en_GB.UTF-8")

	c := defaults()
	assert.Equal(t, DefaultAPIBaseURL, c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, DefaultSessionName, c.SessionName)
	assert.Equal(t, "en-GB", c.Locale)
	assert.Equal(t, "Local", c.Timezone)
	assert.Equal(t, 30*time.Second, c.SessionCheckInterval)
	assert.Equal(t, "warn", c.LogLevel)
	assert.False(t, c.Ephemeral)
	assert.NotEmpty(t, c.SessionDB)
	assert.NoError(t, c.Validate())
}

func TestLocaleFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "C")
	t.Setenv("LC_TIME", "de_DE@euro")
	t.Setenv("LANG", "fr_FR.UTF-8")
	assert.Equal(t, "de-DE", localeFromEnv())

	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "")
	assert.Equal(t, "", localeFromEnv())
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
		"api_base_url": "https://wc.example",
		"request_timeout": "3s",
		"session_check_interval": 2000000000,
		"ephemeral": true,
		"log_level": "debug"
	}`)

	c := defaults()
	require.NoError(t, LoadFile(&c, path))

	want := defaults()
	want.APIBaseURL = "https://wc.example"
	want.RequestTimeout = 3 * time.Second
	want.SessionCheckInterval = 2 * time.Second
	want.Ephemeral = true
	want.LogLevel = "debug"
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
api_base_url: https://wc.example
request_timeout: 1m
session_name: work
locale: de
timezone: Europe/Berlin
session_check_interval: 5000000000
`)

	c := defaults()
	require.NoError(t, LoadFile(&c, path))

	want := defaults()
	want.APIBaseURL = "https://wc.example"
	want.RequestTimeout = time.Minute
	want.SessionName = "work"
	want.Locale = "de"
	want.Timezone = "Europe/Berlin"
	want.SessionCheckInterval = 5 * time.Second
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoadFile_Errors(t *testing.T) {
	c := defaults()

	err := LoadFile(&c, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	err = LoadFile(&c, writeFile(t, "cfg.toml", `a = 1`))
	require.ErrorIs(t, err, ErrUnknownFormat)

	err = LoadFile(&c, writeFile(t, "bad.json", `{"request_timeout": "soon"}`))
	require.Error(t, err)

	err = LoadFile(&c, writeFile(t, "bad.yml", "request_timeout: [1, 2]\n"))
	require.Error(t, err)

	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "api_base_url: https://from-file\nlog_level: info\n")
	t.Setenv(EnvConfigFile, "")

	fs, f := parse(t, "--config", path, "--log-level", "error", "--ephemeral")
	cfg, err := Load(fs, f)
	require.NoError(t, err)

	assert.Equal(t, "https://from-file", cfg.APIBaseURL)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.Ephemeral)
	// unset flags do not reset file or default values
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
}

func TestLoad_EnvConfigFile(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"api_base_url": "https://from-env"}`)
	t.Setenv(EnvConfigFile, path)

	fs, f := parse(t, "-a", "https://from-flag")
	cfg, err := Load(fs, f)
	require.NoError(t, err)
	assert.Equal(t, "https://from-flag", cfg.APIBaseURL)

	fs, f = parse(t)
	cfg, err = Load(fs, f)
	require.NoError(t, err)
	assert.Equal(t, "https://from-env", cfg.APIBaseURL)
}

func TestLoad_NoSources(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	fs, f := parse(t, "-i", "1m")
	cfg, err := Load(fs, f)
	require.NoError(t, err)

	want := defaults()
	want.SessionCheckInterval = time.Minute
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoad_BadFile(t *testing.T) {
	fs, f := parse(t, "-c", writeFile(t, "cfg.json", `{`))
	_, err := Load(fs, f)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.APIBaseURL = " "
	assert.Error(t, c.Validate())

	c = defaults()
	c.RequestTimeout = 0
	assert.Error(t, c.Validate())

	c = defaults()
	c.SessionCheckInterval = -time.Second
	assert.Error(t, c.Validate())

	c = defaults()
	c.SessionDB = ""
	assert.Error(t, c.Validate())
	c.Ephemeral = true
	assert.NoError(t, c.Validate())
}
