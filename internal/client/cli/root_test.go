package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_EphemeralSessionStartsAndExits(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	t.Setenv("WCPREDICT_CONFIG", "")

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader("status\nexit\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--ephemeral", "--api", "http://127.0.0.1:1", "--log-level", "error"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Welcome to wcpredict")
	assert.Contains(t, out.String(), "api:           http://127.0.0.1:1")
	assert.Contains(t, out.String(), "authenticated: false")
}

func TestRootCmd_PromptsShareCommandOutput(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	t.Setenv("WCPREDICT_CONFIG", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("help\nexit\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--ephemeral", "--api", "http://127.0.0.1:1"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got := out.String()
	welcome := strings.Index(got, "Welcome to wcpredict")
	prompt := strings.Index(got, "wc (Login)>")
	help := strings.Index(got, helpLoggedOut)
	bye := strings.Index(got, "Bye!")

	require.GreaterOrEqual(t, welcome, 0)
	assert.Greater(t, prompt, welcome)
	assert.Greater(t, help, prompt)
	assert.Greater(t, bye, help)
}

func TestRootCmd_SessionFileIsCreated(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	t.Setenv("WCPREDICT_CONFIG", "")

	dbPath := filepath.Join(t.TempDir(), "nested", "session.db")
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader("exit\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--session-db", dbPath})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.FileExists(t, dbPath)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	t.Setenv("WCPREDICT_CONFIG", "")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--ephemeral", "--timeout", "0s"})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestRootCmd_BadTimezone(t *testing.T) {
	t.Setenv("WCPREDICT_CONFIG", "")

	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--ephemeral", "--timezone", "Mars/Olympus"})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}
