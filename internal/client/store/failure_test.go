package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/wcpredict/internal/client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	netErr := fmt.Errorf("%w: dial tcp: connection refused", api.ErrUnavailable)

	tests := []struct {
		name          string
		err           error
		authenticated bool
		kind          Kind
		text          string
	}{
		{"401 on authenticated call", rejected(401, "expired"), true, KindAuth, "expired"},
		{"401 without message", rejected(401, ""), true, KindAuth, sessionExpiredText},
		{"401 on anonymous call is api", rejected(401, "bad credentials"), false, KindAPI, "bad credentials"},
		{"401 anonymous no message", rejected(401, ""), false, KindTransport, "Error: request failed with status code 401"},
		{"500 with message", rejected(500, "db down"), true, KindAPI, "db down"},
		{"404 without message", rejected(404, ""), true, KindTransport, "Error: request failed with status code 404"},
		{"network", netErr, true, KindTransport, "Error: " + netErr.Error()},
		{"nil error", nil, false, KindTransport, GenericErrorText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify("load matches", tt.err, tt.authenticated)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.text, f.Text())
			assert.Equal(t, "load matches", f.Action)
		})
	}
}

func TestFailure_ErrorAndUnwrap(t *testing.T) {
	f := Classify("login", rejected(403, "forbidden"), false)
	assert.Equal(t, "login: forbidden", f.Error())
	assert.Equal(t, 403, f.Status)

	var re *api.ResponseError
	require.True(t, errors.As(f, &re))
	assert.Equal(t, 403, re.Status)

	wrapped := fmt.Errorf("outer: %w", Classify("login", fmt.Errorf("%w: timeout", api.ErrUnavailable), false))
	assert.True(t, errors.Is(wrapped, api.ErrUnavailable))
	assert.True(t, isFailure(wrapped, KindTransport))
	assert.False(t, isFailure(wrapped, KindAPI))

	assert.Equal(t, "logout: Error", (&Failure{Action: "logout"}).Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "auth", KindAuth.String())
	assert.Equal(t, "api", KindAPI.String())
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "unknown", actionKind(99).String())
}
