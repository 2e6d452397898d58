package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/wcpredict/internal/client/api"
	"github.com/dmitrijs2005/wcpredict/internal/client/localtime"
	"github.com/dmitrijs2005/wcpredict/internal/client/models"
	"github.com/dmitrijs2005/wcpredict/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var errNotConfigured = errors.New("fake api: not configured")

// fakeAPI implements api.Client with per-endpoint hooks.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	fetch          func(ctx context.Context, token string) (*api.Response[[]models.Match], error)
	login          func(ctx context.Context, username, password string) (*api.Response[models.LoginData], error)
	logout         func(ctx context.Context) (*api.Response[models.MessageData], error)
	register       func(ctx context.Context, token, username string) (*api.Response[models.AccountData], error)
	resetPassword  func(ctx context.Context, token, username string) (*api.Response[models.AccountData], error)
	deleteUser     func(ctx context.Context, token, username string) (*api.Response[models.MessageData], error)
	changePassword func(ctx context.Context, token, oldPassword, newPassword string) (*api.Response[models.MessageData], error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) FetchMatchesWithPredictions(ctx context.Context, token string) (*api.Response[[]models.Match], error) {
	f.record("fetch")
	if f.fetch == nil {
		return nil, errNotConfigured
	}
	return f.fetch(ctx, token)
}

func (f *fakeAPI) SubmitLogin(ctx context.Context, username, password string) (*api.Response[models.LoginData], error) {
	f.record("login")
	if f.login == nil {
		return nil, errNotConfigured
	}
	return f.login(ctx, username, password)
}

func (f *fakeAPI) SubmitLogout(ctx context.Context) (*api.Response[models.MessageData], error) {
	f.record("logout")
	if f.logout == nil {
		return &api.Response[models.MessageData]{Status: 200}, nil
	}
	return f.logout(ctx)
}

func (f *fakeAPI) SubmitRegister(ctx context.Context, token, username string) (*api.Response[models.AccountData], error) {
	f.record("register")
	if f.register == nil {
		return nil, errNotConfigured
	}
	return f.register(ctx, token, username)
}

func (f *fakeAPI) SubmitResetPassword(ctx context.Context, token, username string) (*api.Response[models.AccountData], error) {
	f.record("reset_password")
	if f.resetPassword == nil {
		return nil, errNotConfigured
	}
	return f.resetPassword(ctx, token, username)
}

func (f *fakeAPI) SubmitDeleteUser(ctx context.Context, token, username string) (*api.Response[models.MessageData], error) {
	f.record("delete_user")
	if f.deleteUser == nil {
		return nil, errNotConfigured
	}
	return f.deleteUser(ctx, token, username)
}

func (f *fakeAPI) SubmitChangePassword(ctx context.Context, token, oldPassword, newPassword string) (*api.Response[models.MessageData], error) {
	f.record("change_password")
	if f.changePassword == nil {
		return nil, errNotConfigured
	}
	return f.changePassword(ctx, token, oldPassword, newPassword)
}

type fakeNav struct {
	mu     sync.Mutex
	routes []Route
}

func (n *fakeNav) Push(r Route) {
	n.mu.Lock()
	n.routes = append(n.routes, r)
	n.mu.Unlock()
}

func (n *fakeNav) Routes() []Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Route(nil), n.routes...)
}

// flakyStorage fails writes while failWrites is set, and always fails
// writes of failKey.
type flakyStorage struct {
	*storage.Memory
	failKey string

	mu         sync.Mutex
	failWrites bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyStorage) setFail(v bool) {
	f.mu.Lock()
	f.failWrites = v
	f.mu.Unlock()
}

func (f *flakyStorage) failing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWrites
}

func (f *flakyStorage) Set(ctx context.Context, key, value string) error {
	if f.failing() || key == f.failKey {
		return errDiskFull
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyStorage) Remove(ctx context.Context, key string) error {
	if f.failing() {
		return errDiskFull
	}
	return f.Memory.Remove(ctx, key)
}

func (f *flakyStorage) Clear(ctx context.Context) error {
	if f.failing() {
		return errDiskFull
	}
	return f.Memory.Clear(ctx)
}

// isFailure reports whether err is a classified failure of kind k.
func isFailure(err error, k Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == k
}

type harness struct {
	store *Store
	api   *fakeAPI
	nav   *fakeNav
	mem   *storage.Memory
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{api: &fakeAPI{}, nav: &fakeNav{}, mem: storage.NewMemory()}
	opts = append([]Option{WithFormatter(localtime.NewFormatter("en-US", time.UTC))}, opts...)
	h.store = New(h.api, h.mem, h.nav, opts...)
	return h
}

func (h *harness) stored(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, ok, err := h.mem.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func resolved[T any](status int, data T) (*api.Response[T], error) {
	return &api.Response[T]{Status: status, Data: data}, nil
}

func rejected(status int, message string) error {
	body := `{}`
	if message != "" {
		body = `{"message":"` + message + `"}`
	}
	return &api.ResponseError{Status: status, Message: message, Body: []byte(body)}
}
