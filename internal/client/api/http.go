package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/dmitrijs2005/wcpredict/internal/client/models"
	"github.com/dmitrijs2005/wcpredict/internal/logging"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const (
	PathMatchesWithPredictions = "/matches/predictions"
	PathLogin                  = "/login"
	PathLogout                 = "/logout"
	PathRegister               = "/register"
	PathResetPassword          = "/reset_password"
	PathDeleteUser             = "/delete_user"
	PathChangePassword         = "/change_password"

	HeaderRequestID = "X-Request-ID"

	DefaultTimeout = 10 * time.Second
)

type HTTPClient struct {
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
	logger  logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds calls whose context carries no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithDial replaces the connection dialer, e.g. with an in-memory listener.
func WithDial(dial func(addr string) (net.Conn, error)) Option {
	return func(c *HTTPClient) { c.client.Dial = dial }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         DefaultTimeout,
			WriteTimeout:        DefaultTimeout,
			MaxIdleConnDuration: time.Minute,
		},
		logger: logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Close drops idle keep-alive connections.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userRef struct {
	Username string `json:"username"`
}

type passwordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (c *HTTPClient) FetchMatchesWithPredictions(ctx context.Context, token string) (*Response[[]models.Match], error) {
	return doRequest[[]models.Match](ctx, c, fasthttp.MethodGet, PathMatchesWithPredictions, token, nil)
}

func (c *HTTPClient) SubmitLogin(ctx context.Context, username, password string) (*Response[models.LoginData], error) {
	return doRequest[models.LoginData](ctx, c, fasthttp.MethodPost, PathLogin, "", credentials{Username: username, Password: password})
}

func (c *HTTPClient) SubmitLogout(ctx context.Context) (*Response[models.MessageData], error) {
	return doRequest[models.MessageData](ctx, c, fasthttp.MethodPost, PathLogout, "", nil)
}

func (c *HTTPClient) SubmitRegister(ctx context.Context, token, username string) (*Response[models.AccountData], error) {
	return doRequest[models.AccountData](ctx, c, fasthttp.MethodPost, PathRegister, token, userRef{Username: username})
}

func (c *HTTPClient) SubmitResetPassword(ctx context.Context, token, username string) (*Response[models.AccountData], error) {
	return doRequest[models.AccountData](ctx, c, fasthttp.MethodPost, PathResetPassword, token, userRef{Username: username})
}

func (c *HTTPClient) SubmitDeleteUser(ctx context.Context, token, username string) (*Response[models.MessageData], error) {
	return doRequest[models.MessageData](ctx, c, fasthttp.MethodPost, PathDeleteUser, token, userRef{Username: username})
}

func (c *HTTPClient) SubmitChangePassword(ctx context.Context, token, oldPassword, newPassword string) (*Response[models.MessageData], error) {
	return doRequest[models.MessageData](ctx, c, fasthttp.MethodPost, PathChangePassword, token, passwordChange{OldPassword: oldPassword, NewPassword: newPassword})
}

func doRequest[T any](ctx context.Context, c *HTTPClient, method, path, token string, body any) (*Response[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	requestID := uuid.NewString()

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	log := c.logger.With("method", method, "path", path, "request_id", requestID)
	started := time.Now()

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else if c.timeout > 0 {
		err = c.client.DoTimeout(req, resp, c.timeout)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}

	status := resp.StatusCode()
	log.Debug(ctx, "request done", "status", status, "elapsed", time.Since(started))

	if status < 200 || status > 299 {
		return nil, newResponseError(status, resp.Body())
	}

	out := &Response[T]{Status: status}
	if raw := resp.Body(); len(raw) > 0 {
		if err := json.Unmarshal(raw, &out.Data); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return out, nil
}
