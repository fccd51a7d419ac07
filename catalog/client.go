package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang-jwt/jwt/v5"

	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/store"
)

// DefaultTimeout bounds every request made by the HTTP client.
const DefaultTimeout = 30 * time.Second

// StatusError is returned for non-success responses.
type StatusError struct {
	Path    string
	Message string
	Code    int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned %d", e.Path, e.Code)
	}

	return fmt.Sprintf("%s returned %d: %s", e.Path, e.Code, e.Message)
}

// HTTPClient talks to the catalog service (workouts) and the account API
// (auth and programs). The bearer token is read from the store before every
// authenticated request.
type HTTPClient struct {
	httpClient *http.Client
	store      store.Store
	logger     *slog.Logger
	now        func() time.Time
	catalogURL string
	apiURL     string
}

// Compile-time check: HTTPClient satisfies Catalog.
var _ Catalog = (*HTTPClient)(nil)

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.logger = l
	}
}

// NewHTTPClient creates an HTTPClient. catalogURL serves workouts, apiURL
// serves auth and programs.
func NewHTTPClient(
	catalogURL, apiURL string,
	s store.Store,
	opts ...ClientOption,
) *HTTPClient {
	c := &HTTPClient{
		catalogURL: strings.TrimRight(catalogURL, "/"),
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		store:      s,
		logger:     slog.Default(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// clearCredentials removes the stored token and user record.
func (c *HTTPClient) clearCredentials() {
	err := c.store.RemoveMany(store.KeyAuthToken, store.KeyUserData)
	if err != nil {
		c.logger.Error("clearing credentials failed", slog.Any("error", err))
	}
}

// token returns the stored bearer token, or "" if there is none. A token that
// is a JWT with an expiry in the past is cleared and reported as expired.
// Opaque tokens are passed through as-is.
func (c *HTTPClient) token() (string, error) {
	tok, found, err := c.store.Get(store.KeyAuthToken)
	if err != nil {
		c.logger.Warn("reading auth token failed", slog.Any("error", err))
		return "", nil
	}

	if !found || tok == "" {
		return "", nil
	}

	claims := &jwt.RegisteredClaims{}

	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	if err != nil {
		return tok, nil
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(c.now()) {
		c.clearCredentials()
		return "", ErrSessionExpired
	}

	return tok, nil
}

type request struct {
	body     any
	out      any
	method   string
	base     string
	path     string
	auth     bool
	required bool
}

func (c *HTTPClient) do(ctx context.Context, r request) error {
	var body io.Reader

	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("httpclient: encode body: %w", err)
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.base+r.path, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.auth {
		tok, err := c.token()
		if err != nil {
			return err
		}

		if tok == "" && r.required {
			return ErrNotLoggedIn
		}

		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", r.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && r.auth {
		c.clearCredentials()
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}

		if json.Unmarshal(b, &msg) != nil || msg.Message == "" {
			msg.Message = strings.TrimSpace(string(b))
		}

		return &StatusError{Path: r.path, Code: resp.StatusCode, Message: msg.Message}
	}

	if r.out == nil {
		return nil
	}

	if err := json.Unmarshal(b, r.out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, r.path, err)
	}

	if c.logger.Enabled(ctx, slog.LevelDebug) {
		c.logger.DebugContext(ctx, "api response",
			slog.String("path", r.path),
			slog.String("body", spew.Sdump(r.out)),
		)
	}

	return nil
}

// Workout fetches a workout and its ordered exercise list. Every failure,
// including a response that cannot drive a session, is a *FetchError.
func (c *HTTPClient) Workout(
	ctx context.Context,
	id string,
) (*models.WorkoutDetail, error) {
	var d models.WorkoutDetail

	err := c.do(ctx, request{
		method: http.MethodGet,
		base:   c.catalogURL,
		path:   "/user/workouts/" + url.PathEscape(id),
		out:    &d,
		auth:   true,
	})
	if err == nil {
		err = validate(&d)
	}

	if err != nil {
		return nil, &FetchError{WorkoutID: id, Err: err}
	}

	return &d, nil
}

// IsAuthError reports whether err means the user has to login again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrNotLoggedIn)
}
