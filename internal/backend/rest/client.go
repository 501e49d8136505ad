// Package rest implements service.Service against the task tracker REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"taskboard/internal/config"
	"taskboard/internal/service"
	"taskboard/internal/task"
)

const (
	// APITimeout is the default timeout for API calls.
	APITimeout = 5 * time.Second

	tasksPath   = "/api/tasks"
	reorderPath = "/api/tasks/reorder"
	userPath    = "/auth/user"

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Client implements service.Service over HTTP.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     logrus.FieldLogger
}

// New creates a client from cfg. A bearer token, when configured, is attached
// through an oauth2 static token source; a session cookie is placed in the
// client's cookie jar.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	base, err := parseBase(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, src)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if cfg.SessionCookie != "" {
		name := cfg.CookieName
		if name == "" {
			name = config.DefaultCookieName
		}
		jar.SetCookies(base, []*http.Cookie{{Name: name, Value: cfg.SessionCookie, Path: "/"}})
	}
	httpClient.Jar = jar
	httpClient.CheckRedirect = noRedirect

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = APITimeout
	}

	return &Client{
		base:    base,
		http:    httpClient,
		timeout: timeout,
		log:     cfg.Logger(),
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}
	c := *httpClient
	c.CheckRedirect = noRedirect
	return &Client{
		base:    base,
		http:    &c,
		timeout: APITimeout,
		log:     (&config.Config{}).Logger(),
	}, nil
}

func parseBase(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", raw)
	}
	return u, nil
}

// noRedirect stops at the first redirect. The server answers unauthenticated
// requests by redirecting to its login page.
func noRedirect(req *http.Request, via []*http.Request) error {
	return http.ErrUseLastResponse
}

// ListTasks returns every task of the current user.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, in task.Input) (task.Task, error) {
	var created task.Task
	if err := c.do(ctx, http.MethodPost, tasksPath, in, &created); err != nil {
		return task.Task{}, err
	}
	return created, nil
}

// UpdateTask replaces the editable fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id int64, in task.Input) (task.Task, error) {
	var updated task.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), in, &updated); err != nil {
		return task.Task{}, err
	}
	return updated, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// Reorder submits the full order as a JSON array of ids.
func (c *Client) Reorder(ctx context.Context, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	return c.do(ctx, http.MethodPut, reorderPath, ids, nil)
}

// CurrentUser returns the logged-in user.
func (c *Client) CurrentUser(ctx context.Context) (service.User, error) {
	var u service.User
	if err := c.do(ctx, http.MethodGet, userPath, nil, &u); err != nil {
		return service.User{}, err
	}
	return u, nil
}

func taskPath(id int64) string {
	return tasksPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), r)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"method": method, "path": path}).Debug("api call failed")
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("api call")

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return wrapError(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// checkStatus maps non-2xx responses to service errors.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return service.ErrUnauthorized
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		if strings.Contains(resp.Header.Get("Location"), "login") {
			return service.ErrUnauthorized
		}
		return &service.RejectedError{StatusCode: resp.StatusCode, Message: "unexpected redirect"}
	case resp.StatusCode == http.StatusNotFound:
		return service.ErrNotFound
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &service.RejectedError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
}

// errorMessage extracts a human-readable message from an error body.
// Field errors arrive keyed by field name ({"title": "..."}).
func errorMessage(data []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err == nil {
		for _, key := range []string{"title", "message", "error"} {
			if s, ok := fields[key].(string); ok && s != "" {
				return s
			}
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// wrapError classifies transport failures.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", service.ErrTransport, service.ErrTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", service.ErrTransport, err)
}
