// Package api is the HTTP client for the wellness backend: daily tasks,
// completion confirmation, history, the admin teacher roster and the
// auth endpoints. It holds no state beyond the token source.
package api

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
)

// TokenSource returns the bearer token to send, or "" when logged out.
type TokenSource func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource replaces the token source. The session store is usually
// built after the client, so it is wired in here.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.token = ts
}

func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the union of every response body the backend sends.
type envelope struct {
	Success       bool             `json:"success"`
	Error         string           `json:"error,omitempty"`
	Message       string           `json:"message,omitempty"`
	Tasks         []Task           `json:"tasks,omitempty"`
	AllCompleted  *bool            `json:"allCompleted,omitempty"`
	Streak        int              `json:"streak,omitempty"`
	LongestStreak *int             `json:"longestStreak,omitempty"`
	History       []DayRecord      `json:"history,omitempty"`
	Teachers      []TeacherSummary `json:"teachers,omitempty"`
	Token         string           `json:"token,omitempty"`
	User          *User            `json:"user,omitempty"`
}

func (e envelope) reason(fallback string) string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Message != "":
		return e.Message
	default:
		return fallback
	}
}

// do sends the request and decodes the body. A non-2xx status is returned as
// *Error, with the decoded envelope alongside so callers can read it.
func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	var env envelope
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &env); err != nil {
			if resp.StatusCode >= 300 {
				return nil, &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
			}
			return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	if resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Message: env.reason(http.StatusText(resp.StatusCode))}
		c.log.Warn("request rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("reason", apiErr.Message),
		)
		return &env, apiErr
	}
	return &env, nil
}

// DailyTasks fetches today's task set.
func (c *Client) DailyTasks(ctx context.Context) (*DailyTasks, error) {
	env, err := c.do(ctx, http.MethodGet, "/tasks/daily", nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &Error{Message: env.reason("Failed to load tasks")}
	}
	out := &DailyTasks{Tasks: env.Tasks}
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	if env.AllCompleted != nil {
		out.ServerConfirmed = *env.AllCompleted
	}
	c.log.Info("tasks received", slog.Int("count", len(out.Tasks)))
	return out, nil
}

// UpdateTaskCompletion sets one task's completion and returns the server's
// full task list for today.
func (c *Client) UpdateTaskCompletion(ctx context.Context, taskID string, completed bool) ([]Task, error) {
	path := "/tasks/daily/" + url.PathEscape(taskID)
	env, err := c.do(ctx, http.MethodPut, path, map[string]bool{"completed": completed})
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &Error{Message: env.reason("Failed to update task")}
	}
	if env.Tasks == nil {
		return []Task{}, nil
	}
	return env.Tasks, nil
}

// MarkAllCompleted asks the server to record today as fully completed. A
// server rejection is reported in the result, not as an error; err is only
// set when the server could not be reached or answered garbage.
func (c *Client) MarkAllCompleted(ctx context.Context) (CompletionResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/tasks/complete", nil)
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return CompletionResult{Error: apiErr.Message}, nil
	}
	if err != nil {
		return CompletionResult{}, err
	}
	if !env.Success {
		return CompletionResult{Error: env.reason("Unable to update streak")}, nil
	}

	res := CompletionResult{OK: true, Streak: env.Streak, Message: env.Message}
	if env.LongestStreak != nil {
		res.LongestStreak = *env.LongestStreak
	}
	c.log.Info("all tasks marked complete", slog.Int("streak", res.Streak))
	return res, nil
}

// History fetches past days keyed by date.
func (c *Client) History(ctx context.Context) (History, error) {
	env, err := c.do(ctx, http.MethodGet, "/tasks/history", nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &Error{Message: env.reason("Failed to load history")}
	}
	h := make(History, len(env.History))
	for _, d := range env.History {
		h[d.Date] = d
	}
	return h, nil
}

// Teachers fetches the admin roster.
func (c *Client) Teachers(ctx context.Context) ([]TeacherSummary, error) {
	env, err := c.do(ctx, http.MethodGet, "/tasks/admin/teachers", nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &Error{Message: env.reason("Failed to load teachers")}
	}
	c.log.Info("teachers received", slog.Int("count", len(env.Teachers)))
	if env.Teachers == nil {
		return []TeacherSummary{}, nil
	}
	return env.Teachers, nil
}
