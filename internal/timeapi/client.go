// Package timeapi is the single client for the remote time-tracking API.
// All pages go through it; no handler builds its own request.
package timeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"workday-admin/internal/metrics"
	"workday-admin/internal/models"
)

// ErrUnauthorized reports that the API rejected the bearer token. It is a
// control-flow signal: the handler decides what to do with it (destroy the
// session and send the browser to /login), never this package.
var ErrUnauthorized = errors.New("timeapi: unauthorized")

// APIError is a non-2xx response from the API, carrying the upstream
// message verbatim when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("timeapi: %d: %s", e.Status, e.Message)
}

// Client talks to the time-tracking API at a fixed base origin.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient, log: log}
}

// CreateUserParams are the fields of the user-creation endpoint.
type CreateUserParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// WorkdayQuery filters and paginates a user's workday listing. Page is
// 1-based. From and To are ISO dates and may be empty.
type WorkdayQuery struct {
	UserID string
	From   string
	To     string
	Page   int
	Limit  int
}

// Login exchanges credentials for a bearer token. A 401 here means bad
// credentials, not an expired session, so it surfaces as an *APIError
// with the upstream message (fallback "Invalid credentials").
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.send(req, "login")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp, "Invalid credentials")
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	return out.AccessToken, nil
}

// Users fetches the full account list.
func (c *Client) Users(ctx context.Context, token string) ([]models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users", nil, token, nil, "users")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var users []models.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// CreateUser creates an account.
func (c *Client) CreateUser(ctx context.Context, token string, p CreateUserParams) error {
	resp, err := c.do(ctx, http.MethodPost, "/users", nil, token, p, "create_user")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// DeleteUser removes an account by id.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, token, nil, "delete_user")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Workdays fetches one page of a user's workdays. Missing items or total
// in the response decode to an empty page.
func (c *Client) Workdays(ctx context.Context, token string, q WorkdayQuery) (models.WorkdayPage, error) {
	qs := url.Values{}
	qs.Set("userId", q.UserID)
	if q.From != "" {
		qs.Set("from", q.From)
	}
	if q.To != "" {
		qs.Set("to", q.To)
	}
	qs.Set("page", strconv.Itoa(q.Page))
	qs.Set("limit", strconv.Itoa(q.Limit))

	var page models.WorkdayPage
	resp, err := c.do(ctx, http.MethodGet, "/time/admin/user", qs, token, nil, "workdays")
	if err != nil {
		return page, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return models.WorkdayPage{}, fmt.Errorf("decode workdays: %w", err)
	}
	return page, nil
}

// ExportCSV streams the CSV export for a user under the given date
// filters. The caller owns the returned body and must close it.
func (c *Client) ExportCSV(ctx context.Context, token, userID, from, to string) (io.ReadCloser, error) {
	qs := url.Values{}
	qs.Set("userId", userID)
	if from != "" {
		qs.Set("from", from)
	}
	if to != "" {
		qs.Set("to", to)
	}

	resp, err := c.do(ctx, http.MethodGet, "/time/admin/export/user", qs, token, nil, "export_csv")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// do issues an authenticated request and returns the response when it is
// 2xx. 401 maps to ErrUnauthorized, any other failure to *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body any, endpoint string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.send(req, endpoint)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		resp.Body.Close()
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		defer resp.Body.Close()
		return nil, apiError(resp, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

func (c *Client) send(req *http.Request, endpoint string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("upstream request failed")
		return nil, fmt.Errorf("timeapi: %s: %w", endpoint, err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// apiError builds an *APIError from a non-2xx response, preferring the
// JSON message field when present.
func apiError(resp *http.Response, fallback string) error {
	msg := fallback
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		msg = body.Message
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
