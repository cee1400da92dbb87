package timeapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workday-admin/internal/timeapi"
)

func newClient(t *testing.T, handler http.HandlerFunc) *timeapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return timeapi.New(srv.URL, srv.Client(), zerolog.Nop())
}

func TestLogin_Success(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	})

	tok, err := c.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestLogin_UpstreamMessage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Account locked"})
	})

	_, err := c.Login(context.Background(), "a@b.c", "x")
	var apiErr *timeapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Account locked", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	// Bad credentials on login must not look like an expired session.
	assert.False(t, errors.Is(err, timeapi.ErrUnauthorized))
}

func TestLogin_FallbackMessage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.Login(context.Background(), "a@b.c", "x")
	var apiErr *timeapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestUsers_BearerInjected(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"_id":"u1","name":"Ada","email":"ada@example.com","role":"EMPLOYEE"}]`))
	})

	users, err := c.Users(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "Ada", users[0].Name)
}

func TestUsers_Unauthorized(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Users(context.Background(), "stale")
	assert.ErrorIs(t, err, timeapi.ErrUnauthorized)
}

func TestWorkdays_QueryParams(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/time/admin/user", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "u1", q.Get("userId"))
		assert.Equal(t, "2026-08-01", q.Get("from"))
		assert.Equal(t, "2026-08-28", q.Get("to"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "20", q.Get("limit"))
		_, _ = w.Write([]byte(`{"items":[{"_id":"wd1","date":"2026-08-27","totalWorkTime":5400000}],"total":45}`))
	})

	page, err := c.Workdays(context.Background(), "tok", timeapi.WorkdayQuery{
		UserID: "u1",
		From:   "2026-08-01",
		To:     "2026-08-28",
		Page:   2,
		Limit:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, 45, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(5400000), page.Items[0].TotalWorkTime)
}

func TestWorkdays_OmitsEmptyDateFilters(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("from"))
		assert.False(t, q.Has("to"))
		_, _ = w.Write([]byte(`{"items":[],"total":0}`))
	})

	page, err := c.Workdays(context.Background(), "tok", timeapi.WorkdayQuery{UserID: "u1", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)
}

func TestDeleteUser(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/users/u2", r.URL.Path)
		_, _ = w.Write([]byte(`{"deleted":"u2"}`))
	})

	require.NoError(t, c.DeleteUser(context.Background(), "tok", "u2"))
}

func TestCreateUser_UpstreamError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Email already in use"})
	})

	err := c.CreateUser(context.Background(), "tok", timeapi.CreateUserParams{
		Name: "Ada", Email: "ada@example.com", Password: "pw", Role: "EMPLOYEE",
	})
	var apiErr *timeapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already in use", apiErr.Message)
}

func TestExportCSV(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/time/admin/export/user", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("date,totalWorkTime\n2026-08-27,5400000\n"))
	})

	body, err := c.ExportCSV(context.Background(), "tok", "u1", "", "")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2026-08-27")
}
