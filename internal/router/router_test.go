package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/internal/testutil"
	"github.com/anonto42/heritage-feed/backend/pkg/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type api struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T) *api {
	e := New(Dependencies{
		Store:     repositories.NewStore(testutil.NewDB(t)),
		RateLimit: config.RateLimitConfig{},
		Logger:    zerolog.Nop(),
	})
	return &api{t: t, e: e}
}

func (a *api) do(method, path, body string) (int, envelope) {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (a *api) createID(path, body string) uint {
	a.t.Helper()
	code, env := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, code, env.Error.Message)
	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	return out.ID
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestFollowAndTimelineFlow(t *testing.T) {
	a := newAPI(t)
	author := a.createID("/api/v1/profiles", `{"username":"ama","country":"Ghana"}`)
	reader := a.createID("/api/v1/profiles", `{"username":"kojo","country":"Ghana"}`)

	post := a.createID("/api/v1/posts", fmt.Sprintf(
		`{"profile_id":%d,"post_name":"sunset","post_location":"Cape Coast","post_type":"photo"}`, author))

	path := fmt.Sprintf("/api/v1/profiles/%d/following/%d", reader, author)
	for i := 0; i < 2; i++ {
		code, _ := a.do(http.MethodPut, path, "")
		assert.Equal(t, http.StatusOK, code)
	}

	code, env := a.do(http.MethodGet, fmt.Sprintf("/api/v1/profiles/%d/stats", author), "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, fmt.Sprintf(`{"profile_id":%d,"followers_count":1,"following_count":0}`, author), string(env.Data))

	code, env = a.do(http.MethodGet, fmt.Sprintf("/api/v1/profiles/%d/timeline", reader), "")
	require.Equal(t, http.StatusOK, code)
	var feed []struct {
		ID       uint   `json:"id"`
		PostName string `json:"post_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, post, feed[0].ID)

	code, _ = a.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, code)
	code, env = a.do(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"following":false`)
}

func TestLikeFlow(t *testing.T) {
	a := newAPI(t)
	owner := a.createID("/api/v1/profiles", `{"username":"ama","country":"Ghana"}`)
	post := a.createID("/api/v1/posts", fmt.Sprintf(
		`{"profile_id":%d,"post_name":"storm","post_location":"Accra"}`, owner))

	path := fmt.Sprintf("/api/v1/posts/%d/likes/%d", post, owner)
	for i := 0; i < 2; i++ {
		code, _ := a.do(http.MethodPut, path, "")
		require.Equal(t, http.StatusOK, code)
	}

	code, env := a.do(http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/likes", post), "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"likes_count":1`)
}

func TestErrorMapping(t *testing.T) {
	a := newAPI(t)
	a.createID("/api/v1/profiles", `{"username":"ama","country":"Ghana"}`)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown profile", http.MethodGet, "/api/v1/profiles/99", "", http.StatusNotFound, "NOT_FOUND"},
		{"bad id", http.MethodGet, "/api/v1/profiles/abc", "", http.StatusBadRequest, "BAD_REQUEST"},
		{"malformed body", http.MethodPost, "/api/v1/profiles", `{"username":`, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing field", http.MethodPost, "/api/v1/profiles", `{"username":"kofi"}`, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"duplicate username", http.MethodPost, "/api/v1/profiles", `{"username":"ama","country":"Togo"}`, http.StatusConflict, "CONFLICT"},
		{"bad enum", http.MethodPost, "/api/v1/posts", `{"profile_id":1,"post_name":"x","post_location":"y","post_type":"gif"}`, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"bad search enum", http.MethodGet, "/api/v1/posts?category=roman", "", http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"follow unknown", http.MethodPut, "/api/v1/profiles/1/following/42", "", http.StatusNotFound, "NOT_FOUND"},
		{"is following unknown", http.MethodGet, "/api/v1/profiles/999/following/1", "", http.StatusNotFound, "NOT_FOUND"},
		{"bad page", http.MethodGet, "/api/v1/profiles?limit=-1", "", http.StatusBadRequest, "BAD_REQUEST"},
		{"no route", http.MethodGet, "/api/v1/nowhere", "", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := a.do(tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, code)
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestDeleteIsNoContentAndIdempotent(t *testing.T) {
	a := newAPI(t)
	id := a.createID("/api/v1/profiles", `{"username":"ama","country":"Ghana"}`)

	for i := 0; i < 2; i++ {
		code, _ := a.do(http.MethodDelete, fmt.Sprintf("/api/v1/profiles/%d", id), "")
		assert.Equal(t, http.StatusNoContent, code)
	}
}

func TestProfileStatusToggles(t *testing.T) {
	a := newAPI(t)
	id := a.createID("/api/v1/profiles", `{"username":"ama","country":"Ghana"}`)

	code, env := a.do(http.MethodPost, fmt.Sprintf("/api/v1/profiles/%d/verify", id), "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"is_verified":true`)
	assert.Contains(t, string(env.Data), `"is_active":true`)

	code, env = a.do(http.MethodPost, fmt.Sprintf("/api/v1/profiles/%d/deactivate", id), "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"is_verified":true`)
	assert.Contains(t, string(env.Data), `"is_active":false`)
}
