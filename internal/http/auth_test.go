package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (app *testApp) postTokenForm(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func TestAuth_Token(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	app.register(t, "alice", "alice@example.com", "secret")

	form := url.Values{}
	form.Set("username", "alice@example.com")
	form.Set("password", "secret")

	w := app.postTokenForm(t, form)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestAuth_Token_IncorrectCredentials(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	app.register(t, "alice", "alice@example.com", "secret")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown email", "nobody@example.com", "secret"},
		{"wrong password", "alice@example.com", "wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			form.Set("username", tt.username)
			form.Set("password", tt.password)

			w := app.postTokenForm(t, form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Incorrect email or password", decodeError(t, w))
		})
	}
}

func TestAuth_Token_MissingFields(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	form := url.Values{}
	form.Set("username", "alice@example.com")

	w := app.postTokenForm(t, form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuth_RefreshToken(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	app.register(t, "alice", "alice@example.com", "secret")
	token := app.login(t, "alice@example.com", "secret")

	w := app.request(t, http.MethodPost, "/auth/refresh_token", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	// The refreshed token authenticates on its own.
	w = app.request(t, http.MethodGet, "/novelist", resp.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_RefreshToken_Unauthenticated(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.request(t, http.MethodPost, "/auth/refresh_token", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			assert.Equal(t, "Could not validate credentials", decodeError(t, w))
		})
	}
}
