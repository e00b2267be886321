package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/madr/internal/auth"
	"github.com/mrlokans/madr/internal/config"
	"github.com/mrlokans/madr/internal/database"
	"github.com/mrlokans/madr/internal/database/accounts"
	"github.com/mrlokans/madr/internal/database/books"
	"github.com/mrlokans/madr/internal/database/novelists"
)

type testApp struct {
	router *gin.Engine
	db     *database.Database
}

// setupTestApp spins up the full router on a throwaway sqlite file so tests
// exercise real routing, middleware and storage together.
func setupTestApp(t *testing.T) (*testApp, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authConfig := config.Auth{
		SecretKey:   "test-secret-key",
		Algorithm:   "HS256",
		TokenExpiry: time.Hour,
		BcryptCost:  4, // keep the hashing fast in tests
	}
	issuer, err := auth.NewTokenIssuer(authConfig.SecretKey, authConfig.Algorithm, authConfig.TokenExpiry)
	require.NoError(t, err)

	authService := auth.NewService(db.DB, issuer, authConfig)

	router := NewRouter(RouterConfig{
		Database:       db,
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(authService),
		Accounts:       accounts.NewRepository(db.DB),
		Novelists:      novelists.NewRepository(db.DB),
		Books:          books.NewRepository(db.DB),
		Version:        "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return &testApp{router: router, db: db}, cleanup
}

func (app *testApp) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the public endpoint and returns its id.
func (app *testApp) register(t *testing.T, username, email, password string) uint {
	t.Helper()

	w := app.request(t, http.MethodPost, "/users", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.ID
}

// login exchanges credentials for a bearer token through the form endpoint.
func (app *testApp) login(t *testing.T, email, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}
