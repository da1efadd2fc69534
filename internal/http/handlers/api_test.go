package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hongminglow/userhub-be/internal/auth"
	"github.com/hongminglow/userhub-be/internal/config"
	"github.com/hongminglow/userhub-be/internal/models"
	"github.com/hongminglow/userhub-be/internal/models/dto"
	"github.com/hongminglow/userhub-be/internal/service"
	"github.com/hongminglow/userhub-be/internal/storage/memory"
)

type testAPI struct {
	server *httptest.Server
	store  *memory.Store
}

func newTestAPI(t *testing.T, ttl time.Duration) *testAPI {
	t.Helper()

	store := memory.NewUserStore()
	cfg := config.Config{MinPasswordLength: 8, MinAge: 13}
	log := zap.NewNop()
	tokens := auth.NewTokenManager("test-secret", "userhub-test", ttl)
	authSvc := service.NewAuthService(store, tokens, log)
	userSvc := service.NewUserService(store, cfg, log)

	mux := http.NewServeMux()
	NewAuthHandler(userSvc, authSvc, log).Register(mux)
	NewUserHandler(userSvc, authSvc, log).Register(mux)
	NewProductHandler([]models.Product{{ID: 1, Name: "Tomato"}}).Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return &testAPI{server: ts, store: store}
}

func (a *testAPI) do(t *testing.T, method, path, token string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func registerPayload(username, email string) map[string]any {
	return map[string]any{
		"name":     "Gabriel",
		"surname":  "Otero",
		"username": username,
		"email":    email,
		"age":      28,
		"password": "Abcdef12",
	}
}

func (a *testAPI) register(t *testing.T, username, email string) models.User {
	t.Helper()
	resp, raw := a.do(t, http.MethodPost, "/users/register", "", registerPayload(username, email))
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register body: %s", raw)

	var user models.User
	require.NoError(t, json.Unmarshal(raw, &user))
	return user
}

func (a *testAPI) login(t *testing.T, email, password string) dto.TokenResponse {
	t.Helper()
	resp, raw := a.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login body: %s", raw)

	var session dto.TokenResponse
	require.NoError(t, json.Unmarshal(raw, &session))
	return session
}

func TestRegisterThenDuplicate(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, time.Hour)

	user := api.register(t, "gotero", "a@x.com")
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.IsAdmin)

	resp, raw := api.do(t, http.MethodPost, "/users/register", "", registerPayload("gotero2", "a@x.com"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "duplicate_key")
}

func TestRegister_NeverEchoesPassword(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, time.Hour)

	resp, raw := api.do(t, http.MethodPost, "/users/register", "", registerPayload("gotero", "a@x.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotContains(t, string(raw), "Abcdef12")
	assert.NotContains(t, string(raw), "password")
}

func TestRegister_ValidationIs422(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, time.Hour)

	payload := registerPayload("gotero", "a@x.com")
	payload["age"] = 11
	resp, raw := api.do(t, http.MethodPost, "/users/register", "", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(raw), "validation_error")
}

func TestLogin_WrongPasswordRepeatsIdenticalBody(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, time.Hour)
	api.register(t, "gotero", "a@x.com")

	var bodies []string
	for range 3 {
		resp, raw := api.do(t, http.MethodPost, "/users/login", "", map[string]string{
			"email": "a@x.com", "password": "Wrongpw12",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		bodies = append(bodies, string(raw))
	}
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])

	// Unknown email yields the very same body: no enumeration signal.
	resp, raw := api.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email": "ghost@x.com", "password": "Wrongpw12",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, bodies[0], string(raw))
}

func TestLogin_TokenResponseShape(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, 30*time.Minute)
	api.register(t, "gotero", "a@x.com")

	session := api.login(t, "a@x.com", "Abcdef12")
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, 1800, session.ExpiresIn)
	assert.NotEmpty(t, session.AccessToken)
}

func TestMe(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, time.Hour)
	created := api.register(t, "gotero", "a@x.com")
	session := api.login(t, "a@x.com", "Abcdef12")

	resp, raw := api.do(t, http.MethodGet, "/users/me", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me models.User
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, created.ID, me.ID)
}

func TestMe_MissingAndExpiredToken(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, time.Hour)
	resp, _ := api.do(t, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired := newTestAPI(t, -1*time.Second)
	expired.register(t, "gotero", "a@x.com")
	session := expired.login(t, "a@x.com", "Abcdef12")

	resp, raw := expired.do(t, http.MethodGet, "/users/me", session.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), "unauthorized")
}

func TestUserCRUD_SelfOrAdmin(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, time.Hour)

	alice := api.register(t, "alice", "alice@x.com")
	bob := api.register(t, "bob_b", "bob@x.com")
	require.NoError(t, api.store.SetAdmin(alice.ID, true))

	adminToken := api.login(t, "alice@x.com", "Abcdef12").AccessToken
	userToken := api.login(t, "bob@x.com", "Abcdef12").AccessToken

	// Non-admin cannot list.
	resp, _ := api.do(t, http.MethodGet, "/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin lists everyone.
	resp, raw := api.do(t, http.MethodGet, "/users", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.Len(t, users, 2)

	// Non-admin cannot read, update, or delete someone else, even with a
	// perfectly valid payload.
	resp, _ = api.do(t, http.MethodGet, "/users/"+alice.ID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = api.do(t, http.MethodPut, "/users/"+alice.ID, userToken, map[string]string{"name": "Mallory"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = api.do(t, http.MethodDelete, "/users/"+alice.ID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Self update only touches provided fields.
	resp, raw = api.do(t, http.MethodPut, "/users/"+bob.ID, userToken, map[string]any{"name": "Robert"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.User
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, bob.Email, updated.Email)

	// Admin deletes bob; a second delete is a 404.
	resp, _ = api.do(t, http.MethodDelete, "/users/"+bob.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = api.do(t, http.MethodDelete, "/users/"+bob.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Bob's token resolves no more.
	resp, _ = api.do(t, http.MethodGet, "/users/me", userToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, time.Hour)

	resp, raw := api.do(t, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	require.NoError(t, json.Unmarshal(raw, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Tomato", products[0].Name)

	resp, _ = api.do(t, http.MethodGet, "/products/1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = api.do(t, http.MethodGet, "/products/99", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
