package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/auth/signup", s.Signup)
	app.Post("/auth/login", s.Login)

	resp := postJSON(t, app, "/auth/signup", fiber.Map{
		"username": "ada",
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ada", user["username"])
	assert.Equal(t, "/uploads/default.jpg", user["avatar_url"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword, "password hash must never be serialized")

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)
	app := fiber.New()
	app.Post("/auth/signup", s.Signup)

	cases := []fiber.Map{
		{"username": "x", "email": "a@b.co", "password": "password123"},
		{"username": "valid_name", "email": "junk", "password": "password123"},
		{"username": "valid_name", "email": "a@b.co", "password": "short"},
	}
	for _, payload := range cases {
		resp := postJSON(t, app, "/auth/signup", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	}
}

func TestSignupDuplicate(t *testing.T) {
	s := newTestServer(t)
	createTestUser(t, s.db, "ada")
	app := fiber.New()
	app.Post("/auth/signup", s.Signup)

	resp := postJSON(t, app, "/auth/signup", fiber.Map{
		"username": "other",
		"email":    "ada@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postJSON(t, app, "/auth/signup", fiber.Map{
		"username": "ada",
		"email":    "fresh@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	createTestUser(t, s.db, "ada")
	app := fiber.New()
	app.Post("/auth/login", s.Login)

	resp := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "ghost@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}
