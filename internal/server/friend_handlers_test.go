package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mingle/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func friendApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(asUser(userID))
	app.Get("/friends", s.GetFriends)
	app.Post("/friends/requests/:userId", s.SendFriendRequest)
	app.Post("/friends/requests/:userId/accept", s.AcceptFriendRequest)
	app.Post("/friends/requests/:userId/reject", s.RejectFriendRequest)
	app.Delete("/friends/:userId", s.RemoveFriend)
	return app
}

func doReq(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	return resp
}

func TestFriendRequestAcceptFlow(t *testing.T) {
	s := newTestServer(t)
	alice := createTestUser(t, s.db, "alice")
	bob := createTestUser(t, s.db, "bob")

	aliceApp := friendApp(s, alice.ID)
	bobApp := friendApp(s, bob.ID)

	resp := doReq(t, aliceApp, http.MethodPost, fmt.Sprintf("/friends/requests/%d", bob.ID))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// Bob sees the pending request.
	resp = doReq(t, bobApp, http.MethodGet, "/friends")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list models.FriendList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	_ = resp.Body.Close()
	require.Len(t, list.FriendRequests, 1)
	assert.Equal(t, "alice", list.FriendRequests[0].Username)

	resp = doReq(t, bobApp, http.MethodPost, fmt.Sprintf("/friends/requests/%d/accept", alice.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Alice is in Bob's list; Bob is not in Alice's.
	resp = doReq(t, bobApp, http.MethodGet, "/friends")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	_ = resp.Body.Close()
	require.Len(t, list.Friends, 1)
	assert.Equal(t, "alice", list.Friends[0].Username)

	resp = doReq(t, aliceApp, http.MethodGet, "/friends")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	_ = resp.Body.Close()
	assert.Empty(t, list.Friends)
}

func TestFriendRequestErrors(t *testing.T) {
	s := newTestServer(t)
	alice := createTestUser(t, s.db, "alice")
	bob := createTestUser(t, s.db, "bob")
	app := friendApp(s, alice.ID)

	t.Run("self request", func(t *testing.T) {
		resp := doReq(t, app, http.MethodPost, fmt.Sprintf("/friends/requests/%d", alice.ID))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("unknown target", func(t *testing.T) {
		resp := doReq(t, app, http.MethodPost, "/friends/requests/9999")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("duplicate request rejected", func(t *testing.T) {
		resp := doReq(t, app, http.MethodPost, fmt.Sprintf("/friends/requests/%d", bob.ID))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doReq(t, app, http.MethodPost, fmt.Sprintf("/friends/requests/%d", bob.ID))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()

		var body models.ErrorResponse
		require.NoError(t, json.NewDecoder(doReq(t, app, http.MethodPost,
			fmt.Sprintf("/friends/requests/%d", bob.ID)).Body).Decode(&body))
		assert.Equal(t, models.CodeAlreadyRelated, body.Code)
	})

	t.Run("accept without request", func(t *testing.T) {
		resp := doReq(t, app, http.MethodPost, fmt.Sprintf("/friends/requests/%d/accept", bob.ID))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("bad id param", func(t *testing.T) {
		resp := doReq(t, app, http.MethodPost, "/friends/requests/abc")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestRejectAndRemoveAreIdempotentOverHTTP(t *testing.T) {
	s := newTestServer(t)
	alice := createTestUser(t, s.db, "alice")
	bob := createTestUser(t, s.db, "bob")
	app := friendApp(s, alice.ID)

	for i := 0; i < 2; i++ {
		resp := doReq(t, app, http.MethodPost, fmt.Sprintf("/friends/requests/%d/reject", bob.ID))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doReq(t, app, http.MethodDelete, fmt.Sprintf("/friends/%d", bob.ID))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
}
