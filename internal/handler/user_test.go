package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserManagementIsSuperuserOnly(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice@example.com", "pw123", "Alice")
	alice := ts.login(t, "alice@example.com", "pw123")

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/users/1"},
		{http.MethodPut, "/api/v1/users/1"},
		{http.MethodDelete, "/api/v1/users/1"},
	}
	for _, p := range paths {
		rec := ts.do(t, p.method, p.path, alice, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestSuperuserManagesUsers(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice@example.com", "pw123", "Alice")
	adminID := ts.register(t, "admin@example.com", "pw789", "Admin")
	ts.users.setFlags(adminID, true, true)
	admin := ts.login(t, "admin@example.com", "pw789")

	rec := ts.do(t, http.MethodGet, "/api/v1/users", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)

	// Deactivate Alice; her existing session dies with the flag.
	alice := ts.login(t, "alice@example.com", "pw123")
	rec = ts.do(t, http.MethodPut, "/api/v1/users/1", admin, `{"is_active":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = ts.do(t, http.MethodGet, "/api/v1/users/me", alice, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/v1/users/1", admin, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = ts.do(t, http.MethodGet, "/api/v1/users/1", admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMeUpdate(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice@example.com", "pw123", "Alice")
	ts.register(t, "bob@example.com", "pw456", "Bob")
	alice := ts.login(t, "alice@example.com", "pw123")

	rec := ts.do(t, http.MethodPut, "/api/v1/users/me", alice, `{"full_name":"Alice B"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Alice B"`)

	// Taking another user's email is a conflict.
	rec = ts.do(t, http.MethodPut, "/api/v1/users/me", alice, `{"email":"bob@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A regular user cannot grant themselves the superuser flag; the field
	// is simply not part of the profile update.
	rec = ts.do(t, http.MethodPut, "/api/v1/users/me", alice, `{"is_superuser":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_superuser":false`)
}
