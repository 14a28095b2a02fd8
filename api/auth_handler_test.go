package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesAdmin(t *testing.T) {
	router, _ := setupTest(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "ray",
		"email":    "ray@example.com",
		"password": "hunter22",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	var body authResponse
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "ray", body.User.Username)
	assert.Equal(t, "admin", body.User.Role)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	router, _ := setupTest(t)

	first := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "ray", "email": "ray@example.com", "password": "hunter22",
	}, "")
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "ray", "email": "ray2@example.com", "password": "other",
	}, "")

	require.Equal(t, http.StatusBadRequest, second.Code)
	var body map[string]interface{}
	decodeBody(t, second, &body)
	assert.Equal(t, "User with this email or username already exists", body["message"])
}

func TestLoginReturnsTokenForValidCredentials(t *testing.T) {
	router, _ := setupTest(t)

	doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "ray", "email": "ray@example.com", "password": "hunter22",
	}, "")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "ray", "password": "hunter22",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body authResponse
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := setupTest(t)

	doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "ray", "email": "ray@example.com", "password": "hunter22",
	}, "")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"wrong password", map[string]string{"username": "ray", "password": "wrong"}},
		{"unknown user", map[string]string{"username": "ghost", "password": "hunter22"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/login", tc.body, "")

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]interface{}
			decodeBody(t, rec, &body)
			assert.Equal(t, "Invalid credentials", body["message"])
		})
	}
}

func TestVerifyRequiresToken(t *testing.T) {
	router, _ := setupTest(t)

	rec := doJSON(t, router, http.MethodGet, "/api/auth/verify", nil, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Access denied. No token provided.", body["message"])
}

func TestVerifyAcceptsValidToken(t *testing.T) {
	router, d := setupTest(t)
	token := adminToken(t, d)

	rec := doJSON(t, router, http.MethodGet, "/api/auth/verify", nil, token)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Access granted", body["message"])
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	router, _ := setupTest(t)

	rec := doJSON(t, router, http.MethodGet, "/api/auth/verify", nil, "not-a-jwt")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
