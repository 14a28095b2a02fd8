package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoClassifiesValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"missing required field","message":"Missing required field: title","status":400,"field":"title"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.do(context.Background(), http.MethodPost, "/api/projects", map[string]string{}, nil)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.False(t, IsInfrastructure(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Missing required field: title", apiErr.Message)
	assert.Equal(t, "title", apiErr.Field)
}

func TestDoClassifiesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found","message":"record not found","status":404}`))
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.do(context.Background(), http.MethodDelete, "/api/projects/x", nil, nil)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsInfrastructure(err))
}

func TestDoClassifiesAuthErrorAndFiresHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"missing access token","message":"Access denied. No token provided.","status":401}`))
	}))
	defer server.Close()

	hookFired := false
	c := New(server.URL, WithAuthErrorHook(func() { hookFired = true }))
	err := c.do(context.Background(), http.MethodGet, "/api/contact", nil, nil)

	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.True(t, hookFired)
}

func TestDoClassifiesServerErrorAsInfrastructure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.do(context.Background(), http.MethodGet, "/api/projects", nil, nil)

	require.Error(t, err)
	assert.True(t, IsInfrastructure(err))
	assert.False(t, IsValidation(err))
}

func TestDoClassifiesUnreachableServerAsInfrastructure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	c := New(server.URL)
	err := c.do(context.Background(), http.MethodGet, "/api/projects", nil, nil)

	require.Error(t, err)
	assert.True(t, IsInfrastructure(err))
}

func TestDoClassifiesUndecodableBodyAsInfrastructure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer server.Close()

	c := New(server.URL)
	var out []map[string]interface{}
	err := c.do(context.Background(), http.MethodGet, "/api/projects", nil, &out)

	require.Error(t, err)
	assert.True(t, IsInfrastructure(err))
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, WithTokenSource(func() string { return "tok-1" }))
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/api/auth/verify", nil, nil))

	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestDoSkipsAuthorizationHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, WithTokenSource(func() string { return "" }))
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/api/projects", nil, nil))

	assert.Empty(t, gotAuth)
}
