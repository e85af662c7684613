package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agsavn/foodwatch/internal/common"
	"github.com/agsavn/foodwatch/internal/user"
	"github.com/stretchr/testify/require"
)

func authBody(t *testing.T) map[string]any {
	t.Helper()
	return map[string]any{
		"user": map[string]any{
			"id":          7,
			"email":       "alice@x.com",
			"full_name":   "Alice",
			"role":        "USER",
			"date_joined": "2025-03-01T10:00:00Z",
			"last_login":  "2025-03-02T09:00:00Z",
			"is_active":   true,
		},
		"token": map[string]any{"access": "server-token", "refresh": "r"},
	}
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice@x.com", req.Email)
		require.Equal(t, "Passw0rd", req.Password)

		_ = json.NewEncoder(w).Encode(authBody(t))
	}))
	defer srv.Close()

	c := New(srv.URL)
	u, tok, err := c.Login(context.Background(), "alice@x.com", "Passw0rd")
	require.NoError(t, err)
	require.Equal(t, "server-token", tok)
	require.Equal(t, "7", u.ID)
	require.Equal(t, "Alice", u.Name)
	require.Equal(t, user.RoleUser, u.Role)
	require.Equal(t, user.StatusActive, u.Status)
	require.NotNil(t, u.LastLogin)
}

func TestLogin_ErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"detail": "No active account found with the given credentials"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Login(context.Background(), "alice@x.com", "bad")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "No active account found with the given credentials", apiErr.Message)
}

func TestLogin_NonFieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"non_field_errors": []string{"Unable to log in."}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Login(context.Background(), "alice@x.com", "bad")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Unable to log in.", apiErr.Message)
}

func TestLogin_UnparseableErrorBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Login(context.Background(), "alice@x.com", "Passw0rd")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, common.ErrInvalidCredentials.Error(), apiErr.Message)
}

func TestRegister_SendsBackendShapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register/", r.URL.Path)

		var req registerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice@x.com", req.Email)
		require.Equal(t, "Alice", req.FullName)
		require.Equal(t, "USER", req.Role)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(authBody(t))
	}))
	defer srv.Close()

	c := New(srv.URL)
	u, _, err := c.Register(context.Background(), "Alice", "alice@x.com", "Passw0rd", user.RoleUser)
	require.NoError(t, err)
	require.Equal(t, "alice@x.com", u.Email)
}

func TestRegister_FieldError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"email": []string{"user with this email already exists."}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Register(context.Background(), "Alice", "alice@x.com", "Passw0rd", user.RoleUser)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "user with this email already exists.", apiErr.Message)
}

func TestVerify_BearerHeaderAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify/", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.Verify(context.Background(), "good-token"))

	err := c.Verify(context.Background(), "bad-token")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestMe_MapsProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/auth/me/", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          9,
			"email":       "boss@agsavn.org",
			"full_name":   "",
			"role":        "ADMIN",
			"date_joined": "2025-01-15T08:00:00Z",
			"last_login":  nil,
			"is_active":   false,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	u, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "9", u.ID)
	// empty full_name falls back to the email
	require.Equal(t, "boss@agsavn.org", u.Name)
	require.Equal(t, user.RoleAdmin, u.Role)
	require.Equal(t, user.StatusInactive, u.Status)
	require.Nil(t, u.LastLogin)
}

func TestUnreachableServer_WrapsErrUnavailable(t *testing.T) {
	c := New("http://127.0.0.1:1")

	_, _, err := c.Login(context.Background(), "alice@x.com", "Passw0rd")
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrUnavailable))
}
