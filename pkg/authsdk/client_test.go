package authsdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func writeTestJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientParsesAPIErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            ErrorCodeInvalidCredentials,
			ErrorDescription: "invalid email or password",
		})
	}))
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)
	_, err := client.Login(context.Background(), LoginRequest{Email: "a@example.com", Password: "x"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClientFallsBackOnNonJSONErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := NewSDKClient(srv.URL).GetLiveness(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}

func TestSessionRefreshesExpiredAccessToken(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/refresh":
			var req RefreshRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.RefreshToken != "refresh-1" {
				writeTestJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorCodeInvalidRefreshToken})
				return
			}
			refreshes.Add(1)
			writeTestJSON(w, http.StatusOK, TokenResponse{
				AccessToken:  "access-2",
				RefreshToken: "refresh-2",
				TokenType:    "Bearer",
				ExpiresIn:    900,
				TenantID:     "t1",
			})
		case "/v1/me":
			if r.Header.Get("Authorization") != "Bearer access-2" {
				writeTestJSON(w, http.StatusUnauthorized, ErrorResponse{Error: ErrorCodeInvalidToken})
				return
			}
			writeTestJSON(w, http.StatusOK, MeResponse{User: UserResponse{ID: "u1"}, Role: "OWNER"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client := NewSDKClient(srv.URL)

	// ExpiresIn 0 minus the skew is already in the past.
	session := client.NewSessionFromTokens(TokenResponse{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresIn:    0,
		TenantID:     "t1",
	})

	me, err := session.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", me.User.ID)
	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, "refresh-2", session.RefreshToken())

	// Fresh token, no second refresh.
	_, err = session.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), refreshes.Load())
}

func TestSessionLogoutClearsRefreshToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
	}))
	t.Cleanup(srv.Close)

	session := NewSDKClient(srv.URL).NewSessionFromTokens(TokenResponse{
		AccessToken:  "a",
		RefreshToken: "r",
		ExpiresIn:    900,
	})

	require.NoError(t, session.Logout(context.Background()))
	require.Empty(t, session.RefreshToken())
	require.ErrorIs(t, session.Logout(context.Background()), ErrNoRefreshToken)
}

func TestPageQuery(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", pageQuery(0, 0))
	require.Equal(t, "?page=2", pageQuery(2, 0))
	require.Equal(t, "?limit=50&page=3", pageQuery(3, 50))
}
