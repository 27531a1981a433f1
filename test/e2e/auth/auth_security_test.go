package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
)

func TestInvalidCredentials(t *testing.T) {
	client := authsdk.NewSDKClient(setupAuthContainer(t))
	ctx := t.Context()

	registerAndLogin(t, client, "ada@example.com")

	_, err := client.Login(ctx, authsdk.LoginRequest{Email: "ada@example.com", Password: "Wr0ng-password"})
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCredentials)

	// Unknown email looks the same.
	_, err = client.Login(ctx, authsdk.LoginRequest{Email: "nobody@example.com", Password: testPassword})
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCredentials)
}

func TestInvalidAccessToken(t *testing.T) {
	client := authsdk.NewSDKClient(setupAuthContainer(t))

	session := client.NewSessionFromTokens(authsdk.TokenResponse{
		AccessToken: "invalid-token-12345",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	})

	_, err := session.Me(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken)
}

func TestDuplicateRegistration(t *testing.T) {
	client := authsdk.NewSDKClient(setupAuthContainer(t))

	registerAndLogin(t, client, "ada@example.com")

	_, err := client.Register(t.Context(), authsdk.RegisterRequest{Email: "ADA@example.com", Password: testPassword})
	requireAPIError(t, err, http.StatusConflict, authsdk.ErrorCodeUserAlreadyExists)
}
