/*
Package authsdk provides a client SDK for the tenantry authentication service.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: unauthenticated operations (register, login, refresh, logout,
    invitation acceptance, health) and creation of sessions
  - Session: authenticated operations with automatic token refresh

Register and start a session:

	client := authsdk.NewSDKClient("https://auth.example.com")

	reg, err := client.Register(ctx, authsdk.RegisterRequest{
		Email:    "ada@example.com",
		Password: "Sup3r-secret",
	})
	session := client.NewSessionFromTokens(reg.Tokens)

	me, err := session.Me(ctx)

# Tenants

Every token acts as exactly one tenant. Login binds to the user's oldest
membership; SwitchTenant re-binds the session to another tenant the user
belongs to:

	tenants, err := session.ListTenants(ctx)
	_, err = session.SwitchTenant(ctx, tenants.Tenants[1].Tenant.ID)

# Automatic Token Refresh

Before each request the session checks the access token's expiry (minus
SDKClient.RefreshSkew) and, when due, exchanges the refresh token for a new
pair. Refresh tokens are single use: the server revokes the presented one, so
a Session must not be copied between processes.

# Error Handling

Non-2xx responses are returned as *APIError. Use errors.Is against the
predefined errors or compare Code with the ErrorCode constants:

	_, err := client.Login(ctx, authsdk.LoginRequest{Email: e, Password: p})
	if errors.Is(err, authsdk.ErrInvalidCredentials) {
		// wrong email or password
	}

# Validation

Request types carry a Validate method applying the same boundary rules the
server enforces (password policy, email format, lengths). It returns nil or a
map of field name to reason.

# Thread Safety

Sessions are safe for concurrent use. Concurrent requests that find the
access token expired perform a single refresh.
*/
package authsdk
