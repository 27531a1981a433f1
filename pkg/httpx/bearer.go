package httpx

import (
	"net/http"
	"strings"
)

// BearerToken extracts the token from an "Authorization: Bearer ..." header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// SetBearerChallenge sets an RFC 6750 WWW-Authenticate header. An empty code
// yields a bare "Bearer" challenge, for requests that carried no credentials.
func SetBearerChallenge(w http.ResponseWriter, code, desc string) {
	challenge := "Bearer"
	if code != "" {
		challenge += ` error="` + code + `"`
		if desc != "" {
			challenge += `, error_description="` + strings.ReplaceAll(desc, `"`, `'`) + `"`
		}
	}
	w.Header().Set("WWW-Authenticate", challenge)
}
