package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// Sizes in bytes before encoding.
const (
	TokenSize128 = 16 // 22 base64url chars
	TokenSize256 = 32 // 43 base64url chars
)

var ErrTokenSize = errors.New("cryptox: token size must be positive")

// GenerateSecret returns size bytes from crypto/rand. It backs HMAC signing
// keys when none are configured.
func GenerateSecret(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrTokenSize, size)
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("cryptox: read random: %w", err)
	}
	return buf, nil
}

// GenerateToken returns size random bytes as unpadded base64url, suitable for
// invitation tokens handed to users.
func GenerateToken(size int) (string, error) {
	buf, err := GenerateSecret(size)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateToken panics where GenerateToken would return an error.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(err)
	}
	return token
}

// FingerprintToken is the unpadded base64url SHA-256 of token. Refresh and
// invitation tokens are persisted and looked up by fingerprint only, so a
// leaked table does not yield usable tokens.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
