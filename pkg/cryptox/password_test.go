package cryptox

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "Password1!"},
		{"unicode password", "Pässwörd1!"},
		{"max length", strings.Repeat("a", MaxPasswordBytes)},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(ctx, tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$2a$"), "bcrypt encoding expected")
			require.NotContains(t, hash, tt.password)

			require.NoError(t, h.Verify(ctx, tt.password, hash))
			require.ErrorIs(t, h.Verify(ctx, tt.password+"x", hash), ErrPasswordMismatch)
		})
	}
}

func TestHasher_SaltsEveryHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	a, err := h.Hash(context.Background(), "Password1!")
	require.NoError(t, err)
	b, err := h.Hash(context.Background(), "Password1!")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHasher_RejectsLongPasswords(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	_, err := h.Hash(context.Background(), strings.Repeat("a", MaxPasswordBytes+1))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestHasher_VerifyRejectsBytesPastLimit(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	ctx := context.Background()

	pw := strings.Repeat("a", MaxPasswordBytes)
	hash, err := h.Hash(ctx, pw)
	require.NoError(t, err)

	require.NoError(t, h.Verify(ctx, pw, hash))
	require.ErrorIs(t, h.Verify(ctx, pw+"suffix", hash), ErrPasswordMismatch)
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	require.ErrorIs(t, h.Verify(context.Background(), "anything", "not-a-hash"), ErrPasswordMismatch)
	require.ErrorIs(t, h.Verify(context.Background(), "anything", ""), ErrPasswordMismatch)
}

func TestHasher_VerifyDummyAlwaysMismatches(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	for range 3 {
		require.ErrorIs(t, h.VerifyDummy(context.Background(), "Password1!"), ErrPasswordMismatch)
	}
}

func TestHasher_DefaultsOutOfRangeCost(t *testing.T) {
	require.Equal(t, DefaultPasswordCost, NewHasher(0, 1).Cost())
	require.Equal(t, DefaultPasswordCost, NewHasher(bcrypt.MaxCost+1, 1).Cost())
	require.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost, 1).Cost())
}

func TestHasher_HonorsContextWhileWaiting(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	// Hold the only slot.
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.Hash(ctx, "Password1!")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHasher_Concurrent(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := h.Hash(context.Background(), "Password1!")
			require.NoError(t, err)
			require.NoError(t, h.Verify(context.Background(), "Password1!", hash))
		}()
	}
	wg.Wait()
}
