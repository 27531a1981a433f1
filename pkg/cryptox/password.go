package cryptox

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultPasswordCost is the bcrypt work factor used when none is configured.
const DefaultPasswordCost = 12

// MaxPasswordBytes is the longest input bcrypt will accept.
const MaxPasswordBytes = 72

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrPasswordTooLong  = errors.New("cryptox: password exceeds 72 bytes")
)

// Hasher hashes and verifies passwords with bcrypt. At most a fixed number of
// hash operations run at once; callers beyond that wait for a slot or for
// their context to end.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted

	dummyOnce sync.Once
	dummy     []byte
}

// NewHasher builds a Hasher. A cost outside bcrypt's range falls back to
// DefaultPasswordCost and a non-positive concurrency to GOMAXPROCS.
func NewHasher(cost int, concurrency int64) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordCost
	}
	if concurrency <= 0 {
		concurrency = int64(runtime.GOMAXPROCS(0))
	}
	return &Hasher{
		cost: cost,
		sem:  semaphore.NewWeighted(concurrency),
	}
}

// Cost returns the configured bcrypt work factor.
func (h *Hasher) Cost() int { return h.cost }

// Hash returns the bcrypt encoding of password.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks password against a bcrypt hash. A mismatch, including a
// malformed hash, is reported as ErrPasswordMismatch. bcrypt only reads the
// first MaxPasswordBytes, so longer inputs never match; the comparison still
// runs so they cost the same.
func (h *Hasher) Verify(ctx context.Context, password, encoded string) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err != nil || len(password) > MaxPasswordBytes {
		return ErrPasswordMismatch
	}
	return nil
}

// VerifyDummy burns the same work as Verify against a throwaway hash and
// always reports a mismatch. Login calls it for unknown accounts so response
// time does not reveal which emails are registered.
func (h *Hasher) VerifyDummy(ctx context.Context, password string) error {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte(MustGenerateToken(TokenSize128)), h.cost)
	})
	if err := h.Verify(ctx, password, string(h.dummy)); err != nil && !errors.Is(err, ErrPasswordMismatch) {
		return err
	}
	return ErrPasswordMismatch
}
