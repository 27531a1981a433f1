package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tenantry/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned by conditional updates whose guard no longer
	// holds (e.g. an invitation that was accepted by a concurrent request).
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories are exposed as methods so a transaction can
// hand out the same repos bound to the transaction, and so nobody starts a
// transaction inside a transaction by accident.
type Store interface {
	Users() Users
	Tenants() Tenants
	Memberships() Memberships
	RefreshTokens() RefreshTokens
	Invitations() Invitations
	Items() Items

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by (lower-cased) email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. Returns ErrAlreadyExists when the email
	// is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser applies a partial profile update and bumps updated_at.
	UpdateUser(ctx context.Context, userID string, upd domain.UserUpdate) (domain.User, error)

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser cascades to memberships and refresh_tokens (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Tenants interface {
	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error)

	// CreateTenant inserts a tenant. Returns ErrAlreadyExists on slug clash.
	CreateTenant(ctx context.Context, t domain.Tenant) error

	UpdateTenant(ctx context.Context, tenantID string, upd domain.TenantUpdate) (domain.Tenant, error)

	// DeleteTenant cascades to memberships, invitations and items.
	DeleteTenant(ctx context.Context, tenantID string) error

	// ListTenantsForUser returns every tenant the user belongs to together
	// with their role, oldest membership first.
	ListTenantsForUser(ctx context.Context, userID string) ([]domain.TenantWithRole, error)
}

type Memberships interface {
	GetMembership(ctx context.Context, userID, tenantID string) (domain.Membership, error)

	// CreateMembership inserts a membership. Returns ErrAlreadyExists when
	// the pair already has one.
	CreateMembership(ctx context.Context, m domain.Membership) error

	// UpsertMembership creates the membership or overwrites the role of an
	// existing one. An existing OWNER row is never demoted.
	UpsertMembership(ctx context.Context, m domain.Membership) error

	// UpdateMembershipRole changes the role of a non-owner membership.
	// Returns ErrNotFound when there is no such non-owner membership.
	UpdateMembershipRole(ctx context.Context, userID, tenantID string, role domain.Role) error

	// DeleteMembership removes the user from the tenant.
	DeleteMembership(ctx context.Context, userID, tenantID string) error

	// ListMembershipsByUser returns the user's memberships ordered by
	// creation, oldest first.
	ListMembershipsByUser(ctx context.Context, userID string) ([]domain.Membership, error)

	// ListMembers returns one page of a tenant's members, oldest first.
	ListMembers(ctx context.Context, tenantID string, page domain.Page) ([]domain.Member, error)

	// CountOwners returns the number of OWNER memberships in a tenant.
	CountOwners(ctx context.Context, tenantID string) (int64, error)
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked=1 on a token that is not yet revoked.
	// Returns ErrNotFound when no unrevoked token matches.
	RevokeRefreshToken(ctx context.Context, hash string) error

	// RevokeAllUserRefreshTokens bulk-revokes a user's tokens and returns how
	// many were revoked.
	RevokeAllUserRefreshTokens(ctx context.Context, userID string) (int64, error)

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Invitations interface {
	// CreateInvitation writes a new invitation.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByTokenHash returns an invitation by token fingerprint
	// regardless of its state.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// ListPendingInvitations returns unaccepted, unexpired invitations for a
	// tenant, newest first.
	ListPendingInvitations(ctx context.Context, tenantID string, now time.Time) ([]domain.Invitation, error)

	// MarkInvitationAccepted flips accepted from 0 to 1. Returns ErrConflict
	// when the invitation was already accepted.
	MarkInvitationAccepted(ctx context.Context, invitationID, acceptedBy string) error

	// DeleteInvitation removes a pending invitation from a tenant.
	DeleteInvitation(ctx context.Context, tenantID, invitationID string) error

	// DeleteExpiredInvitations is housekeeping; accepted invitations are kept.
	DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error)
}

// Items is the reference tenant-scoped resource. Every method takes the
// tenant id and never reads across tenants.
type Items interface {
	CreateItem(ctx context.Context, it domain.Item) error
	GetItem(ctx context.Context, tenantID, itemID string) (domain.Item, error)
	ListItems(ctx context.Context, tenantID string, page domain.Page) ([]domain.Item, error)
	UpdateItem(ctx context.Context, tenantID, itemID string, upd domain.ItemUpdate) (domain.Item, error)
	DeleteItem(ctx context.Context, tenantID, itemID string) error
}
