package authsdk

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the stable machine readable error code (e.g. "invalid_credentials")
	Error string `json:"error" example:"invalid_credentials"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description" example:"invalid email or password"`

	// Details contains field-specific validation errors (field name: error message)
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse is returned by endpoints that have nothing else to say.
type MessageResponse struct {
	Message string `json:"message" example:"logged out"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is the credential pair handed out by every authentication flow.
type TokenResponse struct {
	// AccessToken is the short lived JWT sent as a bearer token
	AccessToken string `json:"accessToken"`

	// RefreshToken is the long lived JWT exchanged at /v1/auth/refresh
	RefreshToken string `json:"refreshToken"`

	// TokenType is always "Bearer"
	TokenType string `json:"tokenType" example:"Bearer"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expiresIn" example:"900"`

	// TenantID is the tenant both tokens act as
	TenantID string `json:"tenantId"`
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest creates a new user. Without TenantID a personal workspace
// is created and the user becomes its OWNER; with TenantID the user joins that
// tenant as MEMBER.
type RegisterRequest struct {
	Email     string `json:"email" example:"ada@example.com"`
	Password  string `json:"password" example:"Sup3r-secret"`
	FirstName string `json:"firstName,omitempty" example:"Ada"`
	LastName  string `json:"lastName,omitempty" example:"Lovelace"`
	TenantID  string `json:"tenantId,omitempty"`
}

// Validate checks the request at the API boundary. It returns nil when the
// request is acceptable, or a map of field name to reason.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmailField(errs, "email", r.Email)
	validatePasswordField(errs, "password", r.Password)
	validateNameField(errs, "firstName", r.FirstName)
	validateNameField(errs, "lastName", r.LastName)
	return nilIfEmpty(errs)
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"Sup3r-secret"`
}

// Validate only checks presence; a wrong password is an authentication
// failure, not a validation one.
func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Email == "" {
		errs["email"] = requiredReason
	}
	if r.Password == "" {
		errs["password"] = requiredReason
	}
	return nilIfEmpty(errs)
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest revokes a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SwitchTenantRequest re-issues tokens for another tenant the caller belongs to.
type SwitchTenantRequest struct {
	TenantID string `json:"tenantId"`
}

// AuthResponse is returned by register and invitation acceptance.
type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tenant TenantResponse `json:"tenant"`
	Role   string         `json:"role" example:"OWNER"`
	Tokens TokenResponse  `json:"tokens"`
}

// SwitchTenantResponse is returned by switch-tenant.
type SwitchTenantResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Role   string         `json:"role" example:"ADMIN"`
	Tokens TokenResponse  `json:"tokens"`
}

// LogoutAllResponse reports how many refresh tokens were revoked.
type LogoutAllResponse struct {
	Revoked int64 `json:"revoked" example:"3"`
}

// ============================================================================
// User Types
// ============================================================================

// UserResponse is a user's public profile. The password hash never leaves
// the service.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	CreatedAt string `json:"createdAt"` // RFC3339
	UpdatedAt string `json:"updatedAt"` // RFC3339
}

// MeResponse is the caller's profile plus the tenant the token acts as.
type MeResponse struct {
	User   UserResponse   `json:"user"`
	Tenant TenantResponse `json:"tenant"`
	Role   string         `json:"role"`
}

// UpdateProfileRequest is a partial update; nil fields are left alone.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// Validate checks name lengths and that at least one field is set.
func (r UpdateProfileRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.FirstName == nil && r.LastName == nil {
		errs["body"] = "at least one field required"
	}
	if r.FirstName != nil {
		validateNameField(errs, "firstName", *r.FirstName)
	}
	if r.LastName != nil {
		validateNameField(errs, "lastName", *r.LastName)
	}
	return nilIfEmpty(errs)
}

// ChangePasswordRequest replaces the caller's password. Every refresh token
// of the user is revoked on success.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate applies the password policy to NewPassword.
func (r ChangePasswordRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.CurrentPassword == "" {
		errs["currentPassword"] = requiredReason
	}
	validatePasswordField(errs, "newPassword", r.NewPassword)
	return nilIfEmpty(errs)
}

// ============================================================================
// Tenant Types
// ============================================================================

// TenantResponse describes a tenant.
type TenantResponse struct {
	ID        string `json:"id"`
	Slug      string `json:"slug" example:"ada-3f9c1b2e"`
	Name      string `json:"name" example:"Ada's Workspace"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// TenantMembershipResponse is a tenant as seen by one of its members.
type TenantMembershipResponse struct {
	Tenant   TenantResponse `json:"tenant"`
	Role     string         `json:"role"`
	JoinedAt string         `json:"joinedAt"`
}

// ListTenantsResponse lists the caller's tenants, oldest membership first.
type ListTenantsResponse struct {
	Tenants []TenantMembershipResponse `json:"tenants"`
}

// CreateTenantRequest creates a tenant owned by the caller.
type CreateTenantRequest struct {
	Name string `json:"name" example:"Acme"`
}

// Validate checks the tenant name.
func (r CreateTenantRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateTenantName(errs, "name", r.Name)
	return nilIfEmpty(errs)
}

// UpdateTenantRequest renames the active tenant.
type UpdateTenantRequest struct {
	Name *string `json:"name,omitempty"`
}

// Validate checks the tenant name when present.
func (r UpdateTenantRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Name == nil {
		errs["name"] = requiredReason
	} else {
		validateTenantName(errs, "name", *r.Name)
	}
	return nilIfEmpty(errs)
}

// MemberResponse is a member of the active tenant.
type MemberResponse struct {
	User     UserResponse `json:"user"`
	Role     string       `json:"role"`
	JoinedAt string       `json:"joinedAt"`
}

// ListMembersResponse is one page of members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// UpdateMemberRoleRequest changes a member's role to ADMIN or MEMBER.
type UpdateMemberRoleRequest struct {
	Role string `json:"role" example:"ADMIN"`
}

// Validate rejects anything but an assignable role.
func (r UpdateMemberRoleRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateAssignableRole(errs, "role", r.Role)
	return nilIfEmpty(errs)
}

// ============================================================================
// Invitation Types
// ============================================================================

// CreateInvitationRequest invites an email address into the active tenant.
type CreateInvitationRequest struct {
	Email string `json:"email" example:"grace@example.com"`
	Role  string `json:"role" example:"MEMBER"`
}

// Validate checks the email and role.
func (r CreateInvitationRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmailField(errs, "email", r.Email)
	validateAssignableRole(errs, "role", r.Role)
	return nilIfEmpty(errs)
}

// InvitationResponse describes an invitation. Token is only set in the
// response to the create call and is never retrievable again.
type InvitationResponse struct {
	ID        string `json:"id"`
	TenantID  string `json:"tenantId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	InvitedBy string `json:"invitedBy"`
	ExpiresAt string `json:"expiresAt"`
	CreatedAt string `json:"createdAt"`
	Token     string `json:"token,omitempty"`
}

// ListInvitationsResponse lists pending invitations of the active tenant.
type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// AcceptInvitationRequest redeems an invitation. Password is required only
// when no account exists yet for the invited email.
type AcceptInvitationRequest struct {
	Token     string `json:"token"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Validate checks presence of the token and, when given, the password policy.
func (r AcceptInvitationRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Token == "" {
		errs["token"] = requiredReason
	}
	if r.Password != "" {
		validatePasswordField(errs, "password", r.Password)
	}
	validateNameField(errs, "firstName", r.FirstName)
	validateNameField(errs, "lastName", r.LastName)
	return nilIfEmpty(errs)
}

// ============================================================================
// Item Types
// ============================================================================

// ItemResponse is an item of the active tenant.
type ItemResponse struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ListItemsResponse is one page of items.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// CreateItemRequest creates an item in the active tenant.
type CreateItemRequest struct {
	Name        string `json:"name" example:"Quarterly report"`
	Description string `json:"description,omitempty"`
}

// Validate checks name and description lengths.
func (r CreateItemRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateItemName(errs, "name", r.Name)
	validateDescription(errs, "description", r.Description)
	return nilIfEmpty(errs)
}

// UpdateItemRequest is a partial item update.
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks present fields and that at least one is set.
func (r UpdateItemRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Name == nil && r.Description == nil {
		errs["body"] = "at least one field required"
	}
	if r.Name != nil {
		validateItemName(errs, "name", *r.Name)
	}
	if r.Description != nil {
		validateDescription(errs, "description", *r.Description)
	}
	return nilIfEmpty(errs)
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
