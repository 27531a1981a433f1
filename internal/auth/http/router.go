package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/tenantry/api/auth" // Swagger docs
	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/internal/auth/store"
	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
	"github.com/aussiebroadwan/tenantry/pkg/httpx"
	"github.com/aussiebroadwan/tenantry/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Access            *service.AccessControl
	AuthService       *service.AuthService
	UserService       *service.UserService
	TenantService     *service.TenantService
	InvitationService *service.InvitationService
	ItemService       *service.ItemService
}

// NewRouter creates a router with the logging and CORS middleware. An empty
// corsOrigins disables CORS.
func NewRouter(buildVersion string, st store.Store, logger *slog.Logger, corsOrigins []string) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
	}

	return r
}

// ApplyRoutes registers every route. The service fields must be set first.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMe()
	r.registerTenants()
	r.registerInvitations()
	r.registerItems()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		authsdk.ErrNotFound.WriteError(w)
	})
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Tenantry Identity and Access API
//	@version					0.1.0
//	@description				Multi-tenant authentication and role based access control. Users register with email and password,
//	@description				belong to tenants with an OWNER, ADMIN or MEMBER role, and act through HS256 access tokens bound to one tenant.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tenantry
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// public registers an unauthenticated route rate limited by client address.
func (r *Router) public(pattern string, h http.HandlerFunc, limit httpx.RateLimitConfig) {
	r.Mux.Handle(pattern, httpx.Chain(h, httpx.RateLimitByIP(limit)))
}

// secured registers a bearer authenticated route. A non-empty op is checked
// against the access policy; the rate limit is keyed by user.
func (r *Router) secured(pattern string, h http.HandlerFunc, op service.Operation, limit httpx.RateLimitConfig) {
	mws := []httpx.Middleware{AuthnMiddleware(r.Access)}
	if op != "" {
		mws = append(mws, RequireOperation(r.Access, op))
	}
	mws = append(mws, httpx.RateLimitByUser(limit))

	r.Mux.Handle(pattern, httpx.Chain(h, mws...))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential guessing endpoints get the strict bucket.
	r.public("POST /v1/auth/register", h.HandleRegister, httpx.StrictLimit)
	r.public("POST /v1/auth/login", h.HandleLogin, httpx.StrictLimit)
	r.public("POST /v1/auth/refresh", h.HandleRefresh, httpx.ModerateLimit)
	r.public("POST /v1/auth/logout", h.HandleLogout, httpx.ModerateLimit)
	r.public("POST /v1/invitations/accept", h.HandleAcceptInvitation, httpx.StrictLimit)

	r.secured("POST /v1/auth/logout-all", h.HandleLogoutAll, "", httpx.ModerateLimit)
	r.secured("POST /v1/auth/switch-tenant", h.HandleSwitchTenant, "", httpx.ModerateLimit)
}

func (r *Router) registerMe() {
	h := &MeHandler{UserService: r.UserService}

	r.secured("GET /v1/me", h.HandleGet, "", httpx.LenientLimit)
	r.secured("PATCH /v1/me", h.HandleUpdate, "", httpx.ModerateLimit)
	r.secured("POST /v1/me/password", h.HandleChangePassword, "", httpx.StrictLimit)
}

func (r *Router) registerTenants() {
	h := &TenantsHandler{TenantService: r.TenantService}

	r.secured("GET /v1/tenants", h.HandleList, "", httpx.LenientLimit)
	r.secured("POST /v1/tenants", h.HandleCreate, "", httpx.ModerateLimit)

	r.secured("GET /v1/tenant", h.HandleGet, service.OpTenantRead, httpx.LenientLimit)
	r.secured("PATCH /v1/tenant", h.HandleUpdate, service.OpTenantUpdate, httpx.ModerateLimit)
	r.secured("DELETE /v1/tenant", h.HandleDelete, service.OpTenantDelete, httpx.ModerateLimit)

	r.secured("GET /v1/tenant/members", h.HandleListMembers, service.OpMemberList, httpx.LenientLimit)
	r.secured("PATCH /v1/tenant/members/{userID}", h.HandleUpdateMemberRole, service.OpMemberUpdateRole, httpx.ModerateLimit)
	r.secured("DELETE /v1/tenant/members/{userID}", h.HandleRemoveMember, service.OpMemberRemove, httpx.ModerateLimit)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	r.secured("POST /v1/invitations", h.HandleCreate, service.OpInvitationCreate, httpx.ModerateLimit)
	r.secured("GET /v1/invitations", h.HandleList, service.OpInvitationList, httpx.LenientLimit)
	r.secured("DELETE /v1/invitations/{id}", h.HandleRevoke, service.OpInvitationRevoke, httpx.ModerateLimit)
}

func (r *Router) registerItems() {
	h := &ItemsHandler{ItemService: r.ItemService}

	r.secured("POST /v1/items", h.HandleCreate, service.OpItemCreate, httpx.ModerateLimit)
	r.secured("GET /v1/items", h.HandleList, service.OpItemList, httpx.LenientLimit)
	r.secured("GET /v1/items/{id}", h.HandleGet, service.OpItemRead, httpx.LenientLimit)
	r.secured("PATCH /v1/items/{id}", h.HandleUpdate, service.OpItemUpdate, httpx.ModerateLimit)
	r.secured("DELETE /v1/items/{id}", h.HandleDelete, service.OpItemDelete, httpx.ModerateLimit)
}

func (r *Router) registerSystem() {
	// Monitoring systems poll frequently.
	r.public("GET /livez", LivezHandler(r.startTime, r.buildVersion), httpx.PublicLimit)
	r.public("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store), httpx.PublicLimit)
}
