package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public pages
	RouteLogin    = "/login"
	RouteRegister = "/register"

	// Auth API (ungated so a broken token can never lock a user out of
	// logging back in)
	RouteAuthLogin    = "/api/auth/login"
	RouteAuthRegister = "/api/auth/register"
	RouteAuthLogout   = "/api/auth/logout"
	RouteAuthRefresh  = "/api/auth/refresh"
	RouteAuthMe       = "/api/auth/me"

	// Dashboard area (role-restricted sub-paths live under here)
	RouteDashboard = "/dashboard"

	// Resource APIs
	RouteEquipment       = "/api/equipment"
	RouteAppointments    = "/api/appointments"
	RouteMembers         = "/api/members"
	RouteTrainers        = "/api/trainers"
	RoutePrincipalStatus = "/api/principals/{role}/{id}/status"

	// Infrastructure
	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"
	RouteStatic  = "/static"
)

// Denial reason codes attached to login redirects, for client messaging only.
const (
	ReasonSessionExpired = "session_expired"
	ReasonInvalidToken   = "invalid_token"
)
