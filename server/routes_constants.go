package server

// Route path constants
// All gateway routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin        = "/login"
	RouteCallback     = "/auth/callback"
	RouteLogout       = "/auth/logout"
	RouteAccessDenied = "/access-denied"
)
