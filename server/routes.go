package server

func (s *Server) initRoutes() {
	// Auth routes exist at the bare path and inside each tenant's namespace,
	// so both https://poster.../login and https://poster.../edit/login work.
	// The host router never rewrites any of these.
	authPrefixes := []string{""}
	for _, t := range s.registry.All() {
		authPrefixes = append(authPrefixes, t.PathPrefix)
	}

	for _, prefix := range authPrefixes {
		s.RegisterRouteHandler("GET "+prefix+RouteLogin,
			ChainMiddleware(s.LoginHandler(), s.AuthMiddleware()...))
		s.RegisterRouteHandler("GET "+prefix+RouteCallback,
			ChainMiddleware(s.CallbackHandler(), s.AuthMiddleware()...))
		s.RegisterRouteHandler("GET "+prefix+RouteLogout,
			ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))
	}

	s.RegisterRouteHandler("GET "+RouteAccessDenied,
		ChainMiddleware(s.AccessDeniedHandler(), s.HTMLMiddleware()...))

	// Everything else is the applications themselves: static SPA delivery,
	// reached after the host router has rewritten the path into the tenant
	// namespace.
	s.RegisterRouteHandler("GET /",
		ChainMiddleware(s.AppHandler(), s.HTMLMiddleware()...))
}
