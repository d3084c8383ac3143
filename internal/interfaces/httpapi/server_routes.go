package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/teams", handler.ListTeamsAPI)
	mux.HandleFunc("GET /api/teams/{teamID}", handler.GetTeamAPI)
	mux.HandleFunc("GET /api/matches", handler.ListMatchesAPI)
}

func registerPublicPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.IndexPage)
	mux.HandleFunc("GET /fixture", handler.FixturePage)
	mux.HandleFunc("GET /teams", handler.TeamsPage)
	mux.HandleFunc("GET /teams/{teamID}", handler.TeamPage)
	mux.HandleFunc("GET /login", handler.LoginPage)
	mux.HandleFunc("POST /login", handler.LoginSubmit)
	mux.HandleFunc("POST /logout", handler.LogoutSubmit)
}

func registerAdminAPIRoutes(mux *http.ServeMux, handler *Handler, auth SessionAuthenticator) {
	mux.HandleFunc("POST /api/admin/login", handler.LoginAPI)
	mux.HandleFunc("POST /api/admin/logout", handler.LogoutAPI)

	mux.Handle("GET /api/admin/dashboard", RequireAdminAPI(auth, http.HandlerFunc(handler.GetDashboard)))
	mux.Handle("POST /api/admin/teams", RequireAdminAPI(auth, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("PUT /api/admin/teams/{teamID}", RequireAdminAPI(auth, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("PUT /api/admin/teams/{teamID}/leader", RequireAdminAPI(auth, http.HandlerFunc(handler.AssignLeader)))
	mux.Handle("GET /api/admin/players", RequireAdminAPI(auth, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("POST /api/admin/players", RequireAdminAPI(auth, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /api/admin/players/{playerID}", RequireAdminAPI(auth, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("POST /api/admin/matches", RequireAdminAPI(auth, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /api/admin/matches/{matchID}/start", RequireAdminAPI(auth, http.HandlerFunc(handler.StartMatch)))
	mux.Handle("POST /api/admin/matches/{matchID}/result", RequireAdminAPI(auth, http.HandlerFunc(handler.RecordResult)))
	mux.Handle("POST /api/admin/fixture", RequireAdminAPI(auth, http.HandlerFunc(handler.GenerateFixture)))
}

func registerAdminPageRoutes(mux *http.ServeMux, handler *Handler, auth SessionAuthenticator) {
	mux.Handle("GET /admin", RequireAdminPage(auth, http.HandlerFunc(handler.AdminDashboardPage)))
	mux.Handle("POST /admin/teams", RequireAdminPage(auth, http.HandlerFunc(handler.AdminCreateTeam)))
	mux.Handle("POST /admin/teams/{teamID}/leader", RequireAdminPage(auth, http.HandlerFunc(handler.AdminAssignLeader)))
	mux.Handle("POST /admin/players", RequireAdminPage(auth, http.HandlerFunc(handler.AdminCreatePlayer)))
	mux.Handle("POST /admin/matches", RequireAdminPage(auth, http.HandlerFunc(handler.AdminCreateMatch)))
	mux.Handle("POST /admin/matches/{matchID}/start", RequireAdminPage(auth, http.HandlerFunc(handler.AdminStartMatch)))
	mux.Handle("POST /admin/matches/{matchID}/result", RequireAdminPage(auth, http.HandlerFunc(handler.AdminRecordResult)))
	mux.Handle("POST /admin/fixture", RequireAdminPage(auth, http.HandlerFunc(handler.AdminGenerateFixture)))
}
