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

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/login", handler.Login)

	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/overdue", handler.ListOverduePlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/teams", handler.ListTeamsForPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/attendances", handler.ListAttendancesForPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/profile", handler.GetPlayerProfile)
	mux.HandleFunc("GET /v1/player-documents/{document}", handler.GetPlayerByDocument)

	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/candidates", handler.ListTeamCandidates)
	mux.HandleFunc("GET /v1/teams/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)

	mux.HandleFunc("GET /v1/attendances", handler.ListAttendances)
	mux.HandleFunc("GET /v1/attendances/day/{date}", handler.GetAttendanceSheet)

	mux.HandleFunc("GET /v1/club-settings", handler.GetClubSettings)
	mux.HandleFunc("GET /v1/coaches", handler.ListCoaches)
	mux.HandleFunc("GET /v1/dashboard", handler.GetDashboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedPlayerRoutes(mux, handler, verifier)
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedAttendanceRoutes(mux, handler, verifier)
	registerAuthorizedClubRoutes(mux, handler, verifier)
}

func registerAuthorizedPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePlayer)))
	mux.Handle("POST /v1/players/{playerID}/payment", RequireAuth(verifier, http.HandlerFunc(handler.RecordPayment)))
	mux.Handle("POST /v1/players/{playerID}/stats", RequireAuth(verifier, http.HandlerFunc(handler.AddStatsRecord)))
	mux.Handle("POST /v1/players/{playerID}/expel", RequireAuth(verifier, http.HandlerFunc(handler.ExpelPlayer)))
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("PUT /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTeam)))
}

func registerAuthorizedAttendanceRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/attendances", RequireAuth(verifier, http.HandlerFunc(handler.RecordAttendance)))
	mux.Handle("POST /v1/attendances/batch", RequireAuth(verifier, http.HandlerFunc(handler.RecordAttendanceBatch)))
}

func registerAuthorizedClubRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/club-settings", RequireAuth(verifier, http.HandlerFunc(handler.UpdateClubSettings)))
	mux.Handle("POST /v1/coaches", RequireAuth(verifier, http.HandlerFunc(handler.CreateCoach)))
}
