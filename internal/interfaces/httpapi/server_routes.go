package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /games", handler.ListGames)
	mux.HandleFunc("GET /current-week", handler.GetCurrentWeek)
	mux.HandleFunc("GET /game-results", handler.GetGameResults)

	mux.HandleFunc("GET /user-saved-picks", handler.GetUserSavedPicks)
	mux.HandleFunc("GET /picks-status", handler.GetPicksStatus)
	mux.HandleFunc("GET /week-for-picking", handler.GetWeekForPicking)
	mux.HandleFunc("POST /save-picks", handler.SavePicks)
	mux.HandleFunc("POST /edit-picks", handler.EditPicks)

	mux.HandleFunc("GET /user-saved-picks-week", handler.GetWeeklyLeaderboard)
	mux.HandleFunc("GET /user-grand-total", handler.GetGrandTotal)

	mux.HandleFunc("POST /login", handler.Login)
	mux.HandleFunc("POST /create-user", handler.CreateUser)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /internal/ingestion/results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestResults)))
	mux.Handle("POST /internal/jobs/sync-odds", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunOddsSyncJob)))
}
