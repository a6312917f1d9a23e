package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.HandleFunc("GET /players", handler.ListPlayers)
	mux.HandleFunc("GET /next_games/{team_name}", handler.NextGames)
}
