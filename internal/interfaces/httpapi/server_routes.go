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

func registerMarketRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/market", handler.ListMarket)
	mux.HandleFunc("GET /v1/market/status", handler.GetMarketStatus)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me/team", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))
	mux.Handle("POST /v1/me/team/init", RequireAuth(verifier, http.HandlerFunc(handler.InitMyTeam)))
	mux.Handle("POST /v1/me/team/add", RequireAuth(verifier, http.HandlerFunc(handler.AddPlayer)))
	mux.Handle("POST /v1/me/team/remove", RequireAuth(verifier, http.HandlerFunc(handler.RemovePlayer)))
	mux.Handle("POST /v1/me/team/undo-remove", RequireAuth(verifier, http.HandlerFunc(handler.UndoRemove)))
	mux.Handle("POST /v1/me/team/reset", RequireAuth(verifier, http.HandlerFunc(handler.ResetMyTeam)))
	mux.Handle("POST /v1/me/captain", RequireAuth(verifier, http.HandlerFunc(handler.SetCaptain)))
}
