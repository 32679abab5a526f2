package dating

import (
	"github.com/gorilla/mux"

	"github.com/nivkoren/levmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/dating").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Candidates & scoring
	api.HandleFunc("/candidates", handler.QueryCandidates).Methods("GET")
	api.HandleFunc("/compatibility/{userId}", handler.ScoreCandidate).Methods("GET")
	api.HandleFunc("/shared-interests/{userId}", handler.ExtractSharedInterests).Methods("GET")

	// Matches
	api.HandleFunc("/matches", handler.CreateMatch).Methods("POST")
	api.HandleFunc("/matches/active", handler.GetActiveMatch).Methods("GET")
	api.HandleFunc("/matches/{id}/close", handler.CloseMatch).Methods("POST")
	api.HandleFunc("/matches/{id}/starters", handler.ListStarters).Methods("GET")
}
