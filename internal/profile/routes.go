package profile

import (
	"github.com/gorilla/mux"

	"github.com/nivkoren/levmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/profiles").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/{userId}", handler.ReadProfile).Methods("GET")
	api.HandleFunc("/{userId}", handler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/{userId}/embedding", handler.StoreEmbedding).Methods("PUT")
}
