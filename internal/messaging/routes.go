package messaging

import (
	"github.com/gorilla/mux"

	"github.com/nivkoren/levmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/messages").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.StoreMessage).Methods("POST")
	api.HandleFunc("/{matchId}", handler.ListMessages).Methods("GET")
}
