package moderation

import (
	"github.com/gorilla/mux"

	"github.com/nivkoren/levmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/moderation").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/check", handler.CheckText).Methods("POST")
}
