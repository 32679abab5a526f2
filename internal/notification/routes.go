package notification

import (
	"github.com/gorilla/mux"

	"github.com/nivkoren/levmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/notifications").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/push", handler.SendPush).Methods("POST")
	api.HandleFunc("/tokens", handler.RegisterToken).Methods("POST")
}
