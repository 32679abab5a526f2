package embedding

import (
	"github.com/gorilla/mux"

	"github.com/nivkoren/levmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/embeddings").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.EmbedText).Methods("POST")
}
