package messaging

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nivkoren/levmatch-backend/internal/auth"
	"github.com/nivkoren/levmatch-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) StoreMessage(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	var dto StoreMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	message, err := h.service.StoreMessage(r.Context(), callerID, &dto)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusCreated, map[string]interface{}{
		"messageId": message.ID,
		"status":    message.Status,
	})
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}
	matchID := mux.Vars(r)["matchId"]

	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			limit = n
		}
	}

	messages, err := h.service.ListMessages(r.Context(), callerID, matchID, limit)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
