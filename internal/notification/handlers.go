package notification

import (
	"encoding/json"
	"net/http"

	"github.com/nivkoren/levmatch-backend/internal/auth"
	"github.com/nivkoren/levmatch-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SendPush(w http.ResponseWriter, r *http.Request) {
	var dto SendPushDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var err error
	switch {
	case dto.Token != "":
		err = h.service.SendToToken(r.Context(), dto.Token, dto.Title, dto.Body, dto.Data)
	case dto.UserID != "":
		err = h.service.NotifyUser(r.Context(), dto.UserID, dto.Title, dto.Body, dto.Data)
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "either userId or token is required")
		return
	}
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	var dto RegisterTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.RegisterToken(r.Context(), callerID, dto.Token, dto.Platform); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusCreated, map[string]bool{"ok": true})
}
