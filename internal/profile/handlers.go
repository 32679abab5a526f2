package profile

import (
	"encoding/json"
	"net/http"

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

func (h *Handler) ReadProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	user, err := h.service.ReadProfile(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}
	userID := mux.Vars(r)["userId"]

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), callerID, userID, &dto)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]interface{}{"user": user})
}

type storeEmbeddingDTO struct {
	Vector []float64 `json:"vector" validate:"required"`
}

func (h *Handler) StoreEmbedding(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var dto storeEmbeddingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.StoreEmbedding(r.Context(), userID, dto.Vector); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]bool{"ok": true})
}
