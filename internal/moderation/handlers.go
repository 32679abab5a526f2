package moderation

import (
	"encoding/json"
	"net/http"

	"github.com/nivkoren/levmatch-backend/internal/common/utils"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

type checkTextDTO struct {
	Text string `json:"text" validate:"required"`
}

func (h *Handler) CheckText(w http.ResponseWriter, r *http.Request) {
	var dto checkTextDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, h.engine.Check(dto.Text))
}
