package embedding

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nivkoren/levmatch-backend/internal/common/utils"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type embedTextDTO struct {
	Text string `json:"text"`
}

type embedTextResponse struct {
	Vector []float64 `json:"vector"`
}

func (h *Handler) EmbedText(w http.ResponseWriter, r *http.Request) {
	var dto embedTextDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	vector, err := EmbedText(dto.Text)
	if err != nil {
		if errors.Is(err, ErrTextTooShort) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to embed text")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, embedTextResponse{Vector: vector})
}
