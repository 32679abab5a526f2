package dating

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

func (h *Handler) QueryCandidates(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	filters := &CandidateFilters{
		Gender:        r.URL.Query().Get("gender"),
		AgeMin:        queryInt(r, "age_min"),
		AgeMax:        queryInt(r, "age_max"),
		MaxDistanceKm: queryInt(r, "max_distance_km"),
		Limit:         queryInt(r, "limit"),
	}
	if err := utils.ValidateStruct(filters); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	candidates, err := h.service.QueryCandidates(r.Context(), callerID, filters)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]interface{}{"candidates": candidates})
}

func (h *Handler) ScoreCandidate(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}
	candidateID := mux.Vars(r)["userId"]

	score, err := h.service.ScoreCandidate(r.Context(), callerID, candidateID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]interface{}{"score": score})
}

func (h *Handler) ExtractSharedInterests(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}
	otherID := mux.Vars(r)["userId"]

	shared, err := h.service.ExtractSharedInterests(r.Context(), callerID, otherID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]interface{}{"shared": shared})
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var dto CreateMatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	match, err := h.service.CreateMatch(r.Context(), &dto)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusCreated, map[string]interface{}{
		"matchId": match.ID,
		"state":   match.State,
	})
}

func (h *Handler) GetActiveMatch(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	match, err := h.service.GetActiveMatch(r.Context(), callerID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if match == nil {
		utils.RespondWithData(w, http.StatusOK, map[string]interface{}{
			"matchId": nil,
			"state":   nil,
		})
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]interface{}{
		"matchId": match.ID,
		"state":   match.State,
	})
}

func (h *Handler) CloseMatch(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}
	matchID := mux.Vars(r)["id"]

	var dto CloseMatchDTO
	if r.Body != nil {
		// Body is optional for close
		json.NewDecoder(r.Body).Decode(&dto)
	}

	if err := h.service.CloseMatch(r.Context(), matchID, callerID, dto.Reason); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) ListStarters(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}
	matchID := mux.Vars(r)["id"]

	starters, err := h.service.ListStarters(r.Context(), callerID, matchID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]interface{}{"starters": starters})
}

func queryInt(r *http.Request, key string) int {
	if value := r.URL.Query().Get(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return 0
}
