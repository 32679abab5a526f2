// internal/dating/dto.go
package dating

// CandidateFilters narrow a candidate query. All fields are optional;
// Limit is clamped to the configured range.
type CandidateFilters struct {
	Gender        string `json:"gender" validate:"omitempty,oneof=male female other"`
	AgeMin        int    `json:"age_min" validate:"omitempty,min=0"`
	AgeMax        int    `json:"age_max" validate:"omitempty,min=0"`
	MaxDistanceKm int    `json:"max_distance_km" validate:"omitempty,min=0"`
	Limit         int    `json:"limit" validate:"omitempty,min=0"`
}

// CreateMatchDTO is the payload for match creation.
type CreateMatchDTO struct {
	UserA string   `json:"userA" validate:"required"`
	UserB string   `json:"userB" validate:"required"`
	Score *float64 `json:"score,omitempty" validate:"omitempty,min=0,max=1"`
}

// CloseMatchDTO is the payload for closing a match.
type CloseMatchDTO struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
