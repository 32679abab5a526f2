// internal/dating/scorer.go
// Deterministic compatibility scoring

package dating

import (
	"fmt"
	"math"
	"strings"

	"github.com/nivkoren/levmatch-backend/internal/config"
	"github.com/nivkoren/levmatch-backend/internal/embedding"
	"github.com/nivkoren/levmatch-backend/internal/geo"
	"github.com/nivkoren/levmatch-backend/internal/profile"
)

// Scorer combines shared interests, distance and optional embedding
// similarity into a single [0,1] value. Same inputs, same output:
// it performs no I/O and reads no clocks.
type Scorer struct {
	cfg config.ScoringConfig
}

func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the compatibility of candidate for source.
func (s *Scorer) Score(source, candidate *profile.User) Score {
	shared := SharedInterests(source.Interests, candidate.Interests)

	interestBoost := math.Min(float64(len(shared))*s.cfg.InterestWeight, s.cfg.InterestCap)

	distanceKm := s.cfg.FallbackDistanceKm
	if d := geo.Distance(source.Location(), candidate.Location()); d != nil {
		distanceKm = *d
	}
	distanceBoost := math.Max(0, s.cfg.DistanceBase-math.Min(distanceKm, s.cfg.DistanceCeilingKm)/s.cfg.DistanceDivisor)

	embeddingBoost := 0.0
	if len(source.Embedding) > 0 && len(candidate.Embedding) > 0 {
		similarity := embedding.Cosine(source.Embedding, candidate.Embedding)
		embeddingBoost = math.Min(s.cfg.EmbeddingCap, similarity*s.cfg.EmbeddingCap)
	}

	value := math.Min(1, s.cfg.Base+interestBoost+distanceBoost+embeddingBoost)

	return Score{
		Value:   value,
		Reasons: s.reasons(shared, distanceKm),
	}
}

// reasons builds the human-readable explanation lines: an interest line when
// any interests are shared (naming at most MaxSharedInReason of them), else a
// generic line, followed by the distance line.
func (s *Scorer) reasons(shared []string, distanceKm float64) []string {
	reasons := make([]string, 0, 2)

	if len(shared) > 0 {
		named := shared
		if len(named) > s.cfg.MaxSharedInReason {
			named = named[:s.cfg.MaxSharedInReason]
		}
		reasons = append(reasons, fmt.Sprintf("תחומי עניין משותפים (%s)", strings.Join(named, ", ")))
	} else {
		reasons = append(reasons, "התאמה ראשונית")
	}

	reasons = append(reasons, fmt.Sprintf("מרחק משוער %d ק\"מ", int(math.Round(distanceKm))))
	return reasons
}

// SharedInterests intersects two interest lists, preserving the first list's
// order and deduplicating repeats.
func SharedInterests(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, interest := range b {
		inB[interest] = true
	}

	shared := []string{}
	seen := make(map[string]bool, len(a))
	for _, interest := range a {
		if inB[interest] && !seen[interest] {
			shared = append(shared, interest)
			seen[interest] = true
		}
	}
	return shared
}
