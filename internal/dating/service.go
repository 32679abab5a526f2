// internal/dating/service.go

package dating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nivkoren/levmatch-backend/internal/common/apperrors"
	"github.com/nivkoren/levmatch-backend/internal/config"
	"github.com/nivkoren/levmatch-backend/internal/events"
	"github.com/nivkoren/levmatch-backend/internal/geo"
	"github.com/nivkoren/levmatch-backend/internal/profile"
)

type Service interface {
	// Candidates & scoring
	QueryCandidates(ctx context.Context, userID string, filters *CandidateFilters) ([]*CandidateSummary, error)
	ScoreCandidate(ctx context.Context, sourceID, candidateID string) (*Score, error)
	ExtractSharedInterests(ctx context.Context, userA, userB string) ([]string, error)

	// Match lifecycle
	CreateMatch(ctx context.Context, dto *CreateMatchDTO) (*Match, error)
	GetActiveMatch(ctx context.Context, userID string) (*Match, error)
	CloseMatch(ctx context.Context, matchID, callerID, reason string) error

	// Starters
	ListStarters(ctx context.Context, callerID, matchID string) ([]*Starter, error)
	GenerateStarters(ctx context.Context, ev events.MatchCreated) error
}

type service struct {
	repo   Repository
	scorer *Scorer
	bus    *events.Bus
	cache  *redis.Client // optional, nil when redis is not configured
	cfg    *config.Config
	now    func() time.Time
}

func NewService(repo Repository, scorer *Scorer, bus *events.Bus, cache *redis.Client, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		scorer: scorer,
		bus:    bus,
		cache:  cache,
		cfg:    cfg,
		now:    time.Now,
	}
}

// QueryCandidates loads the bounded candidate pool and applies filters.
// Ordering is deliberate and load-bearing: status/gender/age filters first,
// then truncation to the limit, then summary mapping, and the distance filter
// last. A tight distance filter can therefore return fewer than limit results
// even when more would qualify deeper in the pool. That is intentional
// behavior, not an accident.
func (s *service) QueryCandidates(ctx context.Context, userID string, filters *CandidateFilters) ([]*CandidateSummary, error) {
	if userID == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "user id is required")
	}
	if filters == nil {
		filters = &CandidateFilters{}
	}

	limit := filters.Limit
	if limit == 0 {
		limit = s.cfg.CandidateLimitDefault
	}
	if limit < s.cfg.CandidateLimitMin {
		limit = s.cfg.CandidateLimitMin
	}
	if limit > s.cfg.CandidateLimitMax {
		limit = s.cfg.CandidateLimitMax
	}

	requester, err := s.repo.GetUser(ctx, userID)
	if err != nil && !errors.Is(err, profile.ErrUserNotFound) {
		return nil, err
	}

	pool, err := s.repo.ListCandidatePool(ctx, s.cfg.CandidatePoolSize)
	if err != nil {
		return nil, err
	}

	now := s.now()
	filtered := make([]*profile.User, 0, limit)
	for _, candidate := range pool {
		if candidate.ID == userID {
			continue
		}
		if candidate.Suspended || !candidate.Active {
			continue
		}
		if filters.Gender != "" && candidate.Gender != "" && candidate.Gender != filters.Gender {
			continue
		}
		age := candidate.Age(now)
		if filters.AgeMin > 0 && age < filters.AgeMin {
			continue
		}
		if filters.AgeMax > 0 && age > filters.AgeMax {
			continue
		}
		filtered = append(filtered, candidate)
		if len(filtered) == limit {
			break
		}
	}

	var requesterLocation *geo.Point
	if requester != nil {
		requesterLocation = requester.Location()
	}

	summaries := make([]*CandidateSummary, 0, len(filtered))
	for _, candidate := range filtered {
		summary := &CandidateSummary{
			UserID:     candidate.ID,
			Name:       candidate.Name,
			Age:        candidate.Age(now),
			City:       candidate.City,
			DistanceKm: geo.Distance(requesterLocation, candidate.Location()),
			Interests:  candidate.Interests,
			Photos:     photoURLs(candidate.Photos),
		}
		if summary.Interests == nil {
			summary.Interests = []string{}
		}
		if filters.MaxDistanceKm > 0 && summary.DistanceKm != nil && *summary.DistanceKm > float64(filters.MaxDistanceKm) {
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// ScoreCandidate loads both users and runs the deterministic scorer. Results
// are cached briefly in redis when available; staleness within the TTL is
// acceptable because the scorer is pure over profile data.
func (s *service) ScoreCandidate(ctx context.Context, sourceID, candidateID string) (*Score, error) {
	if sourceID == "" || candidateID == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "both user ids are required")
	}

	cacheKey := scoreCacheKey(sourceID, candidateID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var score Score
			if json.Unmarshal(cached, &score) == nil {
				return &score, nil
			}
		}
	}

	source, err := s.getUser(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.getUser(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	score := s.scorer.Score(source, candidate)
	RecordCompatibilityScore(score.Value)

	if s.cache != nil {
		if payload, err := json.Marshal(score); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cfg.ScoreCacheTTL).Err(); err != nil {
				log.Printf("failed to cache score %s: %v", cacheKey, err)
			}
		}
	}

	return &score, nil
}

// ExtractSharedInterests returns the plain intersection of two users'
// interest lists. This is the starter generator's input, not the scorer's
// weighted computation.
func (s *service) ExtractSharedInterests(ctx context.Context, userA, userB string) ([]string, error) {
	if userA == "" || userB == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "both user ids are required")
	}

	a, err := s.getUser(ctx, userA)
	if err != nil {
		return nil, err
	}
	b, err := s.getUser(ctx, userB)
	if err != nil {
		return nil, err
	}

	return SharedInterests(a.Interests, b.Interests), nil
}

// CreateMatch creates an active match between two users, enforcing the
// single-active-match invariant transactionally in the repository. On success
// a match-created event fires for the starter generator.
func (s *service) CreateMatch(ctx context.Context, dto *CreateMatchDTO) (*Match, error) {
	if dto == nil || dto.UserA == "" || dto.UserB == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "two user ids are required to create a match")
	}
	if dto.UserA == dto.UserB {
		return nil, apperrors.New(apperrors.InvalidArgument, "cannot match a user with themselves")
	}

	match := &Match{
		UserA:    dto.UserA,
		UserB:    dto.UserB,
		State:    MatchActive,
		OpenedBy: dto.UserA,
		Score:    dto.Score,
	}

	err := s.repo.CreateMatch(ctx, match)
	if err != nil {
		if errors.Is(err, ErrActiveMatchExists) {
			return nil, apperrors.New(apperrors.FailedPrecondition, "a participant already has an active match")
		}
		if errors.Is(err, profile.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "profile not found")
		}
		return nil, err
	}

	RecordMatch()

	s.bus.PublishMatchCreated(ctx, events.MatchCreated{
		MatchID: match.ID,
		UserA:   match.UserA,
		UserB:   match.UserB,
	})

	return match, nil
}

func (s *service) GetActiveMatch(ctx context.Context, userID string) (*Match, error) {
	if userID == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "user id is required")
	}
	return s.repo.GetActiveMatchFor(ctx, userID)
}

// CloseMatch transitions a match to closed. Closing an already-closed match
// is idempotent: the terminal state is simply re-written.
func (s *service) CloseMatch(ctx context.Context, matchID, callerID, reason string) error {
	if matchID == "" {
		return apperrors.New(apperrors.InvalidArgument, "match id is required")
	}

	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return apperrors.New(apperrors.NotFound, "match not found")
		}
		return err
	}

	if !match.Contains(callerID) {
		return apperrors.New(apperrors.PermissionDenied, "no access to this match")
	}

	match.State = MatchClosed
	match.ClosedBy = &callerID
	if reason != "" {
		match.CloseReason = &reason
	}

	if err := s.repo.CloseMatch(ctx, match); err != nil {
		return err
	}

	RecordMatchClosed()
	return nil
}

func (s *service) ListStarters(ctx context.Context, callerID, matchID string) ([]*Starter, error) {
	if matchID == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "match id is required")
	}

	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "match not found")
		}
		return nil, err
	}

	if !match.Contains(callerID) {
		return nil, apperrors.New(apperrors.PermissionDenied, "no access to this match")
	}

	starters, err := s.repo.ListStarters(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if starters == nil {
		starters = []*Starter{}
	}
	return starters, nil
}

func (s *service) getUser(ctx context.Context, userID string) (*profile.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "profile not found")
		}
		return nil, err
	}
	return user, nil
}

// scoreCacheKey keeps the direction: the reasons line orders shared
// interests by the source's list.
func scoreCacheKey(sourceID, candidateID string) string {
	return fmt.Sprintf("compat:%s:%s", sourceID, candidateID)
}

func photoURLs(photos []profile.Photo) []string {
	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		if strings.TrimSpace(photo.URL) != "" {
			urls = append(urls, photo.URL)
		}
	}
	return urls
}
