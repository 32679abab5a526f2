// internal/messaging/service.go

package messaging

import (
	"context"
	"errors"

	"github.com/nivkoren/levmatch-backend/internal/common/apperrors"
	"github.com/nivkoren/levmatch-backend/internal/dating"
	"github.com/nivkoren/levmatch-backend/internal/events"
	"github.com/nivkoren/levmatch-backend/internal/moderation"
)

const previewLength = 80

type Service interface {
	StoreMessage(ctx context.Context, callerID string, dto *StoreMessageDTO) (*Message, error)
	ListMessages(ctx context.Context, callerID, matchID string, limit int) ([]*Message, error)
}

type service struct {
	repo      Repository
	moderator *moderation.Engine
	bus       *events.Bus
	maxLength int
}

func NewService(repo Repository, moderator *moderation.Engine, bus *events.Bus, maxLength int) Service {
	return &service{
		repo:      repo,
		moderator: moderator,
		bus:       bus,
		maxLength: maxLength,
	}
}

// StoreMessage runs the ingestion pipeline. Preconditions are checked in a
// fixed order, each with a distinct failure kind, and nothing is written
// until every check passes. Once the write commits, notification dispatch is
// a best-effort side effect carried by the event bus.
func (s *service) StoreMessage(ctx context.Context, callerID string, dto *StoreMessageDTO) (*Message, error) {
	// 1. All fields present
	if dto == nil || dto.MatchID == "" || dto.From == "" || dto.Text == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "match id, sender and text are all required")
	}

	// 2. Callers can only send as themselves
	if callerID != dto.From {
		return nil, apperrors.New(apperrors.PermissionDenied, "messages can only be sent as the authenticated user")
	}

	// 3. Length cap
	if len([]rune(dto.Text)) > s.maxLength {
		return nil, apperrors.New(apperrors.InvalidArgument, "message is too long")
	}

	// 4. Moderation. Rejected messages are never persisted; their decision
	// is not stored either.
	decision := s.moderator.Check(dto.Text)
	if !decision.Allowed {
		RecordMessage("rejected")
		return nil, apperrors.New(apperrors.FailedPrecondition, "message was blocked by the safety engine")
	}

	// 5. Match exists
	match, err := s.repo.GetMatch(ctx, dto.MatchID)
	if err != nil {
		if errors.Is(err, dating.ErrMatchNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "match not found")
		}
		return nil, err
	}

	// 6. Match is active
	if match.State != dating.MatchActive {
		return nil, apperrors.New(apperrors.FailedPrecondition, "match is not active")
	}

	// 7. Sender is a participant
	if !match.Contains(dto.From) {
		return nil, apperrors.New(apperrors.PermissionDenied, "sender is not part of this match")
	}

	message := &Message{
		MatchID:    dto.MatchID,
		From:       dto.From,
		Text:       dto.Text,
		Status:     StatusSent,
		Moderation: ModerationColumn(decision),
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	RecordMessage("sent")

	s.bus.PublishMessageCreated(ctx, events.MessageCreated{
		MatchID:   message.MatchID,
		MessageID: message.ID,
		From:      message.From,
		Recipient: match.OtherUser(message.From),
		Preview:   preview(message.Text),
	})

	return message, nil
}

// ListMessages returns a match's thread in send order, participants only.
func (s *service) ListMessages(ctx context.Context, callerID, matchID string, limit int) ([]*Message, error) {
	if matchID == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "match id is required")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, dating.ErrMatchNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "match not found")
		}
		return nil, err
	}

	if !match.Contains(callerID) {
		return nil, apperrors.New(apperrors.PermissionDenied, "no access to this match")
	}

	messages, err := s.repo.ListMessages(ctx, matchID, limit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*Message{}
	}
	return messages, nil
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength])
}
