// internal/notification/service.go
package notification

import (
	"context"
	"fmt"

	"github.com/nivkoren/levmatch-backend/internal/common/apperrors"
	"github.com/nivkoren/levmatch-backend/internal/events"
)

const newMessageTitle = "הודעה חדשה"

// Service routes notifications to user devices.
type Service interface {
	NotifyUser(ctx context.Context, userID, title, body string, data map[string]interface{}) error
	SendToToken(ctx context.Context, token, title, body string, data map[string]interface{}) error
	RegisterToken(ctx context.Context, userID, token, platform string) error
	HandleMessageCreated(ctx context.Context, ev events.MessageCreated) error
}

type service struct {
	repo   Repository
	sender PushSender
}

func NewService(repo Repository, sender PushSender) Service {
	return &service{repo: repo, sender: sender}
}

// NotifyUser fans a notification out to every registered device of the
// user. A user with no registered tokens is a silent no-op.
func (s *service) NotifyUser(ctx context.Context, userID, title, body string, data map[string]interface{}) error {
	tokens, err := s.repo.ListTokens(ctx, userID)
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to load push tokens", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	return s.sender.SendPush(ctx, &PushNotification{
		Tokens: tokens,
		Title:  title,
		Body:   body,
		Data:   coerceData(data),
	})
}

// SendToToken targets a single device directly.
func (s *service) SendToToken(ctx context.Context, token, title, body string, data map[string]interface{}) error {
	if token == "" {
		return apperrors.New(apperrors.InvalidArgument, "token is required")
	}

	return s.sender.SendPush(ctx, &PushNotification{
		Tokens: []string{token},
		Title:  title,
		Body:   body,
		Data:   coerceData(data),
	})
}

func (s *service) RegisterToken(ctx context.Context, userID, token, platform string) error {
	if token == "" {
		return apperrors.New(apperrors.InvalidArgument, "token is required")
	}
	if err := s.repo.SaveToken(ctx, userID, token, platform); err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to save push token", err)
	}
	return nil
}

// HandleMessageCreated notifies the recipient of a freshly stored
// message. Delivery failures propagate to the bus, which logs them;
// they are never surfaced to the sender.
func (s *service) HandleMessageCreated(ctx context.Context, ev events.MessageCreated) error {
	err := s.NotifyUser(ctx, ev.Recipient, newMessageTitle, ev.Preview, map[string]interface{}{
		"matchId":   ev.MatchID,
		"messageId": ev.MessageID,
		"from":      ev.From,
	})
	if err != nil {
		return fmt.Errorf("push new-message notification for match %s: %w", ev.MatchID, err)
	}
	return nil
}

// coerceData flattens arbitrary payload values into the string map FCM
// requires.
func coerceData(data map[string]interface{}) map[string]string {
	if len(data) == 0 {
		return nil
	}
	out := make(map[string]string, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case string:
			out[key] = v
		default:
			out[key] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
