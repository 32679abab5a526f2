// internal/messaging/dto.go
package messaging

// StoreMessageDTO is the payload for sending a message.
type StoreMessageDTO struct {
	MatchID string `json:"matchId" validate:"required"`
	From    string `json:"from" validate:"required"`
	Text    string `json:"text" validate:"required"`
}
