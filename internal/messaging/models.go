// internal/messaging/models.go

package messaging

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nivkoren/levmatch-backend/internal/moderation"
)

// MessageStatus is the delivery state of a message. This service only ever
// writes StatusSent; delivered/read transitions belong to the client sync
// layer.
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

// Message is one chat message, scoped under its owning match. Created once,
// immutable thereafter.
type Message struct {
	ID         string           `json:"id" db:"id"`
	MatchID    string           `json:"match_id" db:"match_id"`
	From       string           `json:"from" db:"from_user"`
	Text       string           `json:"text" db:"text"`
	Status     MessageStatus    `json:"status" db:"status"`
	Moderation ModerationColumn `json:"moderation" db:"moderation"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
}

// ModerationColumn stores the passing moderation decision as JSONB, kept
// alongside the message for audit.
type ModerationColumn moderation.Decision

func (m ModerationColumn) Value() (driver.Value, error) {
	return json.Marshal(moderation.Decision(m))
}

func (m *ModerationColumn) Scan(src interface{}) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, (*moderation.Decision)(m))
	case string:
		return json.Unmarshal([]byte(data), (*moderation.Decision)(m))
	default:
		return fmt.Errorf("unsupported scan source %T", src)
	}
}
