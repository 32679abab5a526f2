// internal/dating/starters.go
// Conversation starter generation, triggered once per new match

package dating

import (
	"context"
	"fmt"
	"log"

	"github.com/nivkoren/levmatch-backend/internal/events"
)

// genericStarters are used when the two users share no interests.
var genericStarters = []string{
	"שלום! נשמח לשמוע מה הבילוי המושלם בעינייך? 😊",
	"מה הדבר שהכי מרגש אותך בלהכיר מישהו חדש?",
	"אם היינו בוחרים פעילות ראשונה יחד, מה היית מציעה?",
}

// interestStarterTemplates are formatted around the first shared interest.
var interestStarterTemplates = []string{
	"שמתי לב שגם אתם אוהבים %s. מה הכי כיף בזה בשבילכם?",
	"אם היינו מתכננים מפגש סביב %s, איך הוא היה נראה?",
	"איזה זיכרון מגניב יש לכם שקשור ל-%s?",
}

// OpeningLines derives exactly three opening lines from the shared interests.
// Only the first shared interest shapes the templated set.
func OpeningLines(shared []string) []string {
	if len(shared) == 0 {
		lines := make([]string, len(genericStarters))
		copy(lines, genericStarters)
		return lines
	}

	interest := shared[0]
	lines := make([]string, 0, len(interestStarterTemplates))
	for _, template := range interestStarterTemplates {
		lines = append(lines, fmt.Sprintf(template, interest))
	}
	return lines
}

// GenerateStarters is the match-created event consumer. It persists the three
// opening lines in one batch. It is best-effort: any failure here is logged
// by the event bus and never reaches the match creator.
func (s *service) GenerateStarters(ctx context.Context, ev events.MatchCreated) error {
	shared, err := s.ExtractSharedInterests(ctx, ev.UserA, ev.UserB)
	if err != nil {
		return fmt.Errorf("shared-interest lookup failed: %w", err)
	}

	lines := OpeningLines(shared)
	starters := make([]*Starter, 0, len(lines))
	for _, line := range lines {
		starters = append(starters, &Starter{MatchID: ev.MatchID, Text: line})
	}

	if err := s.repo.CreateStarters(ctx, starters); err != nil {
		return fmt.Errorf("failed to persist starters: %w", err)
	}

	log.Printf("generated %d conversation starters for match %s", len(starters), ev.MatchID)
	return nil
}
