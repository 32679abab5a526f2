package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nivkoren/levmatch-backend/internal/config"
)

func TestCheckAllowsCleanText(t *testing.T) {
	engine := NewEngine(config.DefaultModerationTerms)

	decision := engine.Check("איזה יום מקסים, בא לך לצאת לטיול?")

	assert.True(t, decision.Allowed)
	assert.Empty(t, decision.Labels)
	assert.NotNil(t, decision.Labels)
}

func TestCheckBlocksLexiconTerm(t *testing.T) {
	engine := NewEngine(config.DefaultModerationTerms)

	decision := engine.Check("יש פה המון אלימות")

	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Labels, "אלימות")
}

func TestCheckMatchesTermInsideWord(t *testing.T) {
	engine := NewEngine(config.DefaultModerationTerms)

	// "גזענ" is a stem; it matches inflections like "גזענות".
	decision := engine.Check("זאת גזענות לשמה")

	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.Labels, "גזענ")
}

func TestCheckCollectsMultipleLabels(t *testing.T) {
	engine := NewEngine([]string{"foo", "bar"})

	decision := engine.Check("foo and bar together")

	assert.False(t, decision.Allowed)
	assert.Equal(t, []string{"foo", "bar"}, decision.Labels)
}

func TestCheckCaseInsensitive(t *testing.T) {
	engine := NewEngine([]string{"Spam"})

	assert.False(t, engine.Check("this is SPAM").Allowed)
	assert.False(t, engine.Check("this is spam").Allowed)
	assert.True(t, engine.Check("this is fine").Allowed)
}

func TestCheckEmptyText(t *testing.T) {
	engine := NewEngine(config.DefaultModerationTerms)

	assert.True(t, engine.Check("").Allowed)
}
