package dating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpeningLinesGeneric(t *testing.T) {
	lines := OpeningLines(nil)

	require.Len(t, lines, 3)
	assert.Equal(t, genericStarters, lines)
}

func TestOpeningLinesUseFirstSharedInterest(t *testing.T) {
	lines := OpeningLines([]string{"צילום", "ריצה"})

	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, "צילום")
		assert.NotContains(t, line, "ריצה")
	}
}

func TestOpeningLinesCopyIsIndependent(t *testing.T) {
	lines := OpeningLines(nil)
	lines[0] = "mutated"

	assert.NotEqual(t, "mutated", genericStarters[0])
}
