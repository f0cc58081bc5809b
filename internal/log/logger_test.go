package log

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoggerAssignsSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewSetupEvent())
	l.Log(NewTurnStartEvent(1, 0, "Ash"))
	l.Log(NewDrawEvent(1, 0, "Ash", "Pikachu"))

	events := l.Events()
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.Seq)
	}
	assert.Equal(t, EventDraw, l.LastEvent().Type)
}

func TestEventsOfType(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnStartEvent(1, 0, "Ash"))
	l.Log(NewDrawEvent(1, 0, "Ash", "Pikachu"))
	l.Log(NewTurnStartEvent(2, 1, "Gary"))

	starts := l.EventsOfType(EventTurnStart)
	require.Len(t, starts, 2)
	assert.Equal(t, "--- Turn 1: Ash ---", starts[0].Details)
	assert.Equal(t, "--- Turn 2: Gary ---", starts[1].Details)

	assert.Empty(t, l.EventsOfType(EventKnockout))
}

func TestTextLoggerWritesLines(t *testing.T) {
	var sb strings.Builder
	l := NewTextLogger(&sb)
	l.Log(NewAttackEvent(3, 0, "Ash", "Pikachu", "Thunder Jolt", 30))
	l.Log(NewKnockoutEvent(3, 1, "Gary", "Squirtle"))

	assert.Equal(t, "Ash's Pikachu uses Thunder Jolt for 30 damage.\nGary's Squirtle is knocked out!\n", sb.String())
	// Events are also retained in memory.
	assert.Len(t, l.Events(), 2)
}

func TestLines(t *testing.T) {
	events := []GameEvent{
		NewPrizeTakenEvent(5, 0, "Ash", "Pikachu"),
		NewFinalPrizeEvent(5, 0, "Ash"),
		NewWinnerEvent(5, 0, "Ash"),
	}
	assert.Equal(t, []string{
		"Ash takes a prize card: Pikachu.",
		"Ash takes the final prize and wins!",
		"Winner: Ash",
	}, Lines(events))
}

func TestLastEventEmpty(t *testing.T) {
	l := NewMemoryLogger()
	assert.Equal(t, GameEvent{}, l.LastEvent())
}
