package log

import (
	"fmt"
	"io"

	"github.com/samber/lo"
)

// EventLogger is the interface for recording match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	return lo.Filter(l.events, func(e GameEvent, _ int) bool {
		return e.Type == t
	})
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes narrative lines to an io.Writer as they happen ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, event.Details)
}

// Lines returns the narrative line of each event, in order. A completed
// match's Lines form its full game log.
func Lines(events []GameEvent) []string {
	return lo.Map(events, func(e GameEvent, _ int) string {
		return e.Details
	})
}

// --- Helper constructors for match events ---

func NewSetupEvent() GameEvent {
	return GameEvent{
		Player:  -1,
		Type:    EventSetup,
		Details: "Game setup complete.",
	}
}

func NewOpeningEvent(player int, playerName, pokemonName string, hp int) GameEvent {
	return GameEvent{
		Player:  player,
		Type:    EventOpening,
		Card:    pokemonName,
		Details: fmt.Sprintf("%s opens with %s (HP %d).", playerName, pokemonName, hp),
	}
}

func NewTurnStartEvent(turn, player int, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventTurnStart,
		Details: fmt.Sprintf("--- Turn %d: %s ---", turn, playerName),
	}
}

func NewDeckOutEvent(turn, player int, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDeckOut,
		Details: fmt.Sprintf("%s cannot draw and loses by deck out.", playerName),
	}
}

func NewDrawEvent(turn, player int, playerName, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s.", playerName, cardName),
	}
}

func NewTurnForfeitEvent(turn, player int, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventTurnForfeit,
		Details: fmt.Sprintf("%s has no active Pokemon and loses the turn.", playerName),
	}
}

func NewCannotAttackEvent(turn, player int, pokemonName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventCannotAttack,
		Card:    pokemonName,
		Details: fmt.Sprintf("%s cannot attack.", pokemonName),
	}
}

func NewAttackEvent(turn, player int, playerName, pokemonName, attackName string, damage int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventAttack,
		Card:    pokemonName,
		Details: fmt.Sprintf("%s's %s uses %s for %d damage.", playerName, pokemonName, attackName, damage),
	}
}

func NewKnockoutEvent(turn, player int, playerName, pokemonName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventKnockout,
		Card:    pokemonName,
		Details: fmt.Sprintf("%s's %s is knocked out!", playerName, pokemonName),
	}
}

func NewPrizeTakenEvent(turn, player int, playerName, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPrizeTaken,
		Card:    cardName,
		Details: fmt.Sprintf("%s takes a prize card: %s.", playerName, cardName),
	}
}

func NewFinalPrizeEvent(turn, player int, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventFinalPrize,
		Details: fmt.Sprintf("%s takes the final prize and wins!", playerName),
	}
}

func NewPromoteFailedEvent(turn, player int, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPromoteFailed,
		Details: fmt.Sprintf("%s has no replacement Pokemon and loses!", playerName),
	}
}

func NewTurnLimitEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  -1,
		Type:    EventTurnLimit,
		Details: "Game ended due to turn limit.",
	}
}

func NewWinnerEvent(turn, player int, playerName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventWinner,
		Details: fmt.Sprintf("Winner: %s", playerName),
	}
}
