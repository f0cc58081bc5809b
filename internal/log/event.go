package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventSetup EventType = iota
	EventOpening
	EventTurnStart
	EventDraw
	EventDeckOut
	EventAttack
	EventCannotAttack
	EventTurnForfeit
	EventKnockout
	EventPrizeTaken
	EventFinalPrize
	EventPromoteFailed
	EventTurnLimit
	EventWinner
)

func (e EventType) String() string {
	switch e {
	case EventSetup:
		return "Setup"
	case EventOpening:
		return "Opening"
	case EventTurnStart:
		return "TurnStart"
	case EventDraw:
		return "Draw"
	case EventDeckOut:
		return "DeckOut"
	case EventAttack:
		return "Attack"
	case EventCannotAttack:
		return "CannotAttack"
	case EventTurnForfeit:
		return "TurnForfeit"
	case EventKnockout:
		return "Knockout"
	case EventPrizeTaken:
		return "PrizeTaken"
	case EventFinalPrize:
		return "FinalPrize"
	case EventPromoteFailed:
		return "PromoteFailed"
	case EventTurnLimit:
		return "TurnLimit"
	case EventWinner:
		return "Winner"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match. Details carries
// the narrative line shown in logs and replays; the structured fields exist
// for filtering and assertions.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // turn counter when the event occurred (0 during setup)
	Player  int       // acting player (0 or 1, -1 when not player-scoped)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable narrative line
}
