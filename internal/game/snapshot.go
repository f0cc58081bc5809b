package game

// PlayerSnapshot is an immutable public projection of a player's board state.
// It exposes pile sizes and the active card's identity, never pile contents.
type PlayerSnapshot struct {
	Name             string
	DeckSize         int
	HandSize         int
	DiscardSize      int
	PrizesRemaining  int
	ActiveName       string // empty when no active Pokemon
	ActiveHP         int
	ActiveExternalID int // 0 when absent
}

// Snapshot captures the player's current public view.
func (p *Player) Snapshot() PlayerSnapshot {
	s := PlayerSnapshot{
		Name:            p.Name,
		DeckSize:        p.Deck.Size(),
		HandSize:        len(p.Hand),
		DiscardSize:     len(p.DiscardPile),
		PrizesRemaining: len(p.Prizes),
	}
	if p.Active != nil {
		s.ActiveName = p.Active.Name()
		s.ActiveHP = p.ActiveHP
		s.ActiveExternalID = p.Active.ExternalID()
	}
	return s
}

// GameSnapshot is an immutable point-in-time record of the public match
// state, produced during setup and after each step and consumed by the replay
// renderer. Players is indexed by Turn.
type GameSnapshot struct {
	ActiveTurn  Turn
	TurnCount   int
	Description string
	Players     [2]PlayerSnapshot
}

// Player returns the snapshot of the given player's board.
func (s GameSnapshot) Player(t Turn) PlayerSnapshot {
	return s.Players[t]
}
