package game

import (
	"errors"
	"slices"
)

var (
	// ErrNegativeDraw is returned when a draw requests a negative card count.
	ErrNegativeDraw = errors.New("draw count must be non-negative")

	// ErrInsufficientCards is returned when a draw requests more cards than
	// remain. The deck is left untouched; no partial draw occurs.
	ErrInsufficientCards = errors.New("cannot draw more cards than remaining in deck")
)

// Deck is an ordered stack of cards owned by a single player. The first
// element is the top of the deck.
type Deck struct {
	Cards []Card
}

// NewDeck creates a deck from cards, preserving order.
func NewDeck(cards ...Card) *Deck {
	return &Deck{Cards: slices.Clone(cards)}
}

// Draw removes and returns the first n cards from the top of the deck,
// preserving order. Drawing zero cards returns nil without mutating state.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 {
		return nil, ErrNegativeDraw
	}
	if n == 0 {
		return nil, nil
	}
	if len(d.Cards) < n {
		return nil, ErrInsufficientCards
	}
	drawn := d.Cards[:n:n]
	d.Cards = d.Cards[n:]
	return drawn, nil
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int {
	return len(d.Cards)
}

// Copy returns an independent deck holding the same card sequence. Cards are
// shared by reference; mutating the copy's sequence never affects the
// original.
func (d *Deck) Copy() *Deck {
	return &Deck{Cards: slices.Clone(d.Cards)}
}
