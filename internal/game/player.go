package game

import (
	"errors"

	"github.com/samber/lo"
)

// ErrNoActivePokemon is returned when damage is applied to a player with no
// active Pokemon. This is a contract violation by the caller, not a game
// outcome.
var ErrNoActivePokemon = errors.New("no active pokemon to damage")

// Player holds the mutable board state of one player during a match: their
// deck, hand, discard pile, prize pile and the single active Pokemon.
// ActiveHP tracks the active Pokemon's current hit points separately from its
// printed maximum and is meaningful only while Active is set.
type Player struct {
	Name        string
	Deck        *Deck
	Hand        []Card
	DiscardPile []Card
	Prizes      []Card
	Active      *PokemonCard
	ActiveHP    int
}

// NewPlayer creates a player who owns the given deck.
func NewPlayer(name string, deck *Deck) *Player {
	return &Player{Name: name, Deck: deck}
}

// Draw moves n cards from the top of the deck into the hand and returns them.
// On error the hand and deck are unchanged.
func (p *Player) Draw(n int) ([]Card, error) {
	cards, err := p.Deck.Draw(n)
	if err != nil {
		return nil, err
	}
	p.Hand = append(p.Hand, cards...)
	return cards, nil
}

// SetupPrizes sets aside count cards from the top of the deck as prizes,
// replacing any prior prize pile.
func (p *Player) SetupPrizes(count int) error {
	prizes, err := p.Deck.Draw(count)
	if err != nil {
		return err
	}
	p.Prizes = prizes
	return nil
}

// TakePrize removes the first prize card and adds it to the hand. It returns
// nil when the prize pile is empty; that is a normal outcome, not an error.
func (p *Player) TakePrize() Card {
	if len(p.Prizes) == 0 {
		return nil
	}
	card := p.Prizes[0]
	p.Prizes = p.Prizes[1:]
	p.Hand = append(p.Hand, card)
	return card
}

// HasPokemonInHand reports whether any card in hand is a Pokemon card.
func (p *Player) HasPokemonInHand() bool {
	return lo.SomeBy(p.Hand, func(c Card) bool {
		_, ok := c.(*PokemonCard)
		return ok
	})
}

// PromoteFromHand moves the first Pokemon card in hand (in hand order) to the
// active spot with full hit points. It returns false and leaves all state
// unchanged when the hand holds no Pokemon card.
func (p *Player) PromoteFromHand() bool {
	for i, card := range p.Hand {
		pokemon, ok := card.(*PokemonCard)
		if !ok {
			continue
		}
		p.Active = pokemon
		p.ActiveHP = pokemon.HP()
		p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
		return true
	}
	return false
}

// DamageActive reduces the active Pokemon's hit points by amount, floored at
// zero. It reports whether the Pokemon was knocked out (hit points exactly
// zero).
func (p *Player) DamageActive(amount int) (bool, error) {
	if p.Active == nil {
		return false, ErrNoActivePokemon
	}
	p.ActiveHP = max(p.ActiveHP-amount, 0)
	return p.ActiveHP == 0, nil
}

// DiscardActive moves the active Pokemon to the discard pile and clears the
// active spot. It is a no-op when there is no active Pokemon.
func (p *Player) DiscardActive() {
	if p.Active == nil {
		return
	}
	p.DiscardPile = append(p.DiscardPile, p.Active)
	p.Active = nil
	p.ActiveHP = 0
}
