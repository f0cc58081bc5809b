package game

import (
	"fmt"
	"strings"
)

// Attack describes a single attack printed on a Pokemon card. Damage is the
// amount dealt to the opposing active Pokemon; Text is optional reminder text
// that the engine keeps around but does not simulate.
type Attack struct {
	Name   string
	Damage int
	Text   string
}

// Card is implemented by every card variant. Cards are immutable once
// constructed and are shared freely by pointer; the engine only ever moves
// them between piles.
type Card interface {
	// Name returns the card's display name.
	Name() string
	// Describe returns a human-readable string describing the card.
	Describe() string
}

// PokemonCard is the simplified Pokemon card used by the core flow.
type PokemonCard struct {
	name       string
	hp         int
	attacks    []Attack
	externalID int
}

// NewPokemonCard creates a Pokemon card. externalID links the card to the
// official database for metadata lookup; 0 means no external identifier.
func NewPokemonCard(name string, hp int, attacks []Attack, externalID int) *PokemonCard {
	return &PokemonCard{
		name:       name,
		hp:         hp,
		attacks:    append([]Attack(nil), attacks...),
		externalID: externalID,
	}
}

func (c *PokemonCard) Name() string { return c.name }

// HP returns the printed maximum hit points.
func (c *PokemonCard) HP() int { return c.hp }

// Attacks returns the card's attacks in printed order.
func (c *PokemonCard) Attacks() []Attack { return c.attacks }

// ExternalID returns the official database identifier, or 0 when absent.
func (c *PokemonCard) ExternalID() int { return c.externalID }

func (c *PokemonCard) Describe() string {
	attacks := make([]string, len(c.attacks))
	for i, a := range c.attacks {
		attacks[i] = fmt.Sprintf("%s (%d)", a.Name, a.Damage)
	}
	return fmt.Sprintf("%s [HP %d] :: %s", c.name, c.hp, strings.Join(attacks, ", "))
}

// EnergyCard is a placeholder energy card. The type tag is carried but unused
// by game logic.
type EnergyCard struct {
	name       string
	energyType string
}

func NewEnergyCard(name, energyType string) *EnergyCard {
	return &EnergyCard{name: name, energyType: energyType}
}

func (c *EnergyCard) Name() string       { return c.name }
func (c *EnergyCard) EnergyType() string { return c.energyType }
func (c *EnergyCard) Describe() string   { return c.name }

// TrainerCard is a placeholder trainer card with a free-text effect.
type TrainerCard struct {
	name string
	text string
}

func NewTrainerCard(name, text string) *TrainerCard {
	return &TrainerCard{name: name, text: text}
}

func (c *TrainerCard) Name() string     { return c.name }
func (c *TrainerCard) Text() string     { return c.text }
func (c *TrainerCard) Describe() string { return c.name }
