package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure of a decks file.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single named deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry defines a card inline along with how many copies the deck runs.
// Kind selects the variant: "pokemon" (the default), "energy" or "trainer".
type CardEntry struct {
	Name       string        `yaml:"name"`
	Count      int           `yaml:"count"`
	Kind       string        `yaml:"kind"`
	HP         int           `yaml:"hp"`
	ExternalID int           `yaml:"external_id"`
	Attacks    []AttackEntry `yaml:"attacks"`
	EnergyType string        `yaml:"energy_type"`
	Text       string        `yaml:"text"`
}

// AttackEntry defines one attack of a Pokemon card entry.
type AttackEntry struct {
	Name   string `yaml:"name"`
	Damage int    `yaml:"damage"`
	Text   string `yaml:"text"`
}

func (e CardEntry) build() (Card, error) {
	switch e.Kind {
	case "", "pokemon":
		if e.HP <= 0 {
			return nil, fmt.Errorf("pokemon card %q needs positive hp", e.Name)
		}
		attacks := make([]Attack, len(e.Attacks))
		for i, a := range e.Attacks {
			attacks[i] = Attack{Name: a.Name, Damage: a.Damage, Text: a.Text}
		}
		return NewPokemonCard(e.Name, e.HP, attacks, e.ExternalID), nil
	case "energy":
		return NewEnergyCard(e.Name, e.EnergyType), nil
	case "trainer":
		return NewTrainerCard(e.Name, e.Text), nil
	default:
		return nil, fmt.Errorf("card %q has unknown kind %q", e.Name, e.Kind)
	}
}

func (e DeckEntry) build() (*Deck, error) {
	var cards []Card
	for _, entry := range e.Cards {
		card, err := entry.build()
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", e.Name, err)
		}
		count := entry.Count
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			cards = append(cards, card)
		}
	}
	return &Deck{Cards: cards}, nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name → deck.
func ParseDeckFile(path string) (map[string]*Deck, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return nil, err
	}
	decks := make(map[string]*Deck)
	for _, entry := range df.Decks {
		deck, err := entry.build()
		if err != nil {
			return nil, err
		}
		decks[entry.Name] = deck
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (string, *Deck, error) {
	df, err := ReadDeckFile(path)
	if err != nil {
		return "", nil, err
	}
	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	deck, err := df.Decks[n-1].build()
	if err != nil {
		return "", nil, err
	}
	return df.Decks[n-1].Name, deck, nil
}

// ReadDeckFile parses the YAML structure of a decks file without building
// decks, preserving declaration order.
func ReadDeckFile(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return &df, nil
}
