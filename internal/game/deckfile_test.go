package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDeckYAML = `decks:
  - name: Lightning Rush
    cards:
      - name: Pikachu
        count: 3
        hp: 60
        external_id: 45035
        attacks:
          - name: Thunder Jolt
            damage: 30
      - name: Lightning Energy
        kind: energy
        count: 2
        energy_type: Lightning
      - name: Potion
        kind: trainer
        text: Heal 20 damage.
  - name: Aqua Wall
    cards:
      - name: Squirtle
        count: 4
        hp: 50
        attacks:
          - name: Bubble
            damage: 20
`

func writeDeckFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseDeckFile(t *testing.T) {
	path := writeDeckFile(t, testDeckYAML)

	decks, err := ParseDeckFile(path)
	require.NoError(t, err)
	require.Len(t, decks, 2)

	lightning := decks["Lightning Rush"]
	require.NotNil(t, lightning)
	// 3 Pikachu + 2 Energy + 1 Potion (count defaults to 1).
	assert.Equal(t, 6, lightning.Size())

	pikachu, ok := lightning.Cards[0].(*PokemonCard)
	require.True(t, ok)
	assert.Equal(t, 60, pikachu.HP())
	assert.Equal(t, 45035, pikachu.ExternalID())
	require.Len(t, pikachu.Attacks(), 1)
	assert.Equal(t, "Thunder Jolt", pikachu.Attacks()[0].Name)

	aqua := decks["Aqua Wall"]
	require.NotNil(t, aqua)
	assert.Equal(t, 4, aqua.Size())
}

func TestDeckByNumber(t *testing.T) {
	path := writeDeckFile(t, testDeckYAML)

	name, deck, err := DeckByNumber(path, 2)
	require.NoError(t, err)
	assert.Equal(t, "Aqua Wall", name)
	assert.Equal(t, 4, deck.Size())

	_, _, err = DeckByNumber(path, 3)
	assert.Error(t, err)
	_, _, err = DeckByNumber(path, 0)
	assert.Error(t, err)
}

func TestParseDeckFileRejectsBadCards(t *testing.T) {
	t.Run("pokemon without hp", func(t *testing.T) {
		path := writeDeckFile(t, `decks:
  - name: Broken
    cards:
      - name: Ghost
`)
		_, err := ParseDeckFile(path)
		assert.ErrorContains(t, err, "needs positive hp")
	})

	t.Run("unknown kind", func(t *testing.T) {
		path := writeDeckFile(t, `decks:
  - name: Broken
    cards:
      - name: Mystery
        kind: stadium
`)
		_, err := ParseDeckFile(path)
		assert.ErrorContains(t, err, "unknown kind")
	})
}

func TestReadDeckFilePreservesOrder(t *testing.T) {
	path := writeDeckFile(t, testDeckYAML)

	df, err := ReadDeckFile(path)
	require.NoError(t, err)
	require.Len(t, df.Decks, 2)
	assert.Equal(t, "Lightning Rush", df.Decks[0].Name)
	assert.Equal(t, "Aqua Wall", df.Decks[1].Name)
}
