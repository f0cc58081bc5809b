package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/poketcg/internal/log"
)

func TestSetupDealsHandsAndPrizes(t *testing.T) {
	g := NewGame(
		NewPlayer("Ash", uniformDeck(basicPokemon("Pikachu", 60, 30), 60)),
		NewPlayer("Gary", uniformDeck(basicPokemon("Squirtle", 50, 20), 60)),
		Config{Seed: 1},
	)
	require.NoError(t, g.Setup())

	for _, turn := range []Turn{PlayerOne, PlayerTwo} {
		p := g.Player(turn)
		// Seven drawn, one promoted to the active spot.
		assert.Len(t, p.Hand, OpeningHandSize-1)
		assert.Len(t, p.Prizes, PrizeCount)
		assert.Equal(t, 60-OpeningHandSize-PrizeCount, p.Deck.Size())
		assert.NotNil(t, p.Active)
	}

	assert.Equal(t, PlayerOne, g.ActiveTurn())
	assert.Equal(t, 0, g.TurnCount())

	events := g.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, log.EventSetup, events[0].Type)
	assert.Equal(t, "Game setup complete.", events[0].Details)

	snapshots := g.Snapshots()
	require.Len(t, snapshots, 1)
	assert.Equal(t, "Setup complete", snapshots[0].Description)
	assert.Equal(t, 0, snapshots[0].TurnCount)
}

func TestSetupFailsWithoutStartingPokemon(t *testing.T) {
	g := NewGame(
		NewPlayer("Ash", uniformDeck(NewEnergyCard("Lightning Energy", "Lightning"), 60)),
		NewPlayer("Gary", uniformDeck(basicPokemon("Squirtle", 50, 20), 60)),
		Config{Seed: 1},
	)
	assert.ErrorIs(t, g.Setup(), ErrNoStartingPokemon)
}

func TestStepKnockoutAwardsPrize(t *testing.T) {
	// Weedle dies to a single Pikachu hit, so turn 1 ends in a knockout.
	logger := log.NewMemoryLogger()
	g := NewGame(
		NewPlayer("Ash", uniformDeck(basicPokemon("Pikachu", 60, 30), 60)),
		NewPlayer("Gary", uniformDeck(basicPokemon("Weedle", 30, 10), 60)),
		Config{Seed: 1, Logger: logger},
	)
	require.NoError(t, g.Setup())

	winner, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, NoWinner, winner)
	assert.Equal(t, PlayerTwo, g.ActiveTurn())

	ash, gary := g.Player(PlayerOne), g.Player(PlayerTwo)
	assert.Len(t, ash.Prizes, PrizeCount-1)
	assert.Len(t, gary.DiscardPile, 1)
	// A replacement Weedle is promoted immediately.
	require.NotNil(t, gary.Active)
	assert.Equal(t, 30, gary.ActiveHP)

	require.Len(t, logger.EventsOfType(log.EventKnockout), 1)
	assert.Equal(t, "Weedle", logger.EventsOfType(log.EventKnockout)[0].Card)
	require.Len(t, logger.EventsOfType(log.EventPrizeTaken), 1)
}

func TestStepDeckOutLosesImmediately(t *testing.T) {
	// Thirteen cards cover the opening hand and prizes exactly, leaving the
	// deck empty at the first draw phase.
	g := NewGame(
		NewPlayer("Ash", uniformDeck(basicPokemon("Pikachu", 60, 30), OpeningHandSize+PrizeCount)),
		NewPlayer("Gary", uniformDeck(basicPokemon("Squirtle", 50, 20), 60)),
		Config{Seed: 1},
	)
	require.NoError(t, g.Setup())

	winner, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, PlayerTwo, winner)
	// The turn does not pass after a deck out.
	assert.Equal(t, PlayerOne, g.ActiveTurn())

	events := g.Events()
	last := events[len(events)-1]
	assert.Equal(t, log.EventDeckOut, last.Type)
	assert.Equal(t, "Ash cannot draw and loses by deck out.", last.Details)

	snapshots := g.Snapshots()
	assert.Equal(t, "Deck out", snapshots[len(snapshots)-1].Description)
}

func TestStepFailedPromotionLosesOnTheSpot(t *testing.T) {
	// Gary's Weedle is knocked out with no replacement anywhere.
	ash := NewPlayer("Ash", uniformDeck(basicPokemon("Pikachu", 60, 30), 10))
	ash.Hand = []Card{basicPokemon("Pikachu", 60, 30)}
	require.True(t, ash.PromoteFromHand())
	require.NoError(t, ash.SetupPrizes(6))

	gary := NewPlayer("Gary", uniformDeck(NewTrainerCard("Potion", ""), 10))
	gary.Hand = []Card{basicPokemon("Weedle", 30, 10)}
	require.True(t, gary.PromoteFromHand())
	require.NoError(t, gary.SetupPrizes(6))

	g := NewGame(ash, gary, Config{Seed: 1})
	winner, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, PlayerOne, winner)

	var sawPromoteFailed bool
	for _, e := range g.Events() {
		if e.Type == log.EventPromoteFailed {
			sawPromoteFailed = true
			assert.Equal(t, "Gary has no replacement Pokemon and loses!", e.Details)
		}
	}
	assert.True(t, sawPromoteFailed)
}

func TestPlayTurnLimitIsADraw(t *testing.T) {
	// Zero-damage attacks can never knock anything out.
	g := NewGame(
		NewPlayer("Ash", uniformDeck(basicPokemon("Metapod", 70, 0), 60)),
		NewPlayer("Gary", uniformDeck(basicPokemon("Kakuna", 80, 0), 60)),
		Config{Seed: 1, MaxTurns: 4},
	)
	result, err := g.Play()
	require.NoError(t, err)

	assert.Equal(t, NoWinner, result.Winner)
	assert.Equal(t, 4, g.TurnCount())
	require.NotEmpty(t, result.Log)
	assert.Equal(t, "Game ended due to turn limit.", result.Log[len(result.Log)-1])
	assert.Equal(t, "Game end", result.Snapshots[len(result.Snapshots)-1].Description)
}

func TestPlayFullMatch(t *testing.T) {
	newMatch := func() *Game {
		return NewGame(
			NewPlayer("Lightning", uniformDeck(basicPokemon("Pikachu", 60, 30), 60)),
			NewPlayer("Aqua", uniformDeck(basicPokemon("Squirtle", 50, 20), 60)),
			Config{Seed: 7},
		)
	}

	g := newMatch()
	result, err := g.Play()
	require.NoError(t, err)

	// Pikachu knocks out a Squirtle every second turn; Lightning clears its
	// six prizes well before Aqua can.
	assert.Equal(t, PlayerOne, result.Winner)
	assert.Contains(t, result.Log, "Lightning takes the final prize and wins!")
	assert.Contains(t, result.Log, "Winner: Lightning")

	require.NotEmpty(t, result.Snapshots)
	assert.Equal(t, "Setup complete", result.Snapshots[0].Description)
	assert.Equal(t, "Game end", result.Snapshots[len(result.Snapshots)-1].Description)

	// Identical seeds reproduce the match byte for byte.
	rerun, err := newMatch().Play()
	require.NoError(t, err)
	assert.Equal(t, result.Winner, rerun.Winner)
	assert.Equal(t, result.Log, rerun.Log)
	assert.Equal(t, result.Snapshots, rerun.Snapshots)
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGame(
		NewPlayer("Ash", uniformDeck(basicPokemon("Pikachu", 60, 30), 60)),
		NewPlayer("Gary", uniformDeck(basicPokemon("Squirtle", 50, 20), 60)),
		Config{Seed: 1},
	)
	require.NoError(t, g.Setup())

	clone := g.Clone()
	assert.Equal(t, g.TurnCount(), clone.TurnCount())
	assert.Equal(t, len(g.Events()), len(clone.Events()))

	// Advancing the original leaves the clone where it was.
	_, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, g.TurnCount())
	assert.Equal(t, 0, clone.TurnCount())
	assert.Less(t, len(clone.Events()), len(g.Events()))

	// Container state is deep-copied; cards are shared by reference.
	assert.NotSame(t, &g.Player(PlayerOne).Hand[0], &clone.Player(PlayerOne).Hand[0])
	assert.Same(t, g.Player(PlayerOne).Active, clone.Player(PlayerOne).Active)
}
