package game

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/peterkuimelis/poketcg/internal/log"
)

const (
	// OpeningHandSize is the number of cards drawn during setup.
	OpeningHandSize = 7
	// PrizeCount is the number of prize cards set aside during setup.
	PrizeCount = 6
	// DefaultMaxTurns bounds a match when Config.MaxTurns is zero.
	DefaultMaxTurns = 100
)

// ErrNoStartingPokemon is returned by Setup when a player's opening hand
// contains no Pokemon card. The match is aborted before any turn is played.
var ErrNoStartingPokemon = errors.New("no pokemon to start the game")

// Turn identifies which of the two players is acting.
type Turn int

const (
	PlayerOne Turn = iota
	PlayerTwo
)

// NoWinner marks an undecided step or a drawn result.
const NoWinner Turn = -1

// Opposite returns the other player's turn.
func (t Turn) Opposite() Turn {
	if t == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (t Turn) String() string {
	if t == NoWinner {
		return "none"
	}
	return fmt.Sprintf("P%d", int(t)+1)
}

// GameResult is the terminal record of a completed match.
type GameResult struct {
	Winner    Turn // PlayerOne, PlayerTwo, or NoWinner for a draw
	Log       []string
	Snapshots []GameSnapshot
}

// Config holds the knobs for creating a match.
type Config struct {
	Seed     int64           // RNG seed for deck shuffling (0 for random)
	MaxTurns int             // turn ceiling for Play (0 = DefaultMaxTurns)
	Logger   log.EventLogger // defaults to an in-memory logger
}

// Game is the controller that runs a simplified Pokemon TCG match. It owns
// both players for the match's duration and exposes a deterministic state
// machine: Setup once, then Step per turn, or Play for the whole match.
// Mechanics like energy costs, abilities, status conditions and bench
// management are intentionally omitted so the basic flow stays easy to follow
// and suitable for experimentation.
type Game struct {
	players   [2]*Player
	turn      Turn
	turnCount int
	rng       *rand.Rand
	logger    log.EventLogger
	snapshots []GameSnapshot
	maxTurns  int
}

// NewGame creates a match controller that takes ownership of both players.
func NewGame(playerOne, playerTwo *Player, cfg Config) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Game{
		players:  [2]*Player{playerOne, playerTwo},
		turn:     PlayerOne,
		rng:      newRNG(cfg.Seed),
		logger:   logger,
		maxTurns: maxTurns,
	}
}

func newRNG(seed int64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}
	var b [16]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		panic(err)
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])))
}

// Player returns the player acting on the given turn.
func (g *Game) Player(t Turn) *Player {
	return g.players[t]
}

// ActiveTurn returns whose turn it is.
func (g *Game) ActiveTurn() Turn {
	return g.turn
}

// TurnCount returns the number of turns played so far.
func (g *Game) TurnCount() int {
	return g.turnCount
}

// Events returns all match events recorded so far.
func (g *Game) Events() []log.GameEvent {
	return g.logger.Events()
}

// Snapshots returns all snapshots recorded so far.
func (g *Game) Snapshots() []GameSnapshot {
	return g.snapshots
}

func (g *Game) recordSnapshot(description string) {
	g.snapshots = append(g.snapshots, GameSnapshot{
		ActiveTurn:  g.turn,
		TurnCount:   g.turnCount,
		Description: description,
		Players: [2]PlayerSnapshot{
			g.players[PlayerOne].Snapshot(),
			g.players[PlayerTwo].Snapshot(),
		},
	})
}

func (g *Game) setupPlayer(p *Player) error {
	g.rng.Shuffle(len(p.Deck.Cards), func(i, j int) {
		p.Deck.Cards[i], p.Deck.Cards[j] = p.Deck.Cards[j], p.Deck.Cards[i]
	})
	p.Hand = nil
	p.DiscardPile = nil
	p.Prizes = nil
	p.Active = nil
	p.ActiveHP = 0
	if _, err := p.Draw(OpeningHandSize); err != nil {
		return fmt.Errorf("deal opening hand for %s: %w", p.Name, err)
	}
	if err := p.SetupPrizes(PrizeCount); err != nil {
		return fmt.Errorf("set prizes for %s: %w", p.Name, err)
	}
	if !p.PromoteFromHand() {
		return fmt.Errorf("player %s: %w", p.Name, ErrNoStartingPokemon)
	}
	return nil
}

// Setup shuffles both decks with the match RNG, deals opening hands, sets
// aside prizes and promotes each player's starting Pokemon. A failing setup
// aborts the match; no turn may be played afterwards.
func (g *Game) Setup() error {
	for _, t := range []Turn{PlayerOne, PlayerTwo} {
		if err := g.setupPlayer(g.players[t]); err != nil {
			return err
		}
	}
	g.turn = PlayerOne
	g.turnCount = 0
	g.logger.Log(log.NewSetupEvent())
	for _, t := range []Turn{PlayerOne, PlayerTwo} {
		p := g.players[t]
		g.logger.Log(log.NewOpeningEvent(int(t), p.Name, p.Active.Name(), p.ActiveHP))
	}
	g.recordSnapshot("Setup complete")
	return nil
}

// attack resolves the active player's attack phase. Having no active Pokemon
// or no attacks forfeits the phase; both are normal, logged outcomes. Only
// the first printed attack is ever used.
func (g *Game) attack(active Turn, attacker, defender *Player) error {
	pokemon := attacker.Active
	if pokemon == nil {
		g.logger.Log(log.NewTurnForfeitEvent(g.turnCount, int(active), attacker.Name))
		return nil
	}
	attacks := pokemon.Attacks()
	if len(attacks) == 0 {
		g.logger.Log(log.NewCannotAttackEvent(g.turnCount, int(active), pokemon.Name()))
		return nil
	}
	attack := attacks[0]
	g.logger.Log(log.NewAttackEvent(g.turnCount, int(active), attacker.Name, pokemon.Name(), attack.Name, attack.Damage))
	knockedOut, err := defender.DamageActive(attack.Damage)
	if err != nil {
		return err
	}
	if !knockedOut {
		return nil
	}
	g.logger.Log(log.NewKnockoutEvent(g.turnCount, int(active.Opposite()), defender.Name, defender.Active.Name()))
	defender.DiscardActive()
	if prize := attacker.TakePrize(); prize != nil {
		g.logger.Log(log.NewPrizeTakenEvent(g.turnCount, int(active), attacker.Name, prize.Name()))
	}
	// The win itself is detected by the victory scan right after this phase;
	// this line only narrates it.
	if len(attacker.Prizes) == 0 {
		g.logger.Log(log.NewFinalPrizeEvent(g.turnCount, int(active), attacker.Name))
	}
	if !defender.PromoteFromHand() {
		g.logger.Log(log.NewPromoteFailedEvent(g.turnCount, int(active.Opposite()), defender.Name))
	}
	return nil
}

// checkVictory scans players in (PlayerOne, PlayerTwo) order: a player with
// an empty prize pile wins; a player with no active Pokemon and none in hand
// hands the win to their opponent.
func (g *Game) checkVictory() Turn {
	for _, t := range []Turn{PlayerOne, PlayerTwo} {
		p := g.players[t]
		if len(p.Prizes) == 0 {
			return t
		}
		if p.Active == nil && !p.HasPokemonInHand() {
			return t.Opposite()
		}
	}
	return NoWinner
}

// Step plays a single turn: draw phase, attack phase, victory check. It
// returns the winner, or NoWinner while the match is undecided. A player
// whose deck is empty at their draw phase loses immediately, regardless of
// board state.
func (g *Game) Step() (Turn, error) {
	active := g.turn
	player := g.players[active]
	opponent := g.players[active.Opposite()]
	g.turnCount++
	g.logger.Log(log.NewTurnStartEvent(g.turnCount, int(active), player.Name))

	if player.Deck.Size() == 0 {
		g.logger.Log(log.NewDeckOutEvent(g.turnCount, int(active), player.Name))
		g.recordSnapshot("Deck out")
		return active.Opposite(), nil
	}
	drawn, err := player.Draw(1)
	if err != nil {
		return NoWinner, err
	}
	g.logger.Log(log.NewDrawEvent(g.turnCount, int(active), player.Name, drawn[0].Name()))

	if err := g.attack(active, player, opponent); err != nil {
		return NoWinner, err
	}

	winner := g.checkVictory()
	g.recordSnapshot(fmt.Sprintf("After turn %d", g.turnCount))
	g.turn = active.Opposite()
	return winner, nil
}

// Play runs Setup and then steps until a winner is decided or the turn
// ceiling is reached. Reaching the ceiling is a draw: the result's winner is
// NoWinner. The final snapshot is always "Game end", attributed to the player
// who would act next.
func (g *Game) Play() (GameResult, error) {
	if err := g.Setup(); err != nil {
		return GameResult{}, err
	}
	winner := NoWinner
	for winner == NoWinner && g.turnCount < g.maxTurns {
		w, err := g.Step()
		if err != nil {
			return GameResult{}, err
		}
		winner = w
	}
	if winner == NoWinner {
		g.logger.Log(log.NewTurnLimitEvent(g.turnCount))
	} else {
		g.logger.Log(log.NewWinnerEvent(g.turnCount, int(winner), g.players[winner].Name))
	}
	g.recordSnapshot("Game end")
	return GameResult{
		Winner:    winner,
		Log:       log.Lines(g.logger.Events()),
		Snapshots: slices.Clone(g.snapshots),
	}, nil
}

// Clone returns an independent controller for search and simulation use.
// Container state (deck order, hand, discard, prizes, log, snapshots) is
// deep-copied so branching game states never alias mutable collections; card
// values and the active Pokemon reference are shared, since cards are
// immutable. The clone gets a fresh, unseeded RNG: callers needing
// reproducibility across clones must construct a reseeded game themselves.
func (g *Game) Clone() *Game {
	var players [2]*Player
	for i, p := range g.players {
		players[i] = &Player{
			Name:        p.Name,
			Deck:        p.Deck.Copy(),
			Hand:        slices.Clone(p.Hand),
			DiscardPile: slices.Clone(p.DiscardPile),
			Prizes:      slices.Clone(p.Prizes),
			Active:      p.Active,
			ActiveHP:    p.ActiveHP,
		}
	}
	logger := log.NewMemoryLogger()
	for _, e := range g.logger.Events() {
		logger.Log(e)
	}
	return &Game{
		players:   players,
		turn:      g.turn,
		turnCount: g.turnCount,
		rng:       newRNG(0),
		logger:    logger,
		snapshots: slices.Clone(g.snapshots),
		maxTurns:  g.maxTurns,
	}
}
