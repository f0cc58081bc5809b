// Package web serves match replays over HTTP: a replay page that simulates a
// match on demand, a deck listing API and a websocket that streams match
// events live.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/peterkuimelis/poketcg/internal/carddata"
	"github.com/peterkuimelis/poketcg/internal/game"
	gamelog "github.com/peterkuimelis/poketcg/internal/log"
	"github.com/peterkuimelis/poketcg/internal/replay"
)

// Config is the web server configuration, read from the environment.
type Config struct {
	Addr          string `env:"POKETCG_ADDR" envDefault:":8080"`
	DecksFile     string `env:"POKETCG_DECKS" envDefault:"decks.yaml"`
	MaxTurns      int    `env:"POKETCG_MAX_TURNS" envDefault:"100"`
	FetchMetadata bool   `env:"POKETCG_FETCH_METADATA" envDefault:"false"`
}

// LoadConfigFromEnv loads server configuration from environment variables.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"`
}

// Server is the replay web server.
type Server struct {
	cfg      Config
	renderer *replay.Renderer
	mux      *http.ServeMux
}

// NewServer creates a web server. Metadata annotation in replays is enabled
// by cfg.FetchMetadata; without it the renderer runs offline.
func NewServer(cfg Config) *Server {
	var fetcher replay.Fetcher
	if cfg.FetchMetadata {
		fetcher = carddata.NewClient()
	}
	s := &Server{
		cfg:      cfg,
		renderer: replay.NewRenderer(replay.NewResolver(fetcher)),
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /", s.handleReplay)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// newGame builds a match from the request's deck1/deck2/seed/turns query
// parameters.
func (s *Server) newGame(r *http.Request, logger gamelog.EventLogger) (*game.Game, error) {
	deck1 := queryInt(r, "deck1", 1)
	deck2 := queryInt(r, "deck2", 2)
	seed := int64(queryInt(r, "seed", 1))
	maxTurns := queryInt(r, "turns", s.cfg.MaxTurns)

	nameOne, deckOne, err := game.DeckByNumber(s.cfg.DecksFile, deck1)
	if err != nil {
		return nil, err
	}
	nameTwo, deckTwo, err := game.DeckByNumber(s.cfg.DecksFile, deck2)
	if err != nil {
		return nil, err
	}
	playerOne := game.NewPlayer(nameOne, deckOne)
	playerTwo := game.NewPlayer(nameTwo, deckTwo)
	return game.NewGame(playerOne, playerTwo, game.Config{Seed: seed, MaxTurns: maxTurns, Logger: logger}), nil
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	start := time.Now()
	g, err := s.newGame(r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := g.Play()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	doc, err := s.renderer.RenderHTML(r.Context(), result.Snapshots)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, doc)
	log.Info().
		Str("winner", result.Winner.String()).
		Int("turns", g.TurnCount()).
		Dur("elapsed", time.Since(start)).
		Msg("served replay")
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	df, err := game.ReadDeckFile(s.cfg.DecksFile)
	if err != nil {
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}
	decks := make([]DeckInfo, len(df.Decks))
	for i, d := range df.Decks {
		decks[i] = DeckInfo{
			Number: i + 1,
			Name:   d.Name,
			Cards: lo.Uniq(lo.Map(d.Cards, func(c game.CardEntry, _ int) string {
				return c.Name
			})),
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decks)
}

// --- Websocket event streaming ---

type eventMessage struct {
	Type    string `json:"type"` // "event"
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Event   string `json:"event"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

type resultMessage struct {
	Type   string `json:"type"` // "result"
	Winner string `json:"winner"`
	Turns  int    `json:"turns"`
}

// streamLogger forwards every logged event over the websocket as it is
// produced. Write failures are latched; the match finishes regardless.
type streamLogger struct {
	gamelog.MemoryLogger
	ctx  context.Context
	conn *websocket.Conn
	err  error
}

func (l *streamLogger) Log(event gamelog.GameEvent) {
	l.MemoryLogger.Log(event)
	if l.err != nil {
		return
	}
	e := l.LastEvent()
	msg, err := json.Marshal(eventMessage{
		Type:    "event",
		Seq:     e.Seq,
		Turn:    e.Turn,
		Player:  e.Player,
		Event:   e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	})
	if err != nil {
		l.err = err
		return
	}
	l.err = l.conn.Write(l.ctx, websocket.MessageText, msg)
}

// handleWebSocket simulates a match and streams its event log as it is
// produced, one JSON message per event, followed by a result message.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow connections from any origin
	})
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	logger := &streamLogger{ctx: r.Context(), conn: conn}
	g, err := s.newGame(r, logger)
	if err != nil {
		conn.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}

	result, err := g.Play()
	if err != nil {
		conn.Close(websocket.StatusInternalError, err.Error())
		return
	}
	if logger.err != nil {
		return
	}

	msg, _ := json.Marshal(resultMessage{
		Type:   "result",
		Winner: result.Winner.String(),
		Turns:  g.TurnCount(),
	})
	if err := conn.Write(r.Context(), websocket.MessageText, msg); err != nil {
		return
	}
	conn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.cfg.Addr).Msg("replay server listening")
	return http.ListenAndServe(s.cfg.Addr, s.mux)
}

// Handler exposes the route mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
