// Package mcp exposes the match simulator as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/lo"

	"github.com/peterkuimelis/poketcg/internal/carddata"
	"github.com/peterkuimelis/poketcg/internal/game"
	"github.com/peterkuimelis/poketcg/internal/replay"
)

// lastResult holds the most recent simulated match (one per stdio process),
// so render_replay can work on it without re-simulating.
var lastResult *game.GameResult

// decksFile is the path to the decks YAML file, set by main.
var decksFile string

// metadataClient resolves card ids for fetch_card.
var metadataClient = carddata.NewClient()

// SetDecksFile sets the path to the decks YAML file.
func SetDecksFile(path string) {
	decksFile = path
}

// RegisterTools adds all simulator tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(simulateMatchTool(), handleSimulateMatch)
	s.AddTool(listDecksTool(), handleListDecks)
	s.AddTool(renderReplayTool(), handleRenderReplay)
	s.AddTool(fetchCardTool(), handleFetchCard)
}

// --- Tool definitions ---

func simulateMatchTool() mcp.Tool {
	return mcp.NewTool("simulate_match",
		mcp.WithDescription("Simulate a complete Pokemon TCG match between two decks. "+
			"Returns the winner, the full narrative log and the number of board snapshots captured. "+
			"The same seed always reproduces the same match."),
		mcp.WithNumber("deck1", mcp.Required(), mcp.Description("Deck number for player 1 (1-indexed from decks.yaml)")),
		mcp.WithNumber("deck2", mcp.Required(), mcp.Description("Deck number for player 2 (1-indexed from decks.yaml)")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for deck shuffling; 0 or omitted picks a random seed")),
		mcp.WithNumber("max_turns", mcp.Description("Turn ceiling before the match is called a draw (default 100)")),
	)
}

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the decks available in the decks file, with their numbers and card names. Read-only."),
	)
}

func renderReplayTool() mcp.Tool {
	return mcp.NewTool("render_replay",
		mcp.WithDescription("Render the most recently simulated match as an HTML replay document. "+
			"Requires a prior simulate_match call in this session."),
		mcp.WithString("path", mcp.Description("File path to write the HTML to; when omitted the document is returned inline")),
	)
}

func fetchCardTool() mcp.Tool {
	return mcp.NewTool("fetch_card",
		mcp.WithDescription("Fetch name and image metadata for a card id from the official card database."),
		mcp.WithNumber("card_id", mcp.Required(), mcp.Description("Numeric card id on the official card search portal")),
	)
}

// --- Tool handlers ---

type matchSummary struct {
	Winner    string   `json:"winner"`
	Turns     int      `json:"turns"`
	Snapshots int      `json:"snapshots"`
	Log       []string `json:"log"`
}

func handleSimulateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deck1 := request.GetInt("deck1", 0)
	deck2 := request.GetInt("deck2", 0)
	seed := request.GetInt("seed", 0)
	maxTurns := request.GetInt("max_turns", 0)

	if deck1 < 1 || deck2 < 1 {
		return mcp.NewToolResultError("deck1 and deck2 must be >= 1"), nil
	}

	nameOne, deckOne, err := game.DeckByNumber(decksFile, deck1)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load deck %d: %v", deck1, err), nil
	}
	nameTwo, deckTwo, err := game.DeckByNumber(decksFile, deck2)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load deck %d: %v", deck2, err), nil
	}

	g := game.NewGame(
		game.NewPlayer(nameOne, deckOne),
		game.NewPlayer(nameTwo, deckTwo),
		game.Config{Seed: int64(seed), MaxTurns: maxTurns},
	)
	result, err := g.Play()
	if err != nil {
		return mcp.NewToolResultErrorf("Match failed: %v", err), nil
	}

	lastResult = &result

	return mcp.NewToolResultText(respondJSON(matchSummary{
		Winner:    result.Winner.String(),
		Turns:     g.TurnCount(),
		Snapshots: len(result.Snapshots),
		Log:       result.Log,
	})), nil
}

type deckSummary struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Cards  []string `json:"cards"`
}

func handleListDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	df, err := game.ReadDeckFile(decksFile)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to read decks file: %v", err), nil
	}
	decks := make([]deckSummary, len(df.Decks))
	for i, d := range df.Decks {
		decks[i] = deckSummary{
			Number: i + 1,
			Name:   d.Name,
			Cards: lo.Uniq(lo.Map(d.Cards, func(c game.CardEntry, _ int) string {
				return c.Name
			})),
		}
	}
	return mcp.NewToolResultText(respondJSON(decks)), nil
}

func handleRenderReplay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if lastResult == nil {
		return mcp.NewToolResultError("No match has been simulated. Use simulate_match first."), nil
	}

	renderer := replay.NewRenderer(replay.NewResolver(nil))
	path := strings.TrimSpace(request.GetString("path", ""))
	if path != "" {
		if err := renderer.WriteFile(ctx, lastResult.Snapshots, path); err != nil {
			return mcp.NewToolResultErrorf("Failed to write replay: %v", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Replay written to %s", path)), nil
	}

	doc, err := renderer.RenderHTML(ctx, lastResult.Snapshots)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to render replay: %v", err), nil
	}
	return mcp.NewToolResultText(doc), nil
}

func handleFetchCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID := request.GetInt("card_id", 0)
	if cardID < 1 {
		return mcp.NewToolResultError("card_id must be >= 1"), nil
	}
	card, err := metadataClient.Fetch(ctx, cardID)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to fetch card %d: %v", cardID, err), nil
	}
	return mcp.NewToolResultText(respondJSON(card)), nil
}

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
