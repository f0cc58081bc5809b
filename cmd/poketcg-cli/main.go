package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/peterkuimelis/poketcg/internal/carddata"
	"github.com/peterkuimelis/poketcg/internal/game"
	"github.com/peterkuimelis/poketcg/internal/replay"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "simulate":
		runSimulate(os.Args[2:])
	case "fetch":
		runFetch(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  poketcg simulate [--decks FILE] [--deck1 N] [--deck2 N] [--seed S] [--turns N] [--html FILE] [--fetch]")
	fmt.Println("  poketcg fetch --start N --end N")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  simulate    Run a full match and print its narrative log")
	fmt.Println("  fetch       Fetch card metadata for a range of card ids")
}

func runSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	decksFile := fs.String("decks", "decks.yaml", "path to decks YAML file")
	deck1 := fs.Int("deck1", 1, "deck number for player 1 (1-indexed)")
	deck2 := fs.Int("deck2", 2, "deck number for player 2 (1-indexed)")
	seed := fs.Int64("seed", 0, "RNG seed for shuffling (0 = random)")
	turns := fs.Int("turns", game.DefaultMaxTurns, "turn ceiling before the match is a draw")
	htmlPath := fs.String("html", "", "write an HTML replay to this path")
	fetchMeta := fs.Bool("fetch", false, "annotate the HTML replay with remote card metadata")
	fs.Parse(args)

	nameOne, deckOne, err := game.DeckByNumber(*decksFile, *deck1)
	if err != nil {
		fatal(err)
	}
	nameTwo, deckTwo, err := game.DeckByNumber(*decksFile, *deck2)
	if err != nil {
		fatal(err)
	}

	g := game.NewGame(
		game.NewPlayer(nameOne, deckOne),
		game.NewPlayer(nameTwo, deckTwo),
		game.Config{Seed: *seed, MaxTurns: *turns},
	)
	result, err := g.Play()
	if err != nil {
		fatal(err)
	}

	for _, line := range result.Log {
		fmt.Println(line)
	}

	if *htmlPath != "" {
		var fetcher replay.Fetcher
		if *fetchMeta {
			fetcher = carddata.NewClient()
		}
		renderer := replay.NewRenderer(replay.NewResolver(fetcher))
		if err := renderer.WriteFile(context.Background(), result.Snapshots, *htmlPath); err != nil {
			fatal(err)
		}
		log.Info().Str("path", *htmlPath).Msg("replay written")
	}
}

func runFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	start := fs.Int("start", 0, "first card id (inclusive)")
	end := fs.Int("end", 0, "last card id (exclusive)")
	fs.Parse(args)

	if *start < 1 || *end < *start {
		fatal(fmt.Errorf("fetch needs --start >= 1 and --end >= --start"))
	}

	client := carddata.NewClient()
	cards, err := client.FetchRange(context.Background(), *start, *end)
	if err != nil {
		fatal(err)
	}
	for _, card := range cards {
		fmt.Printf("%d\t%s\t%s\n", card.CardID, card.Name, card.ImageURL)
	}
	log.Info().Int("resolved", len(cards)).Int("requested", *end-*start).Msg("fetch complete")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
