// Package replay renders a completed match's snapshot timeline as a
// self-contained HTML document.
package replay

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/peterkuimelis/poketcg/internal/carddata"
	"github.com/peterkuimelis/poketcg/internal/game"
)

// ErrNoSnapshots is returned when rendering is attempted with no snapshots.
var ErrNoSnapshots = errors.New("no snapshots to render")

var documentTemplate = template.Must(template.New("replay").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8" />
<title>Pokemon TCG Replay</title>
<style>
body { font-family: 'Segoe UI', sans-serif; background: #f5f5f5; margin: 0; padding: 2rem; }
section { background: #ffffff; border-radius: 8px; padding: 1.5rem; margin-bottom: 1.5rem; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
section h2 { margin-top: 0; }
.player { display: flex; gap: 1rem; align-items: center; margin-top: 1rem; }
.player img { width: 120px; border-radius: 4px; box-shadow: 0 1px 3px rgba(0,0,0,0.2); }
.player .info { background: #f0f4ff; padding: 0.75rem 1rem; border-radius: 6px; flex: 1; }
small { color: #3366cc; display: block; margin-top: 0.5rem; word-break: break-all; }
</style>
</head>
<body>
<h1>Pokemon TCG Replay</h1>
{{range .Sections}}<section>
<h2>ステップ {{.Index}}: Turn {{.TurnCount}} ({{.TurnLabel}})</h2>
<p>{{.Description}}</p>
{{range .Players}}<div class="player">
{{if .Metadata}}<img src="{{.Metadata.ImageURL}}" alt="{{.Metadata.Name}}" />{{else}}<div class="placeholder">画像なし</div>{{end}}
<div class="info">
<strong>{{.Name}}</strong><br />
{{.ActiveLabel}} {{.ActiveHP}}<br />
<span>{{.Stats}}</span>
{{if .Metadata}}<small>参照: <a href="{{.Metadata.DetailURL}}" target="_blank" rel="noopener">{{.Metadata.DetailURL}}</a></small>{{end}}
</div>
</div>
{{end}}</section>
{{end}}</body>
</html>
`))

type documentView struct {
	Sections []sectionView
}

type sectionView struct {
	Index       int
	TurnCount   int
	TurnLabel   string
	Description string
	Players     []playerView
}

type playerView struct {
	Name        string
	ActiveLabel string
	ActiveHP    string
	Stats       string
	Metadata    *carddata.RemoteCard
}

// Renderer renders a match timeline as an HTML document, annotating each
// player's active card with metadata resolved through the remote client.
type Renderer struct {
	resolver *Resolver
}

// NewRenderer creates a renderer. A nil resolver defaults to one backed by
// the real metadata client.
func NewRenderer(resolver *Resolver) *Renderer {
	if resolver == nil {
		resolver = NewResolver(carddata.NewClient())
	}
	return &Renderer{resolver: resolver}
}

// RenderHTML builds the replay document for the snapshot sequence.
func (r *Renderer) RenderHTML(ctx context.Context, snapshots []game.GameSnapshot) (string, error) {
	if len(snapshots) == 0 {
		return "", ErrNoSnapshots
	}
	view := documentView{Sections: make([]sectionView, len(snapshots))}
	for i, snapshot := range snapshots {
		view.Sections[i] = r.buildSection(ctx, i+1, snapshot)
	}
	var sb strings.Builder
	if err := documentTemplate.Execute(&sb, view); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteFile renders the document and writes it to path.
func (r *Renderer) WriteFile(ctx context.Context, snapshots []game.GameSnapshot, path string) error {
	doc, err := r.RenderHTML(ctx, snapshots)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(doc), 0644)
}

func (r *Renderer) buildSection(ctx context.Context, index int, snapshot game.GameSnapshot) sectionView {
	section := sectionView{
		Index:       index,
		TurnCount:   snapshot.TurnCount,
		TurnLabel:   snapshot.ActiveTurn.String(),
		Description: snapshot.Description,
	}
	for _, t := range []game.Turn{game.PlayerOne, game.PlayerTwo} {
		section.Players = append(section.Players, r.buildPlayer(ctx, snapshot.Player(t)))
	}
	return section
}

func (r *Renderer) buildPlayer(ctx context.Context, player game.PlayerSnapshot) playerView {
	view := playerView{
		Name:        player.Name,
		ActiveLabel: "バトル場なし",
		Stats: fmt.Sprintf("手札 %d / 山札 %d / トラッシュ %d / サイド %d",
			player.HandSize, player.DeckSize, player.DiscardSize, player.PrizesRemaining),
		Metadata: r.resolver.Resolve(ctx, player.ActiveExternalID),
	}
	if player.ActiveName != "" {
		view.ActiveLabel = player.ActiveName
		view.ActiveHP = fmt.Sprintf("HP %d", player.ActiveHP)
	}
	return view
}
