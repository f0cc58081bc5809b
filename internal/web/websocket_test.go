package web

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketStreamsMatch(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?deck1=1&deck2=2&seed=7"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var events int
	var result resultMessage
	for {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)

		var probe struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(data, &probe))
		if probe.Type == "event" {
			events++
			continue
		}
		require.NoError(t, json.Unmarshal(data, &result))
		break
	}

	// At minimum the setup, opening and turn events came through.
	assert.Greater(t, events, 3)
	assert.Equal(t, "P1", result.Winner)
	assert.Greater(t, result.Turns, 0)
}
