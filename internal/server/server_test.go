package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/poker"
)

func TestMessageForTranslatesEvents(t *testing.T) {
	t.Parallel()

	msg := messageFor(engine.HandStarted{HandID: 3, Variant: "PLO", Button: 1})
	assert.Equal(t, "hand_started", msg.Type)
	assert.Equal(t, handStartedData{HandID: 3, Variant: "PLO", Button: 1}, msg.Data)

	msg = messageFor(engine.ShowdownReveal{
		Seat:  2,
		Cards: poker.MustParseCards("As Kd"),
		Desc:  "Pair of Aces",
	})
	assert.Equal(t, "showdown", msg.Type)
	assert.Equal(t, showdownData{Seat: 2, Cards: "As Kd", Desc: "Pair of Aces"}, msg.Data)

	msg = messageFor(engine.ActionTaken{Seat: 0, Action: engine.Raise, Amount: 60, Round: 0})
	assert.Equal(t, "action", msg.Type)
	assert.Equal(t, actionTakenData{Seat: 0, Action: "raise", Amount: 60, Round: 0}, msg.Data)
}

func TestBroadcastReachesSpectators(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster("", log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.pump(ctx)

	ts := httptest.NewServer(http.HandlerFunc(b.handleWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The client registers just after the handshake completes; wait for it.
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.clients) == 1
	}, time.Second, 5*time.Millisecond)

	b.OnEvent(engine.PotAwarded{Seat: 1, Amount: 500, Pot: 0})

	var got struct {
		Type string         `json:"type"`
		Data potAwardedData `json:"data"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "pot_awarded", got.Type)
	assert.Equal(t, potAwardedData{Seat: 1, Amount: 500, Pot: 0}, got.Data)
}

func TestEventQueueDropsWhenFull(t *testing.T) {
	t.Parallel()

	b := NewBroadcaster("", log.New(io.Discard))
	// No pump running: fill the queue and confirm OnEvent never blocks.
	for i := 0; i < 2000; i++ {
		b.OnEvent(engine.HandEnded{HandID: uint64(i)})
	}
}
