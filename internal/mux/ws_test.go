package mux

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

type wsMessage struct {
	Key  string          `json:"key"`
	Data json.RawMessage `json:"data"`
}

func TestWSHandler(t *testing.T) {
	a := assert.New(t)

	m, _, spectators := newTestMux(t)
	spectators.PlaceCard(7, 0)

	ts := httptest.NewServer(m)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if !a.NoError(err) {
		return
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg wsMessage
	a.NoError(conn.ReadJSON(&msg))
	a.Equal("snapshot", msg.Key)

	var snap struct {
		Slots []int `json:"slots"`
	}
	a.NoError(json.Unmarshal(msg.Data, &snap))
	if a.Equal(12, len(snap.Slots)) {
		a.Equal(7, snap.Slots[0])
		a.Equal(-1, snap.Slots[1])
	}

	a.Equal(1, spectators.Count())

	spectators.PlaceCard(40, 3)
	a.NoError(conn.ReadJSON(&msg))
	a.Equal("placeCard", msg.Key)
	a.JSONEq(`{"slot":3,"card":40}`, string(msg.Data))

	spectators.PlaceClaim(1, 3)
	a.NoError(conn.ReadJSON(&msg))
	a.Equal("placeClaim", msg.Key)
	a.JSONEq(`{"slot":3,"playerId":1}`, string(msg.Data))

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()

	a.Eventually(func() bool { return spectators.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
