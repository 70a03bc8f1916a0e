package playable

import (
	"fmt"
	"setgame-server/pkg/deck"
	"time"

	"github.com/google/uuid"
)

// Response is the envelope every event is sent to spectators in
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// LogMessage is a game log line
// If PlayerIDs is empty, it's a general statement, otherwise the message is about those players
type LogMessage struct {
	UUID      string      `json:"uuid"`
	PlayerIDs []int       `json:"playerIds"`
	Cards     []deck.Card `json:"cards"`
	Message   string      `json:"message"`
	Time      time.Time   `json:"time"`
}

// SimpleLogMessage returns a new LogMessage
// Pass a negative playerID for a message that isn't about a player
func SimpleLogMessage(playerID int, format string, a ...interface{}) *LogMessage {
	var playerIDs []int
	if playerID >= 0 {
		playerIDs = []int{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

// WithCards attaches cards to the log message
func (l *LogMessage) WithCards(cards ...deck.Card) *LogMessage {
	l.Cards = cards
	return l
}
