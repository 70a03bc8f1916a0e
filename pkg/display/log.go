package display

import (
	"setgame-server/pkg/deck"
	"time"

	"github.com/sirupsen/logrus"
)

// Log writes the table events to a logger
// Countdown updates are only logged once per second, at the trace level
type Log struct {
	logger logrus.FieldLogger
	layout deck.Layout

	lastSecond int64
}

// NewLog returns a display that logs to logger
func NewLog(logger logrus.FieldLogger, layout deck.Layout) *Log {
	return &Log{
		logger:     logger,
		layout:     layout,
		lastSecond: -1,
	}
}

var _ Display = &Log{}

// PlaceCard logs the card
func (l *Log) PlaceCard(card deck.Card, slot int) {
	l.logger.WithFields(logrus.Fields{
		"slot": slot,
		"card": l.layout.Describe(card),
	}).Debug("card placed")
}

// RemoveCard logs the slot
func (l *Log) RemoveCard(slot int) {
	l.logger.WithField("slot", slot).Debug("card removed")
}

// PlaceClaim logs the claim
func (l *Log) PlaceClaim(playerID, slot int) {
	l.logger.WithFields(logrus.Fields{
		"player": playerID,
		"slot":   slot,
	}).Debug("claim placed")
}

// RemoveClaim logs the claim
func (l *Log) RemoveClaim(playerID, slot int) {
	l.logger.WithFields(logrus.Fields{
		"player": playerID,
		"slot":   slot,
	}).Debug("claim removed")
}

// RemoveClaims logs the slot
func (l *Log) RemoveClaims(slot int) {
	l.logger.WithField("slot", slot).Trace("claims cleared")
}

// SetCountdown logs the whole seconds remaining
// NOTE: only the dealer calls this, so lastSecond is not locked
func (l *Log) SetCountdown(remaining time.Duration, warn bool) {
	second := int64(remaining / time.Second)
	if second == l.lastSecond {
		return
	}

	l.lastSecond = second
	l.logger.WithFields(logrus.Fields{
		"remaining": remaining.Round(time.Second).String(),
		"warn":      warn,
	}).Trace("countdown")
}

// SetFreeze logs the freeze
func (l *Log) SetFreeze(playerID int, remaining time.Duration) {
	l.logger.WithFields(logrus.Fields{
		"player":    playerID,
		"remaining": remaining.Round(time.Second).String(),
	}).Trace("freeze")
}

// SetScore logs the score
func (l *Log) SetScore(playerID, score int) {
	l.logger.WithFields(logrus.Fields{
		"player": playerID,
		"score":  score,
	}).Info("score")
}

// AnnounceWinners logs the winners
func (l *Log) AnnounceWinners(playerIDs []int) {
	l.logger.WithField("winners", playerIDs).Info("game over")
}
