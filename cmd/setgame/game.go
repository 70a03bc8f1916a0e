package main

import (
	"setgame-server/internal/config"
	"setgame-server/internal/rng"
	"setgame-server/internal/util"
	"setgame-server/pkg/deck"
	"setgame-server/pkg/display"
	"setgame-server/pkg/playable"
	"setgame-server/pkg/room"

	"github.com/sirupsen/logrus"
)

func layout(cfg config.Config) deck.Layout {
	return deck.Layout{
		FeatureSize:  cfg.Game.FeatureSize,
		FeatureCount: cfg.Game.FeatureCount,
	}
}

func options(cfg config.Config) room.Options {
	return room.Options{
		TurnTimeout:        cfg.Game.TurnTimeout,
		TurnTimeoutWarning: cfg.Game.TurnTimeoutWarning,
		PointFreeze:        cfg.Game.PointFreeze,
		PenaltyFreeze:      cfg.Game.PenaltyFreeze,
		TableSize:          cfg.Game.TableSize,
		DeckSize:           cfg.DeckSize(),
		Hints:              cfg.Game.Hints,
	}
}

// newGame creates the dealer and seats the players
// Humans are seated first so that their IDs line up with the key maps
func newGame(cfg config.Config, gen rng.Generator, disp display.Display, logger logrus.FieldLogger) (*room.Dealer, error) {
	dealer, err := room.NewDealer(options(cfg), playable.NewSetRule(layout(cfg)), gen, disp, logger)
	if err != nil {
		return nil, err
	}

	names := cfg.Players.Names
	name := func(i int) string {
		if i < len(names) && names[i] != "" {
			return names[i]
		}

		return util.GetRandomName(gen)
	}

	for i := 0; i < cfg.Players.Human; i++ {
		dealer.AddPlayer(name(i), true, 0)
	}

	for i := 0; i < cfg.Players.Computer; i++ {
		dealer.AddPlayer(name(cfg.Players.Human+i), false, cfg.Players.ComputerThinkDelay)
	}

	return dealer, nil
}
