package config

import (
	"errors"
	"fmt"
	"os"
	"setgame-server/internal/util"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the game
type Config struct {
	loaded bool
	Game   struct {
		TurnTimeout        time.Duration `yaml:"turnTimeout" envconfig:"turn_timeout"`
		TurnTimeoutWarning time.Duration `yaml:"turnTimeoutWarning" envconfig:"turn_timeout_warning"`
		PointFreeze        time.Duration `yaml:"pointFreeze" envconfig:"point_freeze"`
		PenaltyFreeze      time.Duration `yaml:"penaltyFreeze" envconfig:"penalty_freeze"`
		TableSize          int           `yaml:"tableSize" envconfig:"table_size"`
		FeatureSize        int           `yaml:"featureSize" envconfig:"feature_size"`
		FeatureCount       int           `yaml:"featureCount" envconfig:"feature_count"`
		// DeckSize limits the deck to the first DeckSize cards; 0 uses every card
		DeckSize     int           `yaml:"deckSize" envconfig:"deck_size"`
		Hints        bool          `yaml:"hints"`
		EndGamePause time.Duration `yaml:"endGamePause" envconfig:"end_game_pause"`
	} `yaml:"game"`
	Players struct {
		Human              int           `yaml:"human"`
		Computer           int           `yaml:"computer"`
		Names              []string      `yaml:"names"`
		ComputerThinkDelay time.Duration `yaml:"computerThinkDelay" envconfig:"computer_think_delay"`
	} `yaml:"players"`
	Spectator struct {
		Addr string `yaml:"addr"`
	} `yaml:"spectator"`
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

// MaxHumans is the number of human players the keyboard has key maps for
const MaxHumans = 2

var config Config

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	cfg := Config{}
	cfg.Game.TurnTimeout = time.Minute
	cfg.Game.TurnTimeoutWarning = 5 * time.Second
	cfg.Game.PointFreeze = time.Second
	cfg.Game.PenaltyFreeze = 3 * time.Second
	cfg.Game.TableSize = 12
	cfg.Game.FeatureSize = 3
	cfg.Game.FeatureCount = 4
	cfg.Game.EndGamePause = 5 * time.Second
	cfg.Players.Human = 2
	cfg.Log.Level = "info"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The defaults are overlaid with the config file (if it exists) and then the environment
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("SET_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("set", &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

// DeckSize returns the number of cards in play
func (c Config) DeckSize() int {
	full := 1
	for i := 0; i < c.Game.FeatureCount; i++ {
		full *= c.Game.FeatureSize
	}

	if c.Game.DeckSize > 0 && c.Game.DeckSize < full {
		return c.Game.DeckSize
	}

	return full
}

// Validate returns an error if the configuration cannot run a game
func (c Config) Validate() error {
	if c.Game.TurnTimeout <= 0 {
		return errors.New("game.turnTimeout must be greater than 0")
	}

	if c.Game.TurnTimeoutWarning < 0 || c.Game.TurnTimeoutWarning > c.Game.TurnTimeout {
		return errors.New("game.turnTimeoutWarning must be between 0 and game.turnTimeout")
	}

	if c.Game.PointFreeze < 0 || c.Game.PenaltyFreeze < 0 {
		return errors.New("freeze durations cannot be negative")
	}

	if c.Game.TableSize < 3 {
		return fmt.Errorf("game.tableSize must be at least 3, got %d", c.Game.TableSize)
	}

	if c.Game.FeatureSize < 3 || c.Game.FeatureCount < 1 {
		return errors.New("cards need at least one feature with at least three values")
	}

	if c.Players.Human < 0 || c.Players.Computer < 0 || c.Players.Human+c.Players.Computer == 0 {
		return errors.New("the game needs at least one player")
	}

	if c.Players.Human > MaxHumans {
		return fmt.Errorf("at most %d human players can share the keyboard", MaxHumans)
	}

	return nil
}
