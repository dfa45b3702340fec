package bot

import (
	"fmt"
	"math/rand"
	"time"
)

// BotLevel selects a strategy difficulty.
type BotLevel int

const (
	BotLevelEasy BotLevel = iota
	BotLevelGood
)

// NewBrain creates a strategy for the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelEasy:
		return &RandomBot{Rng: rand.New(rand.NewSource(time.Now().UnixNano()))}, nil
	case BotLevelGood:
		return &GreedyBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
