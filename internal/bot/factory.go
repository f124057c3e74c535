package bot

import (
	"fmt"
	"math/rand"
)

// BotLevel selects a computer strategy.
type BotLevel int

const (
	// BotLevelRandom plays uniformly at random.
	BotLevelRandom BotLevel = iota
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	switch level {
	case BotLevelRandom:
		return NewRandomBrain(rng), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// SeededRand returns a source for a fixed seed. Seed 0 yields nil, which
// NewBrain treats as time-seeded.
func SeededRand(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}
