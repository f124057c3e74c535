package bot

import (
	"math/rand"
	"sync"
	"time"

	"rpsarena/internal/domain"
)

// RandomBrain draws each choice uniformly at random.
type RandomBrain struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomBrain constructs a RandomBrain with provided rng or a time-seeded default.
func NewRandomBrain(rng *rand.Rand) *RandomBrain {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomBrain{rng: rng}
}

// Choose picks one of the three choices with equal probability.
func (b *RandomBrain) Choose() domain.Choice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.Choices[b.rng.Intn(len(domain.Choices))]
}

// FixedBrain replays a scripted sequence of choices, cycling when it runs out.
// It is meant for tests and demos.
type FixedBrain struct {
	Sequence []domain.Choice
	next     int
}

// NewFixedBrain returns a FixedBrain that plays the given choices in order.
func NewFixedBrain(choices ...domain.Choice) *FixedBrain {
	return &FixedBrain{Sequence: choices}
}

// Choose returns the next scripted choice. An empty script always plays rock.
func (b *FixedBrain) Choose() domain.Choice {
	if len(b.Sequence) == 0 {
		return domain.Rock
	}
	c := b.Sequence[b.next%len(b.Sequence)]
	b.next++
	return c
}
