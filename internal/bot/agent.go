package bot

import (
	"rpsarena/internal/domain"
)

// ComputerName is the default display name of the computer opponent.
const ComputerName = "CPU"

// Agent represents the computer opponent of a match.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent around a brain. A nil brain falls back to a time-seeded RandomBrain.
func NewAgent(id, name string, strategy Brain) *Agent {
	if strategy == nil {
		strategy = NewRandomBrain(nil)
	}
	if name == "" {
		name = ComputerName
	}
	return &Agent{ID: id, Name: name, Strategy: strategy}
}

// Play asks the agent for its choice on the current turn.
func (a *Agent) Play() domain.Choice {
	return a.Strategy.Choose()
}
