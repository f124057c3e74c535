package app

import "rpsarena/internal/domain"

// TurnResult describes one resolved turn and the state it left behind.
type TurnResult struct {
	PlayerChoice   domain.Choice
	ComputerChoice domain.Choice
	Outcome        domain.TurnOutcome
	State          domain.MatchState

	// RoundOver is set when the turn brought a side to zero health.
	RoundOver   bool
	RoundWinner domain.Side
}
