package domain

// NewMatchState returns a fresh, active match at full health.
func NewMatchState() MatchState {
	return MatchState{
		PlayerHealth:   InitialHealth,
		ComputerHealth: InitialHealth,
		Active:         true,
	}
}

// Reset restores full health, clears both round counters and activates the match.
func (s *MatchState) Reset() {
	*s = NewMatchState()
}

// ResetHealth restores full health without touching the round counters.
func (s *MatchState) ResetHealth() {
	s.PlayerHealth = InitialHealth
	s.ComputerHealth = InitialHealth
}

// ApplyOutcome subtracts DamagePerHit from the loser of the turn, floored at 0.
// A tie changes nothing.
func (s *MatchState) ApplyOutcome(outcome TurnOutcome) {
	switch outcome {
	case PlayerWins:
		s.ComputerHealth = max(s.ComputerHealth-DamagePerHit, 0)
	case ComputerWins:
		s.PlayerHealth = max(s.PlayerHealth-DamagePerHit, 0)
	}
}

// Health returns the current health of a side.
func (s *MatchState) Health(side Side) int {
	if side == SideComputer {
		return s.ComputerHealth
	}
	return s.PlayerHealth
}

// RoundsWon returns the round counter of a side.
func (s *MatchState) RoundsWon(side Side) int {
	if side == SideComputer {
		return s.ComputerRoundsWon
	}
	return s.PlayerRoundsWon
}

// RoundOver reports whether either side has reached zero health.
func (s *MatchState) RoundOver() bool {
	return s.PlayerHealth <= 0 || s.ComputerHealth <= 0
}

// RoundWinner decides who takes a finished round.
// The player's health is checked first, so when both sides reach zero in the same
// turn the round goes to the computer.
func (s *MatchState) RoundWinner() Side {
	if s.PlayerHealth <= 0 {
		return SideComputer
	}
	return SidePlayer
}

// AwardRound increments the round counter of the winner.
func (s *MatchState) AwardRound(winner Side) {
	if winner == SideComputer {
		s.ComputerRoundsWon++
		return
	}
	s.PlayerRoundsWon++
}

// MatchWinner returns the side that reached MaxRoundsToWin, if any.
func (s *MatchState) MatchWinner() (Side, bool) {
	switch {
	case s.PlayerRoundsWon >= MaxRoundsToWin:
		return SidePlayer, true
	case s.ComputerRoundsWon >= MaxRoundsToWin:
		return SideComputer, true
	}
	return "", false
}
