package domain

import "time"

// Fixed game tuning. These are not runtime configurable.
const (
	// MaxRoundsToWin is the number of round wins that ends a match.
	MaxRoundsToWin = 10
	// InitialHealth is the health each side starts every round with.
	InitialHealth = 100
	// DamagePerHit is subtracted from the loser of a turn.
	DamagePerHit = 20

	// RoundEndDelay is the pause between the final hit of a round and the round-end message.
	RoundEndDelay = 1000 * time.Millisecond
	// NextRoundDelay is the pause between the round-end message and the next round.
	NextRoundDelay = 1500 * time.Millisecond
)
