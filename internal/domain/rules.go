package domain

import "strings"

// beats maps each choice to the one it defeats.
var beats = map[Choice]Choice{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// Valid reports whether c is one of the three choices.
func (c Choice) Valid() bool {
	_, ok := beats[c]
	return ok
}

// Beats reports whether c defeats other.
func (c Choice) Beats(other Choice) bool {
	return beats[c] == other
}

// DetermineTurnWinner resolves a turn using the beats-relation.
func DetermineTurnWinner(player, computer Choice) TurnOutcome {
	switch {
	case player == computer:
		return Tie
	case player.Beats(computer):
		return PlayerWins
	default:
		return ComputerWins
	}
}

// choiceAliases accepts the short forms and the Spanish names used by the web client.
var choiceAliases = map[string]Choice{
	"rock":     Rock,
	"r":        Rock,
	"piedra":   Rock,
	"paper":    Paper,
	"p":        Paper,
	"papel":    Paper,
	"scissors": Scissors,
	"s":        Scissors,
	"tijera":   Scissors,
	"tijeras":  Scissors,
}

// ParseChoice maps user input to a Choice. The bool is false for unknown input.
func ParseChoice(input string) (Choice, bool) {
	c, ok := choiceAliases[strings.ToLower(strings.TrimSpace(input))]
	return c, ok
}

// StylesFor returns the player and computer style markers for an outcome.
func StylesFor(outcome TurnOutcome) (player, computer StyleClass) {
	switch outcome {
	case PlayerWins:
		return StyleWinner, StyleLoser
	case ComputerWins:
		return StyleLoser, StyleWinner
	default:
		return StyleTie, StyleTie
	}
}
