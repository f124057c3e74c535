package bot

import (
	"rpsarena/internal/domain"
)

// Brain is the interface that all computer strategies must implement.
type Brain interface {
	// Choose returns the computer's choice for the next turn.
	Choose() domain.Choice
}
