package ports

import "rpsarena/internal/domain"

// Presenter is the rendering boundary the match engine notifies of state changes.
// Implementations must not call back into the engine.
type Presenter interface {
	// SetChoiceImage shows the choice a side made, or clears it when choice is nil.
	SetChoiceImage(side domain.Side, choice *domain.Choice)

	// SetChoiceStyle applies a tie/winner/loser marker to a side's choice display.
	// domain.StyleNone clears the marker.
	SetChoiceStyle(side domain.Side, style domain.StyleClass)

	// SetHealthBar renders a side's health as a percentage of full health.
	// A value of 0 is rendered as critical.
	SetHealthBar(side domain.Side, percent int)

	// SetRoundCounterText renders the number of rounds a side has won.
	SetRoundCounterText(side domain.Side, count int)

	// ShowMessage renders a localized result or status message.
	ShowMessage(text string)

	// SetInputEnabled enables or disables the three choice controls.
	SetInputEnabled(enabled bool)
}
