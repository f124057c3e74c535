package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseIdle is the state of an engine before its first match starts.
	PhaseIdle Phase = "idle"
	// PhaseActive accepts choices from the player.
	PhaseActive Phase = "active"
	// PhaseRoundEnding blocks input while the round-end message is pending.
	PhaseRoundEnding Phase = "round_ending"
	// PhaseRoundTransition blocks input until the next round starts.
	PhaseRoundTransition Phase = "round_transition"
	// PhaseMatchOver is terminal until a new match is started.
	PhaseMatchOver Phase = "match_over"
)

// Choice is one of the three hand shapes.
type Choice string

const (
	Rock     Choice = "rock"
	Paper    Choice = "paper"
	Scissors Choice = "scissors"
)

// Choices lists every valid choice in draw order.
var Choices = [...]Choice{Rock, Paper, Scissors}

// Side identifies one of the two combatants.
type Side string

const (
	SidePlayer   Side = "player"
	SideComputer Side = "computer"
)

// Sides lists both combatants, player first.
var Sides = [...]Side{SidePlayer, SideComputer}

// TurnOutcome is the result of a single exchange of choices.
type TurnOutcome string

const (
	PlayerWins   TurnOutcome = "player"
	ComputerWins TurnOutcome = "computer"
	Tie          TurnOutcome = "tie"
)

// StyleClass is the visual marker applied to a side's choice display.
type StyleClass string

const (
	StyleNone   StyleClass = "" // cleared
	StyleTie    StyleClass = "tie"
	StyleWinner StyleClass = "winner"
	StyleLoser  StyleClass = "loser"
)

// MatchState holds the health and round counters of one match.
type MatchState struct {
	PlayerHealth      int  `json:"player_health"`
	ComputerHealth    int  `json:"computer_health"`
	PlayerRoundsWon   int  `json:"player_rounds_won"`
	ComputerRoundsWon int  `json:"computer_rounds_won"`
	Active            bool `json:"active"`
}
