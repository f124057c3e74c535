package domain

// GameName is advertised in match labels.
const GameName = "rps"

// LabelPayload produces the values needed for match label advertisement.
type LabelPayload struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ComputeLabel derives the advertised label from the match phase and seat occupancy.
func ComputeLabel(phase Phase, occupied bool) LabelPayload {
	return LabelPayload{Open: !occupied, Game: GameName, Phase: string(phase)}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideComputer
	}
	return SidePlayer
}
