package nakama

import (
	"bytes"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"rpsarena/internal/domain"
)

var errMissingChoice = errors.New("payload has no choice field")

// encodeFields marshals a flat field map as a google.protobuf.Struct.
func encodeFields(fields map[string]interface{}) ([]byte, error) {
	payload, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}
	return proto.Marshal(payload)
}

// decodeFields accepts either a JSON object or a binary google.protobuf.Struct.
func decodeFields(data []byte) (*structpb.Struct, error) {
	payload := &structpb.Struct{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := protojson.Unmarshal(trimmed, payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal json payload: %w", err)
		}
		return payload, nil
	}
	if err := proto.Unmarshal(data, payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal proto payload: %w", err)
	}
	return payload, nil
}

// decodeChoice extracts and validates the "choice" field of a submit payload.
func decodeChoice(data []byte) (domain.Choice, error) {
	payload, err := decodeFields(data)
	if err != nil {
		return "", err
	}
	value, ok := payload.GetFields()["choice"]
	if !ok {
		return "", errMissingChoice
	}
	choice, ok := domain.ParseChoice(value.GetStringValue())
	if !ok {
		return "", fmt.Errorf("unknown choice %q", value.GetStringValue())
	}
	return choice, nil
}

// snapshotFields describes the full match state for a (re)joining client.
func snapshotFields(state domain.MatchState, phase domain.Phase, computerName string) map[string]interface{} {
	return map[string]interface{}{
		"phase":               string(phase),
		"player_health":       state.PlayerHealth,
		"computer_health":     state.ComputerHealth,
		"player_rounds_won":   state.PlayerRoundsWon,
		"computer_rounds_won": state.ComputerRoundsWon,
		"active":              state.Active,
		"max_rounds":          domain.MaxRoundsToWin,
		"computer_name":       computerName,
	}
}

// labelJSON renders the match label advertised to the matchmaker.
func labelJSON(phase domain.Phase, occupied bool) (string, error) {
	label := domain.ComputeLabel(phase, occupied)
	payload, err := structpb.NewStruct(map[string]interface{}{
		MatchLabelKey_OpenSeats: label.Open,
		"game":                  label.Game,
		"phase":                 label.Phase,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
