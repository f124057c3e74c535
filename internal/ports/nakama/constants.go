package nakama

const (
	// RpcCreateMatch is the Nakama RPC id clients call to create a match against the computer.
	RpcCreateMatch = "rps_create_match"

	// MatchNameRPS is the authoritative match handler name registered with Nakama.
	MatchNameRPS = "rps_match"

	MatchLabelKey_OpenSeats = "open" // Key for the open seat flag in the match label

	// MetadataKeyLocale selects the message language in match params and join metadata.
	MetadataKeyLocale = "locale"

	// OwnerGraceSeconds is how long a match survives without any owner session.
	OwnerGraceSeconds = 30
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpSubmitChoice   int64 = 1
	OpNewMatch       int64 = 2
	OpMultiplayerSet int64 = 3

	// Server -> Client events
	OpChoiceImage   int64 = 101
	OpChoiceStyle   int64 = 102
	OpHealthBar     int64 = 103
	OpRoundCounter  int64 = 104
	OpMessage       int64 = 105
	OpInputEnabled  int64 = 106
	OpStateSnapshot int64 = 107 // sent to a joining or rejoining owner
	OpError         int64 = 199
)

// Error codes carried by OpError payloads.
const (
	ErrCodeBadRequest     = 400
	ErrCodeNotImplemented = 501
)
