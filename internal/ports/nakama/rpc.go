package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// CreateMatchRequest is the optional payload of the create-match RPC.
type CreateMatchRequest struct {
	Locale string `json:"locale"`
}

// CreateMatchResponse is returned to clients after a match is created.
type CreateMatchResponse struct {
	MatchID string `json:"match_id"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcCreateMatch, rpcCreateMatch)
}

// rpcCreateMatch creates a private match against the computer. Every caller
// gets a fresh match; the first user to join becomes its owner.
//
// Payload: (Optional) {"locale": "en"}
// Returns: {"match_id": "..."}
func rpcCreateMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req CreateMatchRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			logger.Warn("rpcCreateMatch [User:%s]: Invalid payload: %v", userID, err)
			return "", runtime.NewError("invalid payload", 3)
		}
	}

	params := map[string]interface{}{}
	if req.Locale != "" {
		params[MetadataKeyLocale] = req.Locale
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameRPS, params)
	if err != nil {
		logger.Error("rpcCreateMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("rpcCreateMatch [User:%s]: Created new match %s", userID, matchID)
	b, err := json.Marshal(CreateMatchResponse{MatchID: matchID})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
