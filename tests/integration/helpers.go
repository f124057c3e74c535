package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/rtapi"
	"github.com/heroiclabs/nakama-go/v2"
)

const (
	ServerKey = "defaultkey"
	Host      = "127.0.0.1"
	Port      = 7350

	// EnvEnable must be "1" for tests that need a running Nakama server.
	EnvEnable = "RPS_INTEGRATION"

	RpcCreateMatch = "rps_create_match"

	OpSubmitChoice int64 = 1
	OpChoiceImage  int64 = 101
	OpMessage      int64 = 105
)

type createMatchRequest struct {
	Locale string `json:"locale,omitempty"`
}

type createMatchResponse struct {
	MatchID string `json:"match_id"`
}

type TestClient struct {
	Client  *nakama.Client
	Session *nakama.Session
	Socket  *nakama.Socket
	UserID  string

	events chan *rtapi.MatchData
}

// requireServer skips the test unless integration tests are enabled.
func requireServer(t *testing.T) {
	t.Helper()
	if os.Getenv(EnvEnable) != "1" {
		t.Skipf("set %s=1 to run against a live Nakama server", EnvEnable)
	}
}

func NewTestClient(t *testing.T) *TestClient {
	client := nakama.NewClient(ServerKey, Host, Port, false)

	deviceID := fmt.Sprintf("rps_test_device_%d", time.Now().UnixNano())

	session, err := client.AuthenticateDevice(context.Background(), deviceID, true, "")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}

	socket := client.NewSocket()
	if err := socket.Connect(context.Background(), session, true); err != nil {
		t.Fatalf("Failed to connect socket: %v", err)
	}

	tc := &TestClient{
		Client:  client,
		Session: session,
		Socket:  socket,
		UserID:  session.UserId,
		events:  make(chan *rtapi.MatchData, 256),
	}
	socket.OnMatchData = func(data *rtapi.MatchData) {
		tc.events <- data
	}
	return tc
}

func (tc *TestClient) Close() {
	if tc.Socket != nil {
		tc.Socket.Close()
	}
}

// CreateAndJoinMatch calls the create-match RPC and joins the returned match.
func (tc *TestClient) CreateAndJoinMatch(t *testing.T, locale string) string {
	payload, _ := json.Marshal(createMatchRequest{Locale: locale})
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, RpcCreateMatch, string(payload))
	if err != nil {
		t.Fatalf("RPC %s failed: %v", RpcCreateMatch, err)
	}

	var resp createMatchResponse
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil || resp.MatchID == "" {
		t.Fatalf("RPC %s returned %q: %v", RpcCreateMatch, rpc.Payload, err)
	}

	if _, err := tc.Socket.JoinMatch(context.Background(), nil, resp.MatchID, nil); err != nil {
		t.Fatalf("Failed to join match %s: %v", resp.MatchID, err)
	}
	return resp.MatchID
}

// WaitForOpCode returns the next event with the given opcode, discarding others.
func (tc *TestClient) WaitForOpCode(t *testing.T, opCode int64, timeout time.Duration) *rtapi.MatchData {
	deadline := time.After(timeout)
	for {
		select {
		case data := <-tc.events:
			if data.OpCode == opCode {
				return data
			}
		case <-deadline:
			t.Fatalf("Timeout waiting for OpCode %d", opCode)
			return nil
		}
	}
}
