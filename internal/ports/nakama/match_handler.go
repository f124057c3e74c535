package nakama

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rpsarena/internal/app"
	"rpsarena/internal/bot"
	"rpsarena/internal/config"
	"rpsarena/internal/domain"
	"rpsarena/internal/i18n"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	OwnerUserID      string                      `json:"owner_user_id"`      // The single human playing this match, reserved on the first join attempt
	OwnerAbsentSince int64                       `json:"owner_absent_since"` // Tick since which no owner session is connected, -1 while connected
	Tick             int64                       `json:"tick"`               // Current tick of the match
	TickRate         int                         `json:"tick_rate"`          // Ticks per second; drives the engine clock
	Locale           string                      `json:"locale"`             // Message language for this match
	LabelPhase       domain.Phase                `json:"label_phase"`        // Phase last advertised in the label
	Presences        map[string]runtime.Presence `json:"-"`                  // Map SessionId -> Presence of the owner's sessions
	Engine           *app.Engine                 `json:"-"`                  // Rock-paper-scissors match engine
	Clock            *app.ManualClock            `json:"-"`                  // Engine scheduler, advanced once per tick
	Presenter        *dispatcherPresenter        `json:"-"`                  // Sends engine notifications to the owner
}

// ownerPresences returns every connected session of the owner.
func (ms *MatchState) ownerPresences() []runtime.Presence {
	out := make([]runtime.Presence, 0, len(ms.Presences))
	for _, p := range ms.Presences {
		out = append(out, p)
	}
	return out
}

// graceTicks is how long the match waits for an absent owner.
func (ms *MatchState) graceTicks() int64 {
	return int64(OwnerGraceSeconds) * int64(max(ms.TickRate, 1))
}

// tickDuration is the wall time represented by one match loop tick.
func (ms *MatchState) tickDuration() time.Duration {
	if ms.TickRate <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(ms.TickRate)
}

// newMatchState wires an engine, clock and presenter for one match.
// brain may be nil to use a RandomBrain seeded from config.
func newMatchState(logger runtime.Logger, matchID, locale string, tickRate int, brain bot.Brain) *MatchState {
	printer := i18n.PrinterFor(locale)
	presenter := newDispatcherPresenter(logger, printer)
	clock := app.NewManualClock()

	if brain == nil {
		var err error
		brain, err = bot.NewBrain(bot.BotLevelRandom, bot.SeededRand(config.GetGameConfig().Seed))
		if err != nil {
			logger.Error("newMatchState: %v", err)
		}
	}

	opts := []app.Option{
		app.WithAgent(bot.NewAgent("", bot.ComputerName, brain)),
		app.WithLogger(logger),
		app.WithPrinter(printer),
	}
	if matchID != "" {
		opts = append(opts, app.WithID(matchID))
	}

	// Nobody is connected yet; the grace period also bounds a match nobody joins.
	return &MatchState{
		OwnerAbsentSince: 0,
		TickRate:         tickRate,
		Locale:           i18n.ResolveTag(locale).String(),
		LabelPhase:       domain.PhaseIdle,
		Presences:        make(map[string]runtime.Presence),
		Engine:           app.NewEngine(presenter, clock, opts...),
		Clock:            clock,
		Presenter:        presenter,
	}
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return newMatchHandler(), nil
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	cfg := config.GetGameConfig()
	locale := cfg.Locale
	if val, ok := params[MetadataKeyLocale].(string); ok && val != "" {
		locale = val
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	state := newMatchState(logger, matchID, locale, cfg.TickRate, nil)

	label, err := labelJSON(state.LabelPhase, false)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, state.TickRate, label
}

// MatchJoinAttempt admits the owner (including rejoins) and rejects everyone else.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.OwnerUserID != "" && matchState.OwnerUserID != presence.GetUserId() {
		return state, false, "Match full"
	}

	// The first joiner may pick the message language before the match starts.
	if locale := metadata[MetadataKeyLocale]; locale != "" && matchState.Engine.Phase() == domain.PhaseIdle {
		if tag := i18n.ResolveTag(locale).String(); tag != matchState.Locale {
			logger.Debug("MatchJoinAttempt: Switching locale %s -> %s.", matchState.Locale, tag)
			switched := newMatchState(logger, matchState.Engine.ID(), locale, matchState.TickRate, matchState.Engine.Agent().Strategy)
			switched.OwnerUserID = matchState.OwnerUserID
			switched.OwnerAbsentSince = matchState.OwnerAbsentSince
			matchState = switched
		}
	}

	// Reserve the seat now so a concurrent attempt by another user is rejected.
	if matchState.OwnerUserID == "" {
		matchState.OwnerUserID = presence.GetUserId()
		logger.Debug("MatchJoinAttempt: Seat reserved for %s.", presence.GetUserId())
	}

	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}
	matchState.Presenter.bind(dispatcher)

	var joined []runtime.Presence
	for _, p := range presences {
		if matchState.OwnerUserID == "" {
			matchState.OwnerUserID = p.GetUserId()
			logger.Debug("MatchJoin: Owner set to %s.", p.GetUserId())
		}
		if p.GetUserId() != matchState.OwnerUserID {
			logger.Warn("MatchJoin: User %s joined but the match already has an owner.", p.GetUserId())
			continue
		}
		matchState.Presences[p.GetSessionId()] = p
		joined = append(joined, p)
	}

	if len(joined) == 0 {
		return matchState
	}
	matchState.OwnerAbsentSince = -1
	matchState.Presenter.setRecipients(matchState.ownerPresences())

	if matchState.Engine.Phase() == domain.PhaseIdle {
		matchState.Engine.StartNewMatch()
	} else {
		mh.sendSnapshot(matchState, dispatcher, logger, joined)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave drops the leaving sessions. When the owner has no session left,
// the grace period starts; MatchLoop terminates the match once it runs out.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetSessionId())
	}
	matchState.Presenter.setRecipients(matchState.ownerPresences())

	if len(matchState.Presences) == 0 && matchState.OwnerAbsentSince < 0 {
		matchState.OwnerAbsentSince = tick
		logger.Info("MatchLeave: Owner disconnected, waiting %d ticks for a rejoin.", matchState.graceTicks())
	}

	return matchState
}

// shouldTerminate returns true once the owner has had no session for the whole grace period.
func shouldTerminate(state *MatchState, tick int64) bool {
	if len(state.Presences) > 0 || state.OwnerAbsentSince < 0 {
		return false
	}
	return tick-state.OwnerAbsentSince >= state.graceTicks()
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick
	if shouldTerminate(matchState, tick) {
		logger.Info("MatchLoop: Owner absent since tick %d, terminating match.", matchState.OwnerAbsentSince)
		return nil
	}
	matchState.Presenter.bind(dispatcher)

	// Handle incoming messages
	for _, msg := range messages {
		if msg.GetUserId() != matchState.OwnerUserID {
			logger.Warn("MatchLoop: Ignoring message from non-owner %s.", msg.GetUserId())
			continue
		}
		switch msg.GetOpCode() {
		case OpSubmitChoice:
			mh.handleSubmitChoice(matchState, dispatcher, logger, msg)
		case OpNewMatch:
			matchState.Engine.StartNewMatch()
		case OpMultiplayerSet:
			mh.handleMultiplayerSetup(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	// Delayed round transitions
	matchState.Clock.Advance(matchState.tickDuration())

	if matchState.Engine.Phase() != matchState.LabelPhase {
		mh.updateLabel(matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleSubmitChoice(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	choice, err := decodeChoice(msg.GetData())
	if err != nil {
		logger.Warn("handleSubmitChoice: Invalid payload from %s: %v", msg.GetUserId(), err)
		mh.sendError(dispatcher, logger, msg, ErrCodeBadRequest, err.Error())
		return
	}

	result, err := state.Engine.SubmitChoice(choice)
	switch {
	case errors.Is(err, app.ErrMatchInactive):
		// Input is closed during transitions; clients are not told about late clicks.
		logger.Debug("handleSubmitChoice: Ignored %s from %s (phase=%s).", choice, msg.GetUserId(), state.Engine.Phase())
	case err != nil:
		logger.Warn("handleSubmitChoice: User %s failed to submit %s: %v", msg.GetUserId(), choice, err)
		mh.sendError(dispatcher, logger, msg, ErrCodeBadRequest, err.Error())
	case result.RoundOver:
		logger.Info("handleSubmitChoice: Round over, winner %s.", result.RoundWinner)
	}
}

func (mh *matchHandler) handleMultiplayerSetup(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if err := state.Engine.MultiplayerSetup(); err != nil {
		mh.sendError(dispatcher, logger, msg, ErrCodeNotImplemented, state.Presenter.printer.Sprintf(i18n.KeyMultiplayer))
	}
}

// sendSnapshot sends the full match state to (re)joining owner sessions.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, recipients []runtime.Presence) {
	bytes, err := encodeFields(snapshotFields(state.Engine.State(), state.Engine.Phase(), state.Engine.Agent().Name))
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpStateSnapshot, bytes, recipients, nil, true)
}

// sendError sends an error event to the session that sent the offending message.
func (mh *matchHandler) sendError(dispatcher runtime.MatchDispatcher, logger runtime.Logger, target runtime.Presence, code int, message string) {
	bytes, err := encodeFields(map[string]interface{}{
		"code":    code,
		"message": message,
	})
	if err != nil {
		logger.Error("Failed to marshal error event: %v", err)
		return
	}

	dispatcher.BroadcastMessage(OpError, bytes, []runtime.Presence{target}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := state.Engine.Phase()
	label, err := labelJSON(phase, state.OwnerUserID != "")
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
		return
	}
	state.LabelPhase = phase
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
