package app

import (
	"errors"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
	"golang.org/x/text/message"

	"rpsarena/internal/bot"
	"rpsarena/internal/domain"
	"rpsarena/internal/i18n"
	"rpsarena/internal/ports"
)

var (
	ErrMatchInactive             = errors.New("match is not accepting choices")
	ErrInvalidChoice             = errors.New("invalid choice")
	ErrMultiplayerNotImplemented = errors.New("multiplayer is not implemented")
)

// Engine is the rock-paper-scissors match state machine.
//
// An Engine is not safe for concurrent use: every method and every callback it
// hands to its Scheduler must run on one logical thread.
type Engine struct {
	id        string
	state     domain.MatchState
	phase     domain.Phase
	presenter ports.Presenter
	scheduler Scheduler
	agent     *bot.Agent
	logger    runtime.Logger
	printer   *message.Printer

	// generation is bumped by StartNewMatch; delayed steps from an older
	// generation are dropped when they fire.
	generation uint64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithAgent sets the computer opponent.
func WithAgent(agent *bot.Agent) Option {
	return func(e *Engine) { e.agent = agent }
}

// WithBrain sets the strategy of the computer opponent.
func WithBrain(brain bot.Brain) Option {
	return func(e *Engine) { e.agent = bot.NewAgent("", "", brain) }
}

// WithLogger sets the logger. The engine adds its id as a field.
func WithLogger(logger runtime.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithPrinter sets the printer used to localize messages.
func WithPrinter(printer *message.Printer) Option {
	return func(e *Engine) { e.printer = printer }
}

// WithID overrides the generated engine id.
func WithID(id string) Option {
	return func(e *Engine) { e.id = id }
}

// NewEngine constructs an idle engine. Call StartNewMatch to begin playing.
func NewEngine(presenter ports.Presenter, scheduler Scheduler, opts ...Option) *Engine {
	e := &Engine{
		id:        uuid.NewString(),
		state:     domain.MatchState{PlayerHealth: domain.InitialHealth, ComputerHealth: domain.InitialHealth},
		phase:     domain.PhaseIdle,
		presenter: presenter,
		scheduler: scheduler,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.agent == nil {
		e.agent = bot.NewAgent("", "", nil)
	}
	if e.agent.ID == "" {
		e.agent.ID = "cpu-" + e.id
	}
	if e.logger == nil {
		e.logger = nopLogger{}
	}
	e.logger = e.logger.WithField(EngineIDField, e.id)
	if e.printer == nil {
		e.printer = i18n.Printer(i18n.Default())
	}
	return e
}

// ID returns the engine id.
func (e *Engine) ID() string {
	return e.id
}

// State returns a copy of the current match state.
func (e *Engine) State() domain.MatchState {
	return e.state
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() domain.Phase {
	return e.phase
}

// Agent returns the computer opponent.
func (e *Engine) Agent() *bot.Agent {
	return e.agent
}

// StartNewMatch resets both sides to full health and zero rounds and opens input.
// It may be called at any time; a match in progress is abandoned and any pending
// round transition is discarded.
func (e *Engine) StartNewMatch() {
	e.generation++
	e.state.Reset()
	e.phase = domain.PhaseActive

	e.renderHealth()
	e.renderRoundCounters()
	e.resetVisuals()
	e.presenter.ShowMessage(e.printer.Sprintf(i18n.KeyMatchNew))
	e.presenter.SetInputEnabled(true)

	e.logger.Info("StartNewMatch: New match started (generation=%d).", e.generation)
}

// SubmitChoice plays one turn against the computer.
// It returns ErrMatchInactive without touching state when input is closed.
func (e *Engine) SubmitChoice(choice domain.Choice) (TurnResult, error) {
	if !choice.Valid() {
		e.logger.Warn("SubmitChoice: Rejected invalid choice %q.", choice)
		return TurnResult{}, ErrInvalidChoice
	}
	if !e.state.Active {
		e.logger.Info("SubmitChoice: Ignoring %s, match is not active (phase=%s).", choice, e.phase)
		return TurnResult{}, ErrMatchInactive
	}

	computer := e.agent.Play()

	e.presenter.SetChoiceImage(domain.SidePlayer, &choice)
	e.presenter.SetChoiceImage(domain.SideComputer, &computer)

	outcome := domain.DetermineTurnWinner(choice, computer)
	e.state.ApplyOutcome(outcome)
	e.renderHealth()
	e.renderTurnResult(outcome)

	result := TurnResult{
		PlayerChoice:   choice,
		ComputerChoice: computer,
		Outcome:        outcome,
	}
	result.RoundWinner, result.RoundOver = e.checkRoundEnd()
	result.State = e.state

	e.logger.Debug("SubmitChoice: player=%s computer=%s winner=%s health=%d/%d", choice, computer, outcome, e.state.PlayerHealth, e.state.ComputerHealth)
	return result, nil
}

// MultiplayerSetup is a placeholder for networked play. It only logs a warning.
func (e *Engine) MultiplayerSetup() error {
	e.logger.Warn("MultiplayerSetup: %s", e.printer.Sprintf(i18n.KeyMultiplayer))
	return ErrMultiplayerNotImplemented
}

func (e *Engine) checkRoundEnd() (domain.Side, bool) {
	if !e.state.RoundOver() {
		return "", false
	}

	e.state.Active = false
	e.presenter.SetInputEnabled(false)

	winner := e.state.RoundWinner()
	e.state.AwardRound(winner)
	e.renderRoundCounters()
	e.phase = domain.PhaseRoundEnding

	e.logger.Info("checkRoundEnd: Round won by %s (rounds %d-%d).", winner, e.state.PlayerRoundsWon, e.state.ComputerRoundsWon)

	generation := e.generation
	e.scheduler.After(domain.RoundEndDelay, func() {
		e.finishRound(generation, winner)
	})
	return winner, true
}

func (e *Engine) finishRound(generation uint64, winner domain.Side) {
	if generation != e.generation {
		e.logger.Debug("finishRound: Dropping stale round-end step (generation %d, current %d).", generation, e.generation)
		return
	}

	key := i18n.KeyRoundPlayer
	if winner == domain.SideComputer {
		key = i18n.KeyRoundComputer
	}
	e.presenter.ShowMessage(e.printer.Sprintf(key))

	if e.checkMatchEnd() {
		return
	}

	e.phase = domain.PhaseRoundTransition
	e.scheduler.After(domain.NextRoundDelay, func() {
		e.startNextRound(generation)
	})
}

func (e *Engine) checkMatchEnd() bool {
	winner, done := e.state.MatchWinner()
	if !done {
		return false
	}

	e.state.Active = false
	e.phase = domain.PhaseMatchOver
	e.presenter.SetInputEnabled(false)

	var text string
	if winner == domain.SidePlayer {
		text = e.printer.Sprintf(i18n.KeyMatchPlayer, e.state.PlayerRoundsWon, e.state.ComputerRoundsWon)
	} else {
		text = e.printer.Sprintf(i18n.KeyMatchComputer, e.state.ComputerRoundsWon, e.state.PlayerRoundsWon)
	}
	e.presenter.ShowMessage(text)

	e.logger.Info("checkMatchEnd: Match over, %s won %d-%d.", winner, e.state.RoundsWon(winner), e.state.RoundsWon(winner.Opponent()))
	return true
}

func (e *Engine) startNextRound(generation uint64) {
	if generation != e.generation {
		e.logger.Debug("startNextRound: Dropping stale next-round step (generation %d, current %d).", generation, e.generation)
		return
	}

	e.state.ResetHealth()
	e.renderHealth()
	e.presenter.ShowMessage(e.printer.Sprintf(i18n.KeyRoundNext))
	e.resetVisuals()

	e.state.Active = true
	e.phase = domain.PhaseActive
	e.presenter.SetInputEnabled(true)

	e.logger.Debug("startNextRound: Next round started (rounds %d-%d).", e.state.PlayerRoundsWon, e.state.ComputerRoundsWon)
}

func (e *Engine) renderTurnResult(outcome domain.TurnOutcome) {
	playerStyle, computerStyle := domain.StylesFor(outcome)
	e.presenter.SetChoiceStyle(domain.SidePlayer, playerStyle)
	e.presenter.SetChoiceStyle(domain.SideComputer, computerStyle)

	key := i18n.KeyTurnTie
	switch outcome {
	case domain.PlayerWins:
		key = i18n.KeyTurnPlayer
	case domain.ComputerWins:
		key = i18n.KeyTurnComputer
	}
	e.presenter.ShowMessage(e.printer.Sprintf(key))
}

func (e *Engine) renderHealth() {
	for _, side := range domain.Sides {
		e.presenter.SetHealthBar(side, healthPercent(e.state.Health(side)))
	}
}

func (e *Engine) renderRoundCounters() {
	for _, side := range domain.Sides {
		e.presenter.SetRoundCounterText(side, e.state.RoundsWon(side))
	}
}

func (e *Engine) resetVisuals() {
	for _, side := range domain.Sides {
		e.presenter.SetChoiceStyle(side, domain.StyleNone)
		e.presenter.SetChoiceImage(side, nil)
	}
}

func healthPercent(health int) int {
	return health * 100 / domain.InitialHealth
}
