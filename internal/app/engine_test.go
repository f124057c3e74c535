package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpsarena/internal/bot"
	"rpsarena/internal/domain"
	"rpsarena/internal/i18n"
)

// recordingPresenter captures the last value rendered for every element.
type recordingPresenter struct {
	images   map[domain.Side]*domain.Choice
	styles   map[domain.Side]domain.StyleClass
	health   map[domain.Side]int
	rounds   map[domain.Side]int
	messages []string
	input    bool
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{
		images: make(map[domain.Side]*domain.Choice),
		styles: make(map[domain.Side]domain.StyleClass),
		health: make(map[domain.Side]int),
		rounds: make(map[domain.Side]int),
	}
}

func (p *recordingPresenter) SetChoiceImage(side domain.Side, choice *domain.Choice) {
	p.images[side] = choice
}

func (p *recordingPresenter) SetChoiceStyle(side domain.Side, style domain.StyleClass) {
	p.styles[side] = style
}

func (p *recordingPresenter) SetHealthBar(side domain.Side, percent int) {
	p.health[side] = percent
}

func (p *recordingPresenter) SetRoundCounterText(side domain.Side, count int) {
	p.rounds[side] = count
}

func (p *recordingPresenter) ShowMessage(text string) {
	p.messages = append(p.messages, text)
}

func (p *recordingPresenter) SetInputEnabled(enabled bool) {
	p.input = enabled
}

func (p *recordingPresenter) lastMessage() string {
	if len(p.messages) == 0 {
		return ""
	}
	return p.messages[len(p.messages)-1]
}

func newTestEngine(brain bot.Brain) (*Engine, *recordingPresenter, *ManualClock) {
	presenter := newRecordingPresenter()
	clock := NewManualClock()
	engine := NewEngine(presenter, clock,
		WithBrain(brain),
		WithPrinter(i18n.PrinterFor("en")),
		WithID("test-match"),
	)
	return engine, presenter, clock
}

// playUntilRoundEnds repeats choice until a side drops to zero health.
func playUntilRoundEnds(t *testing.T, engine *Engine, choice domain.Choice) int {
	t.Helper()
	for turns := 1; turns <= 100; turns++ {
		result, err := engine.SubmitChoice(choice)
		require.NoError(t, err)
		if result.RoundOver {
			return turns
		}
	}
	t.Fatalf("round did not end")
	return 0
}

func TestEngineIsIdleUntilStarted(t *testing.T) {
	engine, presenter, _ := newTestEngine(bot.NewFixedBrain(domain.Scissors))

	assert.Equal(t, domain.PhaseIdle, engine.Phase())
	_, err := engine.SubmitChoice(domain.Rock)
	assert.ErrorIs(t, err, ErrMatchInactive)
	assert.Empty(t, presenter.messages)
	assert.Equal(t, "test-match", engine.ID())
}

func TestStartNewMatchRendersFreshState(t *testing.T) {
	engine, presenter, _ := newTestEngine(bot.NewFixedBrain(domain.Scissors))
	engine.StartNewMatch()

	assert.Equal(t, domain.NewMatchState(), engine.State())
	assert.Equal(t, domain.PhaseActive, engine.Phase())
	assert.True(t, presenter.input)
	assert.Equal(t, 100, presenter.health[domain.SidePlayer])
	assert.Equal(t, 100, presenter.health[domain.SideComputer])
	assert.Equal(t, 0, presenter.rounds[domain.SidePlayer])
	assert.Nil(t, presenter.images[domain.SidePlayer])
	assert.Equal(t, domain.StyleNone, presenter.styles[domain.SideComputer])
	assert.Equal(t, "🎮 New match started! Make your move.", presenter.lastMessage())
}

func TestSubmitChoiceRendersTurn(t *testing.T) {
	engine, presenter, _ := newTestEngine(bot.NewFixedBrain(domain.Paper))
	engine.StartNewMatch()

	result, err := engine.SubmitChoice(domain.Rock)
	require.NoError(t, err)

	assert.Equal(t, domain.ComputerWins, result.Outcome)
	assert.Equal(t, domain.Paper, result.ComputerChoice)
	assert.Equal(t, 80, result.State.PlayerHealth)
	assert.Equal(t, 100, result.State.ComputerHealth)
	assert.False(t, result.RoundOver)

	require.NotNil(t, presenter.images[domain.SidePlayer])
	require.NotNil(t, presenter.images[domain.SideComputer])
	assert.Equal(t, domain.Rock, *presenter.images[domain.SidePlayer])
	assert.Equal(t, domain.Paper, *presenter.images[domain.SideComputer])
	assert.Equal(t, domain.StyleLoser, presenter.styles[domain.SidePlayer])
	assert.Equal(t, domain.StyleWinner, presenter.styles[domain.SideComputer])
	assert.Equal(t, 80, presenter.health[domain.SidePlayer])
	assert.Equal(t, "You lost the turn...", presenter.lastMessage())
}

func TestTieAppliesNoDamage(t *testing.T) {
	engine, presenter, _ := newTestEngine(bot.NewFixedBrain(domain.Rock))
	engine.StartNewMatch()

	for i := 0; i < 8; i++ {
		result, err := engine.SubmitChoice(domain.Rock)
		require.NoError(t, err)
		assert.Equal(t, domain.Tie, result.Outcome)
	}

	state := engine.State()
	assert.Equal(t, domain.InitialHealth, state.PlayerHealth)
	assert.Equal(t, domain.InitialHealth, state.ComputerHealth)
	assert.Equal(t, domain.StyleTie, presenter.styles[domain.SidePlayer])
	assert.Equal(t, domain.StyleTie, presenter.styles[domain.SideComputer])
	assert.Equal(t, "It's a tie!", presenter.lastMessage())
}

func TestRockAgainstScissorsEndsRoundAfterFiveTurns(t *testing.T) {
	engine, presenter, _ := newTestEngine(bot.NewFixedBrain(domain.Scissors))
	engine.StartNewMatch()

	for turn := 1; turn <= 4; turn++ {
		result, err := engine.SubmitChoice(domain.Rock)
		require.NoError(t, err)
		assert.False(t, result.RoundOver, "turn %d", turn)
		assert.Equal(t, domain.InitialHealth, result.State.PlayerHealth)
		assert.Equal(t, domain.InitialHealth-turn*domain.DamagePerHit, result.State.ComputerHealth)
	}

	result, err := engine.SubmitChoice(domain.Rock)
	require.NoError(t, err)
	assert.True(t, result.RoundOver)
	assert.Equal(t, domain.SidePlayer, result.RoundWinner)

	state := engine.State()
	assert.Equal(t, 0, state.ComputerHealth)
	assert.Equal(t, domain.InitialHealth, state.PlayerHealth)
	assert.Equal(t, 1, state.PlayerRoundsWon)
	assert.Equal(t, 0, state.ComputerRoundsWon)
	assert.False(t, state.Active)
	assert.False(t, presenter.input)
	assert.Equal(t, 1, presenter.rounds[domain.SidePlayer])
	assert.Equal(t, domain.PhaseRoundEnding, engine.Phase())
	assert.Equal(t, 0, presenter.health[domain.SideComputer])
}

func TestInputIsBlockedDuringTransitions(t *testing.T) {
	engine, _, clock := newTestEngine(bot.NewFixedBrain(domain.Scissors))
	engine.StartNewMatch()
	playUntilRoundEnds(t, engine, domain.Rock)
	frozen := engine.State()

	_, err := engine.SubmitChoice(domain.Rock)
	assert.ErrorIs(t, err, ErrMatchInactive)
	assert.Equal(t, frozen, engine.State())

	clock.Advance(domain.RoundEndDelay)
	assert.Equal(t, domain.PhaseRoundTransition, engine.Phase())
	_, err = engine.SubmitChoice(domain.Paper)
	assert.ErrorIs(t, err, ErrMatchInactive)
	assert.Equal(t, frozen, engine.State())
}

func TestRoundTransitionTiming(t *testing.T) {
	engine, presenter, clock := newTestEngine(bot.NewFixedBrain(domain.Scissors))
	engine.StartNewMatch()
	playUntilRoundEnds(t, engine, domain.Rock)

	assert.Equal(t, 0, clock.Advance(domain.RoundEndDelay-1))
	assert.Equal(t, "You won the turn!", presenter.lastMessage())

	assert.Equal(t, 1, clock.Advance(1))
	assert.Equal(t, "You won the round!", presenter.lastMessage())
	assert.Equal(t, domain.PhaseRoundTransition, engine.Phase())
	assert.False(t, presenter.input)

	assert.Equal(t, 0, clock.Advance(domain.NextRoundDelay-1))
	assert.Equal(t, 1, clock.Advance(1))

	state := engine.State()
	assert.Equal(t, domain.PhaseActive, engine.Phase())
	assert.True(t, state.Active)
	assert.True(t, presenter.input)
	assert.Equal(t, domain.InitialHealth, state.PlayerHealth)
	assert.Equal(t, domain.InitialHealth, state.ComputerHealth)
	assert.Equal(t, 1, state.PlayerRoundsWon)
	assert.Nil(t, presenter.images[domain.SidePlayer])
	assert.Equal(t, domain.StyleNone, presenter.styles[domain.SidePlayer])
	assert.Equal(t, "Next round! Make your move.", presenter.lastMessage())
	assert.Equal(t, 0, clock.pending())
}

func TestComputerWinsTenRoundsEndsMatch(t *testing.T) {
	engine, presenter, clock := newTestEngine(bot.NewFixedBrain(domain.Paper))
	engine.StartNewMatch()

	for round := 1; round <= domain.MaxRoundsToWin; round++ {
		turns := playUntilRoundEnds(t, engine, domain.Rock)
		require.Equal(t, 5, turns)
		require.Equal(t, round, engine.State().ComputerRoundsWon)

		clock.Advance(domain.RoundEndDelay)
		if round < domain.MaxRoundsToWin {
			require.Equal(t, domain.PhaseRoundTransition, engine.Phase(), "round %d", round)
			clock.Advance(domain.NextRoundDelay)
			require.Equal(t, domain.PhaseActive, engine.Phase(), "round %d", round)
		}
	}

	assert.Equal(t, domain.PhaseMatchOver, engine.Phase())
	assert.Equal(t, "The computer won the match 10 to 0! Better luck next time.", presenter.lastMessage())
	assert.False(t, presenter.input)
	assert.Equal(t, 0, clock.pending())

	// Input stays closed no matter how long we wait.
	clock.Advance(time.Hour)
	assert.False(t, presenter.input)
	_, err := engine.SubmitChoice(domain.Rock)
	assert.ErrorIs(t, err, ErrMatchInactive)
	assert.Equal(t, 10, engine.State().ComputerRoundsWon)
	assert.Equal(t, 0, engine.State().PlayerRoundsWon)
}

func TestPlayerWinsMatchMessage(t *testing.T) {
	engine, presenter, clock := newTestEngine(bot.NewFixedBrain(domain.Scissors))
	engine.StartNewMatch()

	for round := 1; round <= domain.MaxRoundsToWin; round++ {
		playUntilRoundEnds(t, engine, domain.Rock)
		clock.Advance(domain.RoundEndDelay + domain.NextRoundDelay)
	}

	assert.Equal(t, domain.PhaseMatchOver, engine.Phase())
	assert.Equal(t, "🏆 Congratulations! You won the match 10 to 0! 🏆", presenter.lastMessage())
}

func TestStartNewMatchResetsRegardlessOfState(t *testing.T) {
	engine, presenter, clock := newTestEngine(bot.NewFixedBrain(domain.Paper))
	engine.StartNewMatch()
	for i := 0; i < 3; i++ {
		playUntilRoundEnds(t, engine, domain.Rock)
		clock.Advance(domain.RoundEndDelay + domain.NextRoundDelay)
	}
	_, err := engine.SubmitChoice(domain.Rock)
	require.NoError(t, err)

	engine.StartNewMatch()

	state := engine.State()
	assert.Equal(t, 0, state.PlayerRoundsWon)
	assert.Equal(t, 0, state.ComputerRoundsWon)
	assert.Equal(t, 100, state.PlayerHealth)
	assert.Equal(t, 100, state.ComputerHealth)
	assert.True(t, state.Active)
	assert.True(t, presenter.input)
	assert.Equal(t, 0, presenter.rounds[domain.SideComputer])
}

func TestStartNewMatchDropsPendingTransitions(t *testing.T) {
	engine, presenter, clock := newTestEngine(bot.NewFixedBrain(domain.Scissors))
	engine.StartNewMatch()
	playUntilRoundEnds(t, engine, domain.Rock)
	require.Equal(t, 1, clock.pending())

	engine.StartNewMatch()
	messages := len(presenter.messages)

	// The stale round-end step fires but must not touch the new match.
	clock.Advance(domain.RoundEndDelay + domain.NextRoundDelay)
	assert.Len(t, presenter.messages, messages)
	assert.Equal(t, domain.PhaseActive, engine.Phase())
	assert.Equal(t, domain.NewMatchState(), engine.State())

	// The new match keeps working normally.
	result, err := engine.SubmitChoice(domain.Rock)
	require.NoError(t, err)
	assert.Equal(t, 80, result.State.ComputerHealth)
}

func TestStartNewMatchAfterMatchOver(t *testing.T) {
	engine, _, clock := newTestEngine(bot.NewFixedBrain(domain.Paper))
	engine.StartNewMatch()
	for round := 1; round <= domain.MaxRoundsToWin; round++ {
		playUntilRoundEnds(t, engine, domain.Rock)
		clock.Advance(domain.RoundEndDelay + domain.NextRoundDelay)
	}
	require.Equal(t, domain.PhaseMatchOver, engine.Phase())

	engine.StartNewMatch()
	assert.Equal(t, domain.PhaseActive, engine.Phase())
	_, err := engine.SubmitChoice(domain.Rock)
	assert.NoError(t, err)
}

func TestRoundCountersIncrementOncePerRound(t *testing.T) {
	engine, _, clock := newTestEngine(bot.NewFixedBrain(domain.Scissors))
	engine.StartNewMatch()
	playUntilRoundEnds(t, engine, domain.Rock)

	for i := 0; i < 5; i++ {
		_, _ = engine.SubmitChoice(domain.Rock)
	}
	clock.Advance(domain.RoundEndDelay)
	for i := 0; i < 5; i++ {
		_, _ = engine.SubmitChoice(domain.Rock)
	}
	clock.Advance(domain.NextRoundDelay)

	assert.Equal(t, 1, engine.State().PlayerRoundsWon)
	assert.Equal(t, 0, engine.State().ComputerRoundsWon)
}

func TestSubmitInvalidChoice(t *testing.T) {
	engine, _, _ := newTestEngine(bot.NewFixedBrain(domain.Scissors))
	engine.StartNewMatch()

	_, err := engine.SubmitChoice(domain.Choice("lizard"))
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, domain.NewMatchState(), engine.State())
}

func TestMultiplayerSetupIsAPlaceholder(t *testing.T) {
	engine, presenter, _ := newTestEngine(bot.NewFixedBrain(domain.Scissors))
	engine.StartNewMatch()
	before := engine.State()
	messages := len(presenter.messages)

	err := engine.MultiplayerSetup()
	assert.ErrorIs(t, err, ErrMultiplayerNotImplemented)
	assert.Equal(t, before, engine.State())
	assert.Len(t, presenter.messages, messages)
}

func TestDefaultMessagesAreSpanish(t *testing.T) {
	presenter := newRecordingPresenter()
	engine := NewEngine(presenter, NewManualClock(), WithBrain(bot.NewFixedBrain(domain.Rock)))
	engine.StartNewMatch()
	_, err := engine.SubmitChoice(domain.Rock)
	require.NoError(t, err)

	assert.Equal(t, "¡Empate!", presenter.lastMessage())
	assert.NotEmpty(t, engine.ID())
	assert.Equal(t, "cpu-"+engine.ID(), engine.Agent().ID)
}
