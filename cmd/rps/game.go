package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"golang.org/x/text/message"

	"rpsarena/internal/app"
	"rpsarena/internal/bot"
	"rpsarena/internal/config"
	"rpsarena/internal/domain"
	"rpsarena/internal/i18n"
	"rpsarena/internal/ports/terminal"
)

// game owns the engine and its clock. Every method runs on the loop goroutine.
type game struct {
	engine  *app.Engine
	clock   *app.ManualClock
	view    *terminal.Presenter
	printer *message.Printer
	logger  runtime.Logger
	last    time.Time
}

func newGame(out io.Writer, cfg *config.GameConfig, logger runtime.Logger, brain bot.Brain, color bool) *game {
	printer := i18n.PrinterFor(cfg.Locale)
	view := terminal.NewPresenter(out, printer, color)
	clock := app.NewManualClock()

	if brain == nil {
		var err error
		brain, err = bot.NewBrain(bot.BotLevelRandom, bot.SeededRand(cfg.Seed))
		if err != nil {
			logger.Error("newGame: %v", err)
		}
	}

	engine := app.NewEngine(view, clock,
		app.WithBrain(brain),
		app.WithLogger(logger),
		app.WithPrinter(printer),
	)
	return &game{engine: engine, clock: clock, view: view, printer: printer, logger: logger}
}

// advance moves the engine clock by the wall time elapsed since the previous call.
// A clock that steps backwards is ignored.
func (g *game) advance(now time.Time) {
	if g.last.IsZero() {
		g.last = now
		return
	}
	if now.After(g.last) {
		g.clock.Advance(now.Sub(g.last))
		g.last = now
	}
}

// handle applies one input line. It returns true when the player asked to quit.
func (g *game) handle(line string) bool {
	command := strings.ToLower(strings.TrimSpace(line))
	switch command {
	case "":
		return false
	case "quit", "exit", "q":
		return true
	case "new":
		g.engine.StartNewMatch()
		return false
	case "multi":
		if err := g.engine.MultiplayerSetup(); err != nil {
			g.view.ShowMessage(g.printer.Sprintf(i18n.KeyMultiplayer))
		}
		return false
	}

	choice, ok := domain.ParseChoice(command)
	if !ok {
		g.view.ShowMessage(g.printer.Sprintf(i18n.KeyInputEnabled))
		return false
	}

	if _, err := g.engine.SubmitChoice(choice); err != nil && !errors.Is(err, app.ErrMatchInactive) {
		g.logger.Warn("handle: %v", err)
	}
	return false
}

// run drives the game until the input ends, the player quits or ctx is done.
// Input is read on its own goroutine and handed to the loop over a channel, so
// the engine and its scheduled steps only ever run here.
func run(ctx context.Context, in io.Reader, out io.Writer, cfg *config.GameConfig, logger runtime.Logger, color bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := newGame(out, cfg, logger, nil, color)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	// The timer is armed only while a delayed step is pending, for exactly
	// the time left until it is due.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	var wake <-chan time.Time
	arm := func() {
		wake = nil
		if remaining, ok := g.clock.NextDeadline(); ok {
			timer.Reset(remaining)
			wake = timer.C
		}
	}

	g.advance(time.Now())
	g.engine.StartNewMatch()

	for {
		select {
		case <-ctx.Done():
			return g.view.Err()
		case line, ok := <-lines:
			if !ok {
				var err error
				select {
				case err = <-readErr:
				default:
				}
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return g.view.Err()
			}
			g.advance(time.Now())
			if g.handle(line) {
				return g.view.Err()
			}
		case <-wake:
			g.advance(time.Now())
		}
		arm()
		if err := g.view.Err(); err != nil {
			return err
		}
	}
}
