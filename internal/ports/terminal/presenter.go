// Package terminal renders match notifications as text lines.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/message"

	"rpsarena/internal/domain"
	"rpsarena/internal/i18n"
)

const barWidth = 10

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

// Presenter implements ports.Presenter on top of an io.Writer.
// It is not safe for concurrent use.
type Presenter struct {
	out     io.Writer
	printer *message.Printer
	color   bool
	choices map[domain.Side]*domain.Choice
	err     error
}

// NewPresenter returns a presenter writing to out. When color is true, style
// markers and critical health are wrapped in ANSI escapes.
func NewPresenter(out io.Writer, printer *message.Printer, color bool) *Presenter {
	if printer == nil {
		printer = i18n.Printer(i18n.Default())
	}
	return &Presenter{
		out:     out,
		printer: printer,
		color:   color,
		choices: make(map[domain.Side]*domain.Choice, len(domain.Sides)),
	}
}

// Err returns the first write error, if any.
func (p *Presenter) Err() error {
	return p.err
}

func (p *Presenter) SetChoiceImage(side domain.Side, choice *domain.Choice) {
	p.choices[side] = choice
	if choice == nil {
		return
	}
	p.writef("%s: %s\n", p.sideName(side), p.choiceName(*choice))
}

func (p *Presenter) SetChoiceStyle(side domain.Side, style domain.StyleClass) {
	if style == domain.StyleNone {
		return
	}
	marker, code := "=", ansiYellow
	switch style {
	case domain.StyleWinner:
		marker, code = "✔", ansiGreen
	case domain.StyleLoser:
		marker, code = "✘", ansiRed
	}
	name := ""
	if choice := p.choices[side]; choice != nil {
		name = p.choiceName(*choice)
	}
	p.writef("  %s %s %s\n", p.paint(marker, code), p.sideName(side), name)
}

func (p *Presenter) SetHealthBar(side domain.Side, percent int) {
	percent = min(max(percent, 0), 100)
	filled := percent * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	line := fmt.Sprintf("%-12s [%s] %3d%%", p.sideName(side), bar, percent)
	if percent == 0 {
		line += " " + p.paint(p.printer.Sprintf(i18n.KeyHealthCritical), ansiRed)
	}
	p.writef("%s\n", line)
}

func (p *Presenter) SetRoundCounterText(side domain.Side, count int) {
	p.writef("%-12s %s\n", p.sideName(side), p.printer.Sprintf(i18n.KeyRoundsWon, count))
}

func (p *Presenter) ShowMessage(text string) {
	p.writef("» %s\n", text)
}

func (p *Presenter) SetInputEnabled(enabled bool) {
	key := i18n.KeyInputDisabled
	if enabled {
		key = i18n.KeyInputEnabled
	}
	p.writef("%s\n", p.printer.Sprintf(key))
}

func (p *Presenter) sideName(side domain.Side) string {
	if side == domain.SideComputer {
		return p.printer.Sprintf(i18n.KeySideComputer)
	}
	return p.printer.Sprintf(i18n.KeySidePlayer)
}

func (p *Presenter) choiceName(choice domain.Choice) string {
	switch choice {
	case domain.Rock:
		return p.printer.Sprintf(i18n.KeyChoiceRock)
	case domain.Paper:
		return p.printer.Sprintf(i18n.KeyChoicePaper)
	case domain.Scissors:
		return p.printer.Sprintf(i18n.KeyChoiceScissors)
	}
	return string(choice)
}

func (p *Presenter) paint(text, code string) string {
	if !p.color {
		return text
	}
	return code + text + ansiReset
}

func (p *Presenter) writef(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.out, format, args...); err != nil {
		p.err = fmt.Errorf("failed to write to terminal: %w", err)
	}
}
