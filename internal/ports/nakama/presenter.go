package nakama

import (
	"github.com/heroiclabs/nakama-common/runtime"
	"golang.org/x/text/message"

	"rpsarena/internal/domain"
	"rpsarena/internal/i18n"
)

// dispatcherPresenter implements ports.Presenter by sending one message per
// presentation call to the match owner.
type dispatcherPresenter struct {
	dispatcher runtime.MatchDispatcher
	logger     runtime.Logger
	printer    *message.Printer
	recipients []runtime.Presence
}

func newDispatcherPresenter(logger runtime.Logger, printer *message.Printer) *dispatcherPresenter {
	return &dispatcherPresenter{logger: logger, printer: printer}
}

// setRecipients replaces the sessions that receive notifications.
func (p *dispatcherPresenter) setRecipients(recipients []runtime.Presence) {
	p.recipients = recipients
}

// bind attaches the dispatcher of the current match callback.
func (p *dispatcherPresenter) bind(dispatcher runtime.MatchDispatcher) {
	p.dispatcher = dispatcher
}

func (p *dispatcherPresenter) SetChoiceImage(side domain.Side, choice *domain.Choice) {
	var value interface{}
	if choice != nil {
		value = string(*choice)
	}
	p.send(OpChoiceImage, map[string]interface{}{"side": string(side), "choice": value})
}

func (p *dispatcherPresenter) SetChoiceStyle(side domain.Side, style domain.StyleClass) {
	p.send(OpChoiceStyle, map[string]interface{}{"side": string(side), "style": string(style)})
}

func (p *dispatcherPresenter) SetHealthBar(side domain.Side, percent int) {
	p.send(OpHealthBar, map[string]interface{}{
		"side":     string(side),
		"percent":  percent,
		"critical": percent == 0,
	})
}

func (p *dispatcherPresenter) SetRoundCounterText(side domain.Side, count int) {
	p.send(OpRoundCounter, map[string]interface{}{
		"side":  string(side),
		"count": count,
		"text":  p.printer.Sprintf(i18n.KeyRoundsWon, count),
	})
}

func (p *dispatcherPresenter) ShowMessage(text string) {
	p.send(OpMessage, map[string]interface{}{"text": text})
}

func (p *dispatcherPresenter) SetInputEnabled(enabled bool) {
	p.send(OpInputEnabled, map[string]interface{}{"enabled": enabled})
}

func (p *dispatcherPresenter) send(opCode int64, fields map[string]interface{}) {
	if p.dispatcher == nil || len(p.recipients) == 0 {
		return
	}
	bytes, err := encodeFields(fields)
	if err != nil {
		p.logger.Error("Failed to marshal event %d: %v", opCode, err)
		return
	}
	if err := p.dispatcher.BroadcastMessage(opCode, bytes, p.recipients, nil, true); err != nil {
		p.logger.Warn("Failed to send event %d: %v", opCode, err)
	}
}
