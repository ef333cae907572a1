// internal/app/status_poller.go
package app

import (
	"context"
	"errors"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// HomeworkAPI fetches the raw, not yet validated, API body.
type HomeworkAPI interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (any, error)
}

// MessageSender delivers a message and reports whether it got through.
type MessageSender interface {
	Send(message string) bool
}

// Pacer blocks between cycles.
type Pacer interface {
	Wait(ctx context.Context) error
}

// StatusPoller runs the fetch, validate, parse, notify, sleep loop for a single submission.
// It is not safe for concurrent use.
type StatusPoller struct {
	api      HomeworkAPI
	notifier MessageSender
	pacer    Pacer
	verdicts homework.VerdictTable
	logger   logrus.FieldLogger

	fromDate  int64  // window start, advanced only after a delivered status message
	lastError string // last delivered error message, used to suppress repeats
}

func NewStatusPoller(
	api HomeworkAPI,
	notifier MessageSender,
	pacer Pacer,
	verdicts homework.VerdictTable,
	fromDate int64,
	logger logrus.FieldLogger,
) *StatusPoller {
	return &StatusPoller{
		api:      api,
		notifier: notifier,
		pacer:    pacer,
		verdicts: verdicts,
		logger:   logger,
		fromDate: fromDate,
	}
}

// FromDate returns the current window timestamp.
func (p *StatusPoller) FromDate() int64 {
	return p.fromDate
}

// LastError returns the last error message that was delivered, or "".
func (p *StatusPoller) LastError() string {
	return p.lastError
}

// Run loops until ctx is cancelled. Every cycle is followed by a wait, whatever its outcome.
func (p *StatusPoller) Run(ctx context.Context) error {
	p.logger.Infof("Начинаю отслеживание статусов с from_date=%d", p.fromDate)
	for {
		p.RunCycle(ctx)
		if err := p.pacer.Wait(ctx); err != nil {
			p.logger.Info("Отслеживание статусов остановлено.")
			return err
		}
	}
}

// RunCycle performs one fetch, validate, parse and notify step.
func (p *StatusPoller) RunCycle(ctx context.Context) {
	message, nextFromDate, err := p.check(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Shutting down; an aborted request is not worth a notification.
			return
		}
		p.reportError(err)
		return
	}

	if message == "" {
		p.logger.Debug("Нет новых статусов.")
		p.lastError = ""
		return
	}

	if !p.notifier.Send(message) {
		// Keep the window so the same status is fetched and sent again next cycle.
		return
	}
	p.fromDate = nextFromDate
	p.lastError = ""
}

// check returns the message for the newest homework ("" when there is none)
// and the window start to use once that message is delivered.
func (p *StatusPoller) check(ctx context.Context) (string, int64, error) {
	body, err := p.api.HomeworkStatuses(ctx, p.fromDate)
	if err != nil {
		return "", 0, err
	}

	homeworks, err := homework.CheckResponse(body)
	if err != nil {
		return "", 0, err
	}
	if len(homeworks) == 0 {
		return "", p.fromDate, nil
	}

	// Only the newest record matters; older ones in the same batch are skipped.
	message, err := homework.ParseStatus(homeworks[0], p.verdicts)
	if err != nil {
		return "", 0, err
	}

	nextFromDate, ok := homework.CurrentDate(body)
	if !ok {
		nextFromDate = p.fromDate
	}
	return message, nextFromDate, nil
}

func (p *StatusPoller) reportError(err error) {
	message := "Сбой в работе программы: " + err.Error()

	entry := p.logger.WithField("kind", homework.KindOf(err).String())
	var hwErr *homework.Error
	if errors.As(err, &hwErr) && hwErr.Err != nil {
		entry = entry.WithError(hwErr.Err)
	}
	entry.Error(message)

	if message == p.lastError {
		p.logger.Debug("Ошибка уже отправлена, повторное уведомление пропущено.")
		return
	}
	if p.notifier.Send(message) {
		p.lastError = message
	}
}
