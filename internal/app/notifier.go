// internal/app/notifier.go
package app

import (
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// Notifier relays messages to the configured chat. Send failures are logged
// and reported through the return value, never propagated.
type Notifier struct {
	client domainTelegram.Client
	chatID string
	logger logrus.FieldLogger
}

func NewNotifier(client domainTelegram.Client, chatID string, logger logrus.FieldLogger) *Notifier {
	return &Notifier{
		client: client,
		chatID: chatID,
		logger: logger,
	}
}

// Send reports whether the message reached the chat.
func (n *Notifier) Send(message string) bool {
	if err := n.client.SendMessage(n.chatID, message); err != nil {
		n.logger.WithError(err).Errorf("Ошибка при отправке сообщения: %q", message)
		return false
	}
	n.logger.Debugf("Бот отправил сообщение: %q", message)
	return true
}
