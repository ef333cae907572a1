package telegram

// Client defines an interface for sending messages via a Telegram bot.
// This keeps the polling logic independent of the specific bot library.
type Client interface {
	SendMessage(chatID string, text string) error
}
