// Package telegramsink delivers notifications to a Telegram chat. Delivery
// is best-effort: callers log and swallow the returned error, a sink failure
// never fails the operation that triggered the notification.
package telegramsink

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrEmptyBotToken is returned when the sink is constructed without a token.
var ErrEmptyBotToken = errors.New("telegram bot token must not be empty")

// Sink sends messages to one Telegram chat through the bot API.
type Sink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewSink creates a Sink for the given bot token and chat.
func NewSink(botToken string, chatID int64) (*Sink, error) {
	if botToken == "" {
		return nil, ErrEmptyBotToken
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}

	return &Sink{bot: bot, chatID: chatID}, nil
}

// Notify sends one text message to the configured chat.
func (s *Sink) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := tgbotapi.NewMessage(s.chatID, text)
	_, err := s.bot.Send(message)

	return err
}
