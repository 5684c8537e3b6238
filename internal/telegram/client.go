// Package telegram wraps the telebot client for outbound delivery. The bot
// never polls: updates arrive over the webhook, and this client only sends.
package telegram

import (
	"fmt"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
)

// Client sends messages and callback acknowledgements through the Telegram
// Bot API. Delivery failures are logged with chat context and returned, but
// callers are free to drop them: sends are never retried and never surface
// to the end user.
type Client struct {
	bot *tele.Bot
}

// NewClient creates a Telegram client. With offline set, no network call is
// made during construction; used in tests.
func NewClient(token string, offline bool) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	bot, err := tele.NewBot(tele.Settings{Token: token, Offline: offline})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Client{bot: bot}, nil
}

// Send delivers a plain text message to the chat.
func (c *Client) Send(chatID int64, text string) error {
	return c.send(chatID, text, &tele.SendOptions{})
}

// SendKeyboard delivers a text message with a reply keyboard attached.
func (c *Client) SendKeyboard(chatID int64, text string, kb *tele.ReplyMarkup) error {
	return c.send(chatID, text, &tele.SendOptions{ReplyMarkup: kb})
}

// SendMarkdown delivers a Markdown-formatted message to the chat.
func (c *Client) SendMarkdown(chatID int64, text string) error {
	return c.send(chatID, text, &tele.SendOptions{ParseMode: tele.ModeMarkdown})
}

func (c *Client) send(chatID int64, text string, opts *tele.SendOptions) error {
	if _, err := c.bot.Send(tele.ChatID(chatID), text, opts); err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("sendMessage failed")
		return err
	}
	return nil
}

// AckCallback acknowledges a button-press callback. Fire-and-forget: a
// failure is logged and otherwise ignored.
func (c *Client) AckCallback(callbackID string) error {
	if err := c.bot.Respond(&tele.Callback{ID: callbackID}); err != nil {
		log.Warn().Err(err).Str("callback_id", callbackID).Msg("answerCallbackQuery failed")
		return err
	}
	return nil
}
