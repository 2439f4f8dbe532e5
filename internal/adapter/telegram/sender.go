// Package telegram talks to the Telegram Bot API: admin notifications about
// new trade-in requests and the bot webhook.
package telegram

import (
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the subset of *tgbotapi.BotAPI used by this package.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
}

// NewClient creates a Bot API client. client may be nil.
func NewClient(token string, client *http.Client) (*tgbotapi.BotAPI, error) {
	if client == nil {
		client = &http.Client{}
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return bot, nil
}

// SetWebhook registers url with Telegram. The secret is echoed back by
// Telegram in the X-Telegram-Bot-Api-Secret-Token header of every update.
func SetWebhook(s Sender, url, secret string) error {
	params := tgbotapi.Params{}
	params["url"] = url
	params.AddNonEmpty("secret_token", secret)
	params["allowed_updates"] = `["message","my_chat_member"]`

	if _, err := s.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}
