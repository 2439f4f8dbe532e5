package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"html"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// SecretHeader carries the webhook secret on every update Telegram delivers.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

type botUserRepo interface {
	Upsert(ctx context.Context, u *domain.BotUser) error
	SetActive(ctx context.Context, telegramID int64, active bool) error
}

// BotConfig holds what the bot needs to answer commands.
type BotConfig struct {
	AppURL          string
	ContactUsername string
	WebhookSecret   string
}

// Bot answers /start, /help and /contact and keeps bot_users current.
type Bot struct {
	sender Sender
	users  botUserRepo
	cfg    BotConfig
	log    *slog.Logger
}

// NewWebhookBot creates the webhook bot.
func NewWebhookBot(sender Sender, users botUserRepo, cfg BotConfig, logger *slog.Logger) *Bot {
	return &Bot{
		sender: sender,
		users:  users,
		cfg:    cfg,
		log:    logger.With("adapter", "telegram_bot"),
	}
}

// ServeHTTP handles POST /telegram/webhook. Processing errors are logged and
// still answered with 200 so Telegram does not redeliver the update.
func (b *Bot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if b.cfg.WebhookSecret != "" {
		got := r.Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(b.cfg.WebhookSecret)) != 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid update", http.StatusBadRequest)
		return
	}

	b.HandleUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}

// HandleUpdate processes a single update.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	if m := u.MyChatMember; m != nil {
		b.trackMembership(ctx, m)
		return
	}

	msg := u.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}

	if err := b.users.Upsert(ctx, botUserFrom(msg.From)); err != nil {
		b.log.WarnContext(ctx, "record bot user",
			slog.Int64("telegram_id", msg.From.ID),
			slog.String("error", err.Error()))
	}

	var reply tgbotapi.MessageConfig
	switch msg.Command() {
	case "start":
		reply = b.startMessage(msg.Chat.ID, msg.From.FirstName)
	case "contact":
		reply = b.contactMessage(msg.Chat.ID)
	default:
		reply = b.helpMessage(msg.Chat.ID)
	}

	if _, err := b.sender.Send(reply); err != nil {
		b.log.ErrorContext(ctx, "send bot reply",
			slog.Int64("chat_id", msg.Chat.ID),
			slog.String("command", msg.Command()),
			slog.String("error", err.Error()))
	}
}

func (b *Bot) trackMembership(ctx context.Context, m *tgbotapi.ChatMemberUpdated) {
	var active bool
	switch m.NewChatMember.Status {
	case "kicked", "left":
		active = false
	case "member":
		active = true
	default:
		return
	}

	if err := b.users.SetActive(ctx, m.From.ID, active); err != nil {
		b.log.WarnContext(ctx, "update bot user membership",
			slog.Int64("telegram_id", m.From.ID),
			slog.Bool("active", active),
			slog.String("error", err.Error()))
	}
}

func (b *Bot) startMessage(chatID int64, firstName string) tgbotapi.MessageConfig {
	name := strings.TrimSpace(firstName)
	greeting := "👋 Здравствуйте!"
	if name != "" {
		greeting = "👋 Здравствуйте, " + html.EscapeString(name) + "!"
	}

	msg := tgbotapi.NewMessage(chatID, greeting+"\n\n"+
		"Это бот автосалона TopGear Moscow. В приложении можно посмотреть автомобили в наличии, "+
		"добавить понравившиеся в избранное и оставить заявку на трейд-ин.")
	msg.ParseMode = tgbotapi.ModeHTML
	if b.cfg.AppURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🚗 Открыть каталог", b.cfg.AppURL),
			),
		)
	}
	return msg
}

func (b *Bot) helpMessage(chatID int64) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, "<b>Команды</b>\n\n"+
		"/start - открыть приложение\n"+
		"/contact - связаться с менеджером\n"+
		"/help - эта подсказка")
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func (b *Bot) contactMessage(chatID int64) tgbotapi.MessageConfig {
	text := "📞 Напишите нам, и менеджер ответит в ближайшее время."
	if u := strings.TrimPrefix(b.cfg.ContactUsername, "@"); u != "" {
		text += "\n\n@" + html.EscapeString(u)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func botUserFrom(u *tgbotapi.User) *domain.BotUser {
	return &domain.BotUser{
		TelegramID: u.ID,
		Username:   domain.TrimOptional(&u.UserName),
		FirstName:  domain.TrimOptional(&u.FirstName),
		LastName:   domain.TrimOptional(&u.LastName),
		IsActive:   true,
	}
}
