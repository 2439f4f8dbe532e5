package telegram

import (
	"context"
	"html"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

type outbound struct {
	chatID int64
	text   string
}

// Notifier posts trade-in events to admin chats. Sends happen on background
// workers so a slow Bot API never delays an HTTP response. When the queue is
// full the message is dropped and logged.
type Notifier struct {
	sender  Sender
	chatIDs []int64
	log     *slog.Logger

	queue chan outbound
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewNotifier creates a notifier. Call Start to launch workers and Stop on shutdown.
func NewNotifier(sender Sender, chatIDs []int64, queueSize int, logger *slog.Logger) *Notifier {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Notifier{
		sender:  sender,
		chatIDs: chatIDs,
		log:     logger.With("adapter", "telegram_notifier"),
		queue:   make(chan outbound, queueSize),
	}
}

// Start launches n send workers.
func (n *Notifier) Start(workers int) {
	for range max(1, workers) {
		n.wg.Add(1)
		go n.work()
	}
}

// Stop closes the queue and waits for queued messages to be sent or for ctx
// to expire, whichever comes first.
func (n *Notifier) Stop(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NotifySuccess announces a newly submitted request. Other actions are
// admin-initiated and are not echoed back to the admin chats.
func (n *Notifier) NotifySuccess(ctx context.Context, event domain.TradeInEvent) {
	if event.Action != domain.TradeInActionSubmitted {
		return
	}

	req := event.Request
	text := domain.FormatRequestMessage(domain.RequestTagFor(req.ID), event.At.In(domain.Moscow), html.EscapeString(req.Summary()))
	n.broadcast(ctx, text)
}

// NotifyError alerts admins that a submission could not be stored, carrying
// the phone so the customer can still be called back.
func (n *Notifier) NotifyError(ctx context.Context, event domain.TradeInEvent, err error) {
	n.log.ErrorContext(ctx, "trade-in action failed",
		slog.String("action", string(event.Action)),
		slog.String("request_id", event.Request.ID.String()),
		slog.String("error", err.Error()))

	if event.Action != domain.TradeInActionSubmitted {
		return
	}

	text := "⚠️ <b>Заявка не сохранена</b>\n\n" + html.EscapeString(event.Request.Summary())
	n.broadcast(ctx, text)
}

func (n *Notifier) broadcast(ctx context.Context, text string) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		n.log.WarnContext(ctx, "notifier stopped, message dropped")
		return
	}

	for _, chatID := range n.chatIDs {
		select {
		case n.queue <- outbound{chatID: chatID, text: text}:
		default:
			n.log.WarnContext(ctx, "notify queue full, message dropped", slog.Int64("chat_id", chatID))
		}
	}
}

func (n *Notifier) work() {
	defer n.wg.Done()
	for msg := range n.queue {
		cfg := tgbotapi.NewMessage(msg.chatID, msg.text)
		cfg.ParseMode = tgbotapi.ModeHTML
		cfg.DisableWebPagePreview = true

		if _, err := n.sender.Send(cfg); err != nil {
			n.log.Error("send telegram message",
				slog.Int64("chat_id", msg.chatID),
				slog.String("error", err.Error()))
		}
	}
}
