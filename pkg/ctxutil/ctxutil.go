package ctxutil

import "context"

type ctxKey string

const (
	telegramIDKey ctxKey = "telegram_id"
	adminKey      ctxKey = "is_admin"
	requestIDKey  ctxKey = "request_id"
)

// WithTelegramID stores the caller's Telegram user id in the context.
func WithTelegramID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, telegramIDKey, id)
}

// TelegramIDFromCtx extracts the caller's Telegram user id.
// Returns 0 and false if the value is missing, zero, or of the wrong type.
func TelegramIDFromCtx(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(telegramIDKey).(int64)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// WithAdmin marks the context caller as a back-office admin.
func WithAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, adminKey, isAdmin)
}

// IsAdminCtx reports whether the context caller is an admin.
func IsAdminCtx(ctx context.Context) bool {
	v, _ := ctx.Value(adminKey).(bool)
	return v
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
