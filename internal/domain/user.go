package domain

import "time"

// TelegramUser is the caller identity extracted from verified Mini App init data.
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

// BotUser is a Telegram user who has talked to the bot.
type BotUser struct {
	TelegramID int64
	Username   *string
	FirstName  *string
	LastName   *string
	IsActive   bool
	UpdatedAt  time.Time
}

// Admin grants back-office access to a Telegram account.
type Admin struct {
	TelegramID string
	CreatedAt  time.Time
}
