package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/topgearmoscow/miniapp-backend/internal/auth"
	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// LoginInput carries the raw Telegram.WebApp.initData string.
type LoginInput struct {
	InitData string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	if strings.TrimSpace(i.InitData) == "" {
		return domain.NewValidationError("initData", "required")
	}
	return nil
}

// LoginResult is returned by Login.
type LoginResult struct {
	AccessToken string
	User        domain.TelegramUser
	IsAdmin     bool
}

// Login verifies init data, records the user and issues a session token.
// The admin role is resolved at login time and baked into the token.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	data, err := s.verifier.Verify(input.InitData)
	if err != nil {
		s.log.WarnContext(ctx, "init data rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("auth.Login verify: %w", err)
	}
	user := data.User

	isAdmin, err := s.isAdmin(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login admin lookup: %w", err)
	}

	// The profile record is best effort; login must not fail on it.
	if err := s.users.Upsert(ctx, toBotUser(user)); err != nil {
		s.log.WarnContext(ctx, "record bot user",
			slog.Int64("telegram_id", user.ID),
			slog.String("error", err.Error()))
	}

	role := auth.RoleUser
	if isAdmin {
		role = auth.RoleAdmin
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, role)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "mini app login",
		slog.Int64("telegram_id", user.ID),
		slog.Bool("admin", isAdmin))

	return &LoginResult{AccessToken: token, User: user, IsAdmin: isAdmin}, nil
}

func toBotUser(u domain.TelegramUser) *domain.BotUser {
	return &domain.BotUser{
		TelegramID: u.ID,
		Username:   domain.TrimOptional(&u.Username),
		FirstName:  domain.TrimOptional(&u.FirstName),
		LastName:   domain.TrimOptional(&u.LastName),
		IsActive:   true,
	}
}
