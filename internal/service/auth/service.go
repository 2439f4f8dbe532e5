package auth

import (
	"context"
	"log/slog"
	"slices"
	"strconv"

	"github.com/topgearmoscow/miniapp-backend/internal/auth"
	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

type initDataVerifier interface {
	Verify(raw string) (*auth.InitData, error)
}

type jwtManager interface {
	GenerateAccessToken(telegramID int64, role string) (string, error)
	ValidateAccessToken(token string) (int64, string, error)
}

type adminRepo interface {
	IsAdmin(ctx context.Context, telegramID string) (bool, error)
}

type botUserRepo interface {
	Upsert(ctx context.Context, u *domain.BotUser) error
}

// Service exchanges verified Mini App init data for a session token.
type Service struct {
	log      *slog.Logger
	verifier initDataVerifier
	jwt      jwtManager
	admins   adminRepo
	users    botUserRepo
	adminIDs []string
}

// NewService creates a new auth service. adminIDs are Telegram ids that are
// admins regardless of the admins table.
func NewService(
	logger *slog.Logger,
	verifier initDataVerifier,
	jwt jwtManager,
	admins adminRepo,
	users botUserRepo,
	adminIDs []string,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		verifier: verifier,
		jwt:      jwt,
		admins:   admins,
		users:    users,
		adminIDs: adminIDs,
	}
}

// ValidateToken validates an access token and returns the Telegram id and role.
func (s *Service) ValidateToken(_ context.Context, token string) (int64, string, error) {
	id, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return 0, "", domain.ErrUnauthorized
	}
	return id, role, nil
}

func (s *Service) isAdmin(ctx context.Context, telegramID int64) (bool, error) {
	id := strconv.FormatInt(telegramID, 10)
	if slices.Contains(s.adminIDs, id) {
		return true, nil
	}
	return s.admins.IsAdmin(ctx, id)
}
