package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session roles carried in the access token.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// JWTManager issues and validates the session tokens handed out after a
// successful Mini App login.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// GenerateAccessToken signs an HS256 token with the Telegram user id as
// subject. Each token gets a random jti so request logs can tell sessions apart.
func (m *JWTManager) GenerateAccessToken(telegramID int64, role string) (string, error) {
	now := m.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(telegramID, 10),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken parses a token and returns the Telegram user id and role.
func (m *JWTManager) ValidateAccessToken(tokenString string) (int64, string, error) {
	if tokenString == "" {
		return 0, "", fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("invalid token claims")
	}

	if claims.Role != RoleUser && claims.Role != RoleAdmin {
		return 0, "", fmt.Errorf("unknown role %q", claims.Role)
	}

	telegramID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || telegramID <= 0 {
		return 0, "", fmt.Errorf("invalid subject %q", claims.Subject)
	}

	return telegramID, claims.Role, nil
}

// TTL returns the configured access token lifetime.
func (m *JWTManager) TTL() time.Duration {
	return m.accessTTL
}
