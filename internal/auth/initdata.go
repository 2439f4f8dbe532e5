package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// webAppDataKey is the HMAC key Telegram uses to derive the init data secret
// from the bot token.
const webAppDataKey = "WebAppData"

var (
	errMissingHash = errors.New("init data: hash is missing")
	errBadHash     = errors.New("init data: hash mismatch")
	errExpired     = errors.New("init data: expired")
	errNoUser      = errors.New("init data: user is missing")
)

// InitData is the verified payload a Mini App receives from Telegram.
type InitData struct {
	User       domain.TelegramUser
	AuthDate   time.Time
	QueryID    string
	StartParam string
}

// InitDataVerifier checks the signature and freshness of Mini App init data.
type InitDataVerifier struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewInitDataVerifier derives the signing secret from botToken.
// maxAge <= 0 disables the freshness check.
func NewInitDataVerifier(botToken string, maxAge time.Duration) *InitDataVerifier {
	mac := hmac.New(sha256.New, []byte(webAppDataKey))
	mac.Write([]byte(botToken))
	return &InitDataVerifier{
		secret: mac.Sum(nil),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Verify validates raw init data (the URL-encoded Telegram.WebApp.initData
// string). All failures wrap domain.ErrUnauthorized.
func (v *InitDataVerifier) Verify(raw string) (*InitData, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, unauthorized(fmt.Errorf("init data: parse: %w", err))
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, unauthorized(errMissingHash)
	}

	expected := v.sign(dataCheckString(values))
	got, err := hex.DecodeString(hash)
	if err != nil || !hmac.Equal(got, expected) {
		return nil, unauthorized(errBadHash)
	}

	authUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, unauthorized(fmt.Errorf("init data: auth_date: %w", err))
	}
	authDate := time.Unix(authUnix, 0).UTC()
	if v.maxAge > 0 && v.now().Sub(authDate) > v.maxAge {
		return nil, unauthorized(errExpired)
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, unauthorized(errNoUser)
	}
	var user domain.TelegramUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, unauthorized(fmt.Errorf("init data: user: %w", err))
	}
	if user.ID <= 0 {
		return nil, unauthorized(errNoUser)
	}

	return &InitData{
		User:       user,
		AuthDate:   authDate,
		QueryID:    values.Get("query_id"),
		StartParam: values.Get("start_param"),
	}, nil
}

// Sign returns the hash Telegram would attach to values. Used by tests and
// local tooling to produce valid init data.
func (v *InitDataVerifier) Sign(values url.Values) string {
	return hex.EncodeToString(v.sign(dataCheckString(values)))
}

func (v *InitDataVerifier) sign(data string) []byte {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}

// dataCheckString joins every field except hash as sorted key=value lines.
func dataCheckString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}
	return strings.Join(lines, "\n")
}

func unauthorized(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
}
