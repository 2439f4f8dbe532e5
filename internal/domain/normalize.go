package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// MinPhoneDigits is the minimum number of digits in a valid phone number.
const MinPhoneDigits = 11

// PhoneDigits strips everything except ASCII digits.
func PhoneDigits(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone reports whether phone carries at least MinPhoneDigits digits.
func IsValidPhone(phone string) bool {
	return len(PhoneDigits(phone)) >= MinPhoneDigits
}

// FormatPhone renders a phone in the national "+7 (XXX) XXX-XX-XX" form.
// The leading country digit is always rendered as 7; digits past the
// eleventh are dropped. Partial input renders as far as it goes.
func FormatPhone(phone string) string {
	d := PhoneDigits(phone)
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 1:
		return "+7"
	case len(d) <= 4:
		return "+7 (" + d[1:]
	case len(d) <= 7:
		return "+7 (" + d[1:4] + ") " + d[4:]
	case len(d) <= 9:
		return "+7 (" + d[1:4] + ") " + d[4:7] + "-" + d[7:]
	}
	end := min(len(d), 11)
	return "+7 (" + d[1:4] + ") " + d[4:7] + "-" + d[7:9] + "-" + d[9:end]
}

// DialLink returns a tel: URI for phone with spaces, parentheses and dashes removed.
func DialLink(phone string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '-':
			return -1
		}
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
	return "tel:" + clean
}

// ParseAmount extracts an integer amount from free-form input such as
// "1 500 000 ₽". It returns nil when the input has no digits.
func ParseAmount(raw string) (*int64, error) {
	d := PhoneDigits(raw)
	if d == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return nil, NewValidationError("trade_in_amount", "Сумма слишком большая")
	}
	return &v, nil
}

// TrimOptional trims s and returns nil for blank input.
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// FormatNumber groups digits in threes with a regular space, ru-RU style.
func FormatNumber(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatPrice renders a ruble amount, e.g. "1 500 000 ₽".
func FormatPrice(v int64) string {
	return FormatNumber(v) + " ₽"
}
