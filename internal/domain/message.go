package domain

import (
	"math/rand/v2"
	"net/url"
	"strings"
	"time"
)

const (
	// MaxChatLinkLength caps the length of a t.me share link.
	MaxChatLinkLength = 4000

	requestTagAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O, 1/I
	requestTagLength   = 4
	messageRule        = "━━━━━━━━━━━━━━━━━"
	truncatedSuffix    = "...\n\n[Сообщение обрезано]"
)

// Moscow is the dealership's local time zone used in message stamps.
// Fixed at UTC+3; Russia dropped DST in 2014.
var Moscow = time.FixedZone("MSK", 3*60*60)

// NewRequestTag returns a short human-dictatable tag such as "#DTM-A7X9".
// intn must behave like rand.IntN; nil uses math/rand/v2.
func NewRequestTag(intn func(int) int) string {
	if intn == nil {
		intn = rand.IntN
	}
	var b strings.Builder
	b.WriteString("#DTM-")
	for range requestTagLength {
		b.WriteByte(requestTagAlphabet[intn(len(requestTagAlphabet))])
	}
	return b.String()
}

// RequestTagFor derives a stable tag from an id, so every rendering of the
// same request shows the same tag.
func RequestTagFor(id [16]byte) string {
	i := 0
	return NewRequestTag(func(n int) int {
		v := int(id[i%len(id)]) % n
		i++
		return v
	})
}

// FormatRequestMessage prefixes body with the request tag and a dd.mm hh:mm stamp.
func FormatRequestMessage(tag string, at time.Time, body string) string {
	return messageRule + "\n📋 Заявка " + tag + "\n🕐 " + at.Format("02.01 15:04") + "\n" + messageRule + "\n\n" + body
}

// ChatLink builds a https://t.me/<username>?text=... link carrying a tagged message.
// When the link would exceed MaxChatLinkLength the body is cut and marked as truncated.
func ChatLink(username, tag string, at time.Time, body string) string {
	base := "https://t.me/" + strings.TrimPrefix(username, "@")
	if body == "" {
		return base
	}

	link := base + "?text=" + url.QueryEscape(FormatRequestMessage(tag, at, body))
	if len(link) <= MaxChatLinkLength {
		return link
	}

	// Encoding inflates Cyrillic up to sixfold, so shrink until it fits.
	runes := []rune(body)
	n := min(len(runes), (MaxChatLinkLength-100)/3)
	for n > 0 {
		link = base + "?text=" + url.QueryEscape(FormatRequestMessage(tag, at, string(runes[:n])+truncatedSuffix))
		if len(link) <= MaxChatLinkLength {
			return link
		}
		n -= max(1, n/10)
	}
	return base + "?text=" + url.QueryEscape(FormatRequestMessage(tag, at, truncatedSuffix))
}
