// Package format renders prices, dates and slugs the way the Vietnamese
// storefront displays them.
package format

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const currencySuffix = " ₫"

// Price formats an amount as vi-VN currency: dot-grouped, no decimals, ₫ suffix.
func Price(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out + currencySuffix
}

var vnLoc = time.FixedZone("ICT", 7*60*60)

// Date renders a timestamp in Vietnam local time, hour first as vi-VN does.
func Date(t time.Time) string {
	return t.In(vnLoc).Format("15:04 2/1/2006")
}

var (
	reSpaces  = regexp.MustCompile(`\s+`)
	reNonWord = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	reDashes  = regexp.MustCompile(`--+`)
)

// Slug lowercases text, strips diacritics and joins words with dashes.
// Letters without a decomposition (đ) are dropped.
func Slug(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(t, text)
	if err != nil {
		s = text
	}
	s = strings.TrimSpace(strings.ToLower(s))
	s = reSpaces.ReplaceAllString(s, "-")
	s = reNonWord.ReplaceAllString(s, "")
	return reDashes.ReplaceAllString(s, "-")
}
