// Package shopping extracts the shopping list section from generated text
// and formats it for the share sheet and SMS.
package shopping

import (
	"net/url"
	"strings"
	"unicode"
)

// Marker introduces the shopping list section, matched case-insensitively
const Marker = "SHOPPING LIST"

const (
	messageHeader = "Shopping List:\n"
	smsPrefix     = "sms:?&body="
)

// List is the extracted shopping list text
type List struct {
	Text string `json:"text"`
}

// Extract returns the text following the last occurrence of Marker with
// every '*' and '#' removed and surrounding whitespace trimmed. ok is false
// when the upper-cased text does not contain Marker.
func Extract(text string) (List, bool) {
	start, found := afterLastMarker(text)
	if !found {
		return List{}, false
	}

	body := strings.Map(func(r rune) rune {
		if r == '*' || r == '#' {
			return -1
		}
		return r
	}, text[start:])

	return List{Text: strings.TrimSpace(body)}, true
}

// Message is the text handed to the share sheet and to SMS
func (l List) Message() string {
	return messageHeader + l.Text
}

// SMSLink builds an sms: deep link whose body is Message
func (l List) SMSLink() string {
	return smsPrefix + EncodeURIComponent(l.Message())
}

// afterLastMarker returns the byte offset just past the last marker match.
// The comparison upper-cases one rune at a time, which is what "contains
// after upper-casing" means for this ASCII marker.
func afterLastMarker(text string) (int, bool) {
	marker := []rune(Marker)
	offsets := make([]int, 0, len(text))
	runes := make([]rune, 0, len(text))
	for i, r := range text {
		offsets = append(offsets, i)
		runes = append(runes, r)
	}

	for start := len(runes) - len(marker); start >= 0; start-- {
		if matchesAt(runes, start, marker) {
			end := start + len(marker)
			if end == len(runes) {
				return len(text), true
			}
			return offsets[end], true
		}
	}
	return 0, false
}

func matchesAt(runes []rune, start int, marker []rune) bool {
	for j, m := range marker {
		if unicode.ToUpper(runes[start+j]) != m {
			return false
		}
	}
	return true
}

// EncodeURIComponent escapes s the way browsers do for a URI component:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	return uriUnreserved.Replace(escaped)
}

var uriUnreserved = strings.NewReplacer(
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
