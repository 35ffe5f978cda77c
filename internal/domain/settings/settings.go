// Package settings holds the two user preferences the app persists: the
// oracle API key and the party size recipes are scaled for.
package settings

import (
	"errors"
	"strconv"
	"strings"
)

// Storage keys
const (
	KeyAPIKey    = "chef_aid_api_key"
	KeyNumPeople = "chef_aid_num_people"
)

// Party size bounds
const (
	DefaultNumPeople = 2
	MinNumPeople     = 1
	MaxNumPeople     = 10
)

// Domain errors
var (
	ErrAPIKeyRequired      = errors.New("api key is required")
	ErrNumPeopleOutOfRange = errors.New("number of people must be between 1 and 10")
)

// Settings is a snapshot of the stored preferences
type Settings struct {
	APIKey    string `json:"api_key"`
	NumPeople int    `json:"num_people"`
}

// Default returns the settings used before anything was saved
func Default() Settings {
	return Settings{NumPeople: DefaultNumPeople}
}

// HasAPIKey reports whether a usable key is configured
func (s Settings) HasAPIKey() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

// MaskedAPIKey shows only the last four characters of the key
func (s Settings) MaskedAPIKey() string {
	key := strings.TrimSpace(s.APIKey)
	if key == "" {
		return ""
	}
	r := []rune(key)
	if len(r) <= 4 {
		return strings.Repeat("•", len(r))
	}
	return strings.Repeat("•", len(r)-4) + string(r[len(r)-4:])
}

// ParseNumPeople reads a stored party size. Anything that is not a decimal
// integer yields the default; integers outside the range are clamped.
func ParseNumPeople(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultNumPeople
	}
	return ClampNumPeople(n)
}

// FormatNumPeople is the stored representation of a party size
func FormatNumPeople(n int) string {
	return strconv.Itoa(n)
}

// ClampNumPeople limits n to the allowed range
func ClampNumPeople(n int) int {
	if n < MinNumPeople {
		return MinNumPeople
	}
	if n > MaxNumPeople {
		return MaxNumPeople
	}
	return n
}

// AdjustNumPeople applies a stepper change and clamps the result
func AdjustNumPeople(current, delta int) int {
	return ClampNumPeople(current + delta)
}

// ValidateNumPeople rejects an explicit party size outside the range
func ValidateNumPeople(n int) error {
	if n < MinNumPeople || n > MaxNumPeople {
		return ErrNumPeopleOutOfRange
	}
	return nil
}

// NormalizeAPIKey trims the key and rejects an empty one
func NormalizeAPIKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", ErrAPIKeyRequired
	}
	return key, nil
}
