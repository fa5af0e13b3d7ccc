// Package sanitize normalizes untrusted input before it is written to the
// store. Every function is pure and never returns an error: invalid input
// yields nil (or the caller-supplied default), pushing rejection decisions to
// the caller, which surfaces a field-level validation message.
package sanitize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxLength is the cap applied by TrimString, matching the width of the
// store's text columns.
const DefaultMaxLength = 255

const maxPhoneLength = 50

const minPhoneDigits = 7

// emailPattern is a deliberately minimal local@domain.tld shape check. Full
// RFC 5322 parsing rejects addresses that real mail servers accept.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TrimString coerces v to a string, trims surrounding whitespace, and
// truncates to DefaultMaxLength. Returns nil for nil, empty, or
// whitespace-only input. Unicode and punctuation are preserved verbatim.
func TrimString(v any) *string {
	return TrimStringMax(v, DefaultMaxLength)
}

// TrimStringMax is TrimString with an explicit length cap.
func TrimStringMax(v any, maxLength int) *string {
	s, ok := coerceString(v)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if runes := []rune(s); maxLength > 0 && len(runes) > maxLength {
		s = string(runes[:maxLength])
	}
	return &s
}

// Email trims and lowercases v and validates a minimal local@domain.tld
// shape. Returns nil when invalid or when the normalized form exceeds
// DefaultMaxLength characters.
func Email(v any) *string {
	s, ok := coerceString(v)
	if !ok {
		return nil
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || utf8.RuneCountInString(s) > DefaultMaxLength || !emailPattern.MatchString(s) {
		return nil
	}
	return &s
}

// Phone trims v and checks plausibility: at most 50 characters and at least 7
// digits. The original formatting (parentheses, dashes, leading +) is kept.
func Phone(v any) *string {
	s, ok := coerceString(v)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxPhoneLength {
		return nil
	}
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < minPhoneDigits {
		return nil
	}
	return &s
}

// EnumValue trims and lowercases v and returns it when it is a member of
// allowed, nil otherwise. Nil or empty input returns nil directly.
func EnumValue(v any, allowed []string) *string {
	s, ok := coerceString(v)
	if !ok {
		return nil
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	for _, a := range allowed {
		if s == a {
			return &s
		}
	}
	return nil
}

// EnumOrDefault is EnumValue with a fallback for missing or invalid input.
func EnumOrDefault(v any, allowed []string, defaultVal string) string {
	if s := EnumValue(v, allowed); s != nil {
		return *s
	}
	return defaultVal
}

// PositiveInt parses v to an integer, truncating any fractional part and
// accepting numeric strings. Returns nil unless the result is strictly
// positive.
func PositiveInt(v any) *int {
	f, ok := coerceNumber(v)
	if !ok {
		return nil
	}
	n := int(math.Trunc(f))
	if n <= 0 {
		return nil
	}
	return &n
}

// NonNegativeNumber parses v to a float, accepting numeric strings. Returns
// nil unless the result is >= 0.
func NonNegativeNumber(v any) *float64 {
	f, ok := coerceNumber(v)
	if !ok || f < 0 {
		return nil
	}
	return &f
}

func coerceString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case []byte:
		return string(s), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}

func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return coerceNumber(float64(n))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return coerceNumber(f)
	default:
		return 0, false
	}
}
