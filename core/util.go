package core

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// NowFunc is mockable in tests.
var NowFunc = time.Now

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// SnakeCase converts a camelCase identifier to snake_case: "birthDate" -> "birth_date", "athleteID" -> "athlete_id".
func SnakeCase(s string) string {
	runes := []rune(strings.TrimSpace(s))
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
					b.WriteByte('_')
				}
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NewID returns a new random entity identifier.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether id looks like an identifier returned by NewID.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ContainsString reports whether s is in list.
func ContainsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// ContainsFold does a case-insensitive substring match.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// InDateRange checks that t is within [from, to]; zero bounds are open.
func InDateRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

// StartOfDay returns midnight, in loc, of the calendar day written in t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// RoundPercent returns round(100 * part / total), half away from zero, or 0 when total is 0.
func RoundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// RoundMean returns the mean of values rounded to the nearest integer, or 0 without values.
func RoundMean(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return int(math.Round(sum / float64(len(values))))
}
