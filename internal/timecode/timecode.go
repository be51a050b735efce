package timecode

import (
	"errors"
	"strconv"
	"strings"
)

// Bounds for the three components of an HH:MM:SS value.
const (
	MaxHours   = 23
	MaxMinutes = 59
	MaxSeconds = 59
)

var ErrInvalidInterval = errors.New("Start must be before End")

// MaxForPart returns the upper bound for a component index (0=hours,
// 1=minutes, 2=seconds).
func MaxForPart(idx int) int {
	if idx == 0 {
		return MaxHours
	}
	return MaxMinutes
}

// SanitizePart strips non-digit characters from raw and clamps the remaining
// number into [0, max]. An input with no digits yields the empty string.
func SanitizePart(raw string, max int) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		// Clamp absurdly long digit runs to the bound.
		return strconv.Itoa(max)
	}
	return strconv.Itoa(clamp(n, 0, max))
}

// SetPart replaces component idx of an HH:MM:SS value with the sanitized form
// of raw. The value is not padded until a blur normalization.
func SetPart(value string, idx int, raw string) string {
	parts := split(value)
	parts[idx] = SanitizePart(raw, MaxForPart(idx))
	return strings.Join(parts, ":")
}

// Normalize re-renders a value on focus loss: empty components default to 00
// and every component is zero-padded to two digits.
func Normalize(value string) string {
	parts := split(value)
	for i, p := range parts {
		if p == "" {
			p = "00"
		}
		for len(p) < 2 {
			p = "0" + p
		}
		parts[i] = p
	}
	return strings.Join(parts, ":")
}

// ToSeconds converts an HH:MM:SS value to elapsed seconds. Missing or
// non-numeric components count as zero.
func ToSeconds(value string) int {
	parts := split(value)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s, _ := strconv.Atoi(parts[2])
	return h*3600 + m*60 + s
}

// Interval is a pair of HH:MM:SS bounds.
type Interval struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Valid reports whether From strictly precedes To in elapsed seconds. Equal
// or inverted bounds are invalid.
func (iv Interval) Valid() bool {
	return ToSeconds(iv.From) < ToSeconds(iv.To)
}

func (iv Interval) Validate() error {
	if !iv.Valid() {
		return ErrInvalidInterval
	}
	return nil
}

// Seconds returns both bounds as elapsed seconds.
func (iv Interval) Seconds() (from, to int) {
	return ToSeconds(iv.From), ToSeconds(iv.To)
}

func split(value string) []string {
	parts := strings.SplitN(value, ":", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts
}

func clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
