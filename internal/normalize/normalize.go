// Package normalize converts provider-native fields onto the canonical
// scales used by the analyzers. Every function here is pure and total:
// malformed input yields a documented default, never an error. All risk
// is absorbed at this boundary so the analyzers can assume clean data.
package normalize

import (
	"strconv"
	"strings"

	"github.com/gamepulse/gamepulse/internal/domain"
)

const unknown = "Unknown"

// ParseOwnership parses a provider ownership estimate of the form
// "20,000,000 .. 50,000,000" into a numeric range. A bare number yields
// a collapsed range, anything unparseable yields the zero range.
func ParseOwnership(raw string) domain.OwnershipRange {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.OwnershipRange{}
	}

	if lo, hi, ok := strings.Cut(s, ".."); ok {
		minVal, okMin := parseCount(lo)
		maxVal, okMax := parseCount(hi)
		if !okMin || !okMax || minVal < 0 || maxVal < minVal {
			return domain.OwnershipRange{}
		}
		return domain.OwnershipRange{
			Min:     minVal,
			Max:     maxVal,
			Average: (minVal + maxVal) / 2,
		}
	}

	n, ok := parseCount(s)
	if !ok || n < 0 {
		return domain.OwnershipRange{}
	}
	return domain.OwnershipRange{Min: n, Max: n, Average: n}
}

func parseCount(s string) (int64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MinorUnits clamps a minor-currency amount to be non-negative.
// Absent prices arrive as zero; the caller decides whether zero means
// free, not this function.
func MinorUnits(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// Percent clamps a discount or percentage field to [0,100].
func Percent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Minutes clamps a playtime field to be non-negative.
func Minutes(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// Count clamps a population field (players, owners) to be non-negative.
func Count(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// Label returns s, or "Unknown" when the provider left it blank.
func Label(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknown
	}
	return s
}

// Dedupe returns the input strings with duplicates and blanks removed,
// first occurrence wins, order preserved.
func Dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
