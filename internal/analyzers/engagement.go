package analyzers

import "github.com/gamepulse/gamepulse/internal/domain"

// AnalyzeEngagement grades player activity from concurrent players and
// derives a retention score from the ratio of recent to lifetime
// playtime. Missing data degrades to Low/0 rather than failing.
func AnalyzeEngagement(avgForever, avg2Weeks, concurrent int64) domain.EngagementScore {
	out := domain.EngagementScore{Level: engagementLevel(concurrent)}

	if avgForever > 0 && avg2Weeks > 0 {
		out.RetentionScore = clamp(float64(avg2Weeks) / float64(avgForever) * 100)
	}

	return out
}

// Thresholds are evaluated high to low; first match wins.
func engagementLevel(concurrent int64) domain.EngagementLevel {
	switch {
	case concurrent > 10000:
		return domain.EngagementVeryHigh
	case concurrent > 1000:
		return domain.EngagementHigh
	case concurrent > 100:
		return domain.EngagementMedium
	default:
		return domain.EngagementLow
	}
}
