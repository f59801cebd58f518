// Package scoring implements the CRFES health score: a fixed-weight blend of
// the five client sub-scores, the tier thresholds derived from it, and the
// transform an interaction outcome applies to the sub-scores. Everything here
// is pure; persistence and timestamps belong to the callers.
package scoring

import (
	"math"

	"github.com/rhicrm/rhi-backend/pkg/models"
)

// CRFES weights. They sum to exactly 1.00.
const (
	WeightContactability = 0.20
	WeightResponsiveness = 0.15
	WeightFinancial      = 0.35
	WeightEngagement     = 0.15
	WeightSentiment      = 0.15
)

// Tier thresholds on the computed health score.
const (
	GreenThreshold = 70
	AmberThreshold = 40
)

// ComputeHealth maps the five sub-scores to a health score in [0,100] and its
// tier. Sub-scores are clamped to [0,100] first so a bad stored row can never
// produce an out-of-range result.
func ComputeHealth(s models.Scores) (int, models.Tier) {
	health := int(math.Round(
		WeightContactability*float64(clamp(s.Contactability)) +
			WeightResponsiveness*float64(clamp(s.Responsiveness)) +
			WeightFinancial*float64(clamp(s.Financial)) +
			WeightEngagement*float64(clamp(s.Engagement)) +
			WeightSentiment*float64(clamp(s.Sentiment))))

	return health, TierFor(health)
}

// TierFor buckets a health score: >=70 Green, >=40 Amber, otherwise Red.
func TierFor(health int) models.Tier {
	switch {
	case health >= GreenThreshold:
		return models.TierGreen
	case health >= AmberThreshold:
		return models.TierAmber
	default:
		return models.TierRed
	}
}

// Outcome is the slice of an interaction that moves scores.
type Outcome struct {
	Disposition    models.Disposition
	SentimentNum   float64 // [-1,1]
	PromisedAmount *float64
}

// ApplyInteraction returns the sub-scores after an interaction outcome. Each
// rule reads the incoming scores, never an intermediate rounded state:
//
//  1. success: contactability +2, responsiveness +1 (capped at 100)
//  2. refusal: contactability -1, engagement -2 (floored at 0)
//  3. always: sentiment blends 50/50 with round((sentiment_num+1)*50)
//  4. promised_amount > 0: financial +3 (capped at 100)
func ApplyInteraction(s models.Scores, out Outcome) models.Scores {
	next := s

	switch out.Disposition {
	case models.DispositionSuccess:
		next.Contactability = min(100, s.Contactability+2)
		next.Responsiveness = min(100, s.Responsiveness+1)
	case models.DispositionRefusal:
		next.Contactability = max(0, s.Contactability-1)
		next.Engagement = max(0, s.Engagement-2)
	}

	sentimentScore := math.Round((out.SentimentNum + 1) * 50)
	next.Sentiment = int(math.Round((float64(s.Sentiment) + sentimentScore) / 2))

	if out.PromisedAmount != nil && *out.PromisedAmount > 0 {
		next.Financial = min(100, s.Financial+3)
	}

	return next
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
