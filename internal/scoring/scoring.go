// Package scoring converts a raw fitness score into a tier, a star rating,
// and a vehicle-adjusted score. All functions are pure.
package scoring

import (
	"math"

	"github.com/talos/hvac-ats/internal/types"
)

// Tier cut points. 80 and 50 are tier-defining, inclusive on the lower edge.
const (
	greenFloor  = 80.0
	yellowFloor = 50.0
)

// Vehicle adjustment applied when a job requires a vehicle.
const (
	vehicleBonus   = 5.0
	vehiclePenalty = 10.0
)

// Result is the derived classification for one candidate on one job.
type Result struct {
	TierScore  int
	Tier       types.Tier
	StarRating float64
}

// ClampScore forces score into [0,100] and reports whether clamping was
// needed. Out-of-range input is an upstream contract violation; callers log
// the second return rather than guessing at intent.
func ClampScore(score float64) (float64, bool) {
	switch {
	case math.IsNaN(score):
		return 0, true
	case score < 0:
		return 0, true
	case score > 100:
		return 100, true
	}
	return score, false
}

// Classify maps a score to its tier: >=80 green, >=50 yellow, else red.
func Classify(score float64) types.Tier {
	score, _ = ClampScore(score)
	switch {
	case score >= greenFloor:
		return types.TierGreen
	case score >= yellowFloor:
		return types.TierYellow
	default:
		return types.TierRed
	}
}

// StarRating maps a score onto a 0.0-5.0 display rating, rounded to one
// decimal. The mapping is piecewise linear per tier band so each tier owns a
// distinct rating band: green [4.0,5.0], yellow [2.0,3.9], red [0.0,1.5].
func StarRating(score float64) float64 {
	score, _ = ClampScore(score)
	var rating float64
	switch {
	case score >= greenFloor:
		rating = 4.0 + (score-80)/20
	case score >= yellowFloor:
		rating = 2.0 + (score-50)/29*1.9
	default:
		rating = score / 49 * 1.5
	}
	return math.Round(rating*10) / 10
}

// AdjustForVehicle applies the vehicle adjustment when the job requires one:
// +5 with a vehicle, -10 without, unchanged when unknown. The result is
// clamped to [0,100]. Jobs without a vehicle requirement pass through
// untouched.
func AdjustForVehicle(score float64, status types.VehicleStatus, vehicleRequired bool) float64 {
	if !vehicleRequired {
		return score
	}
	switch status {
	case types.VehicleHas:
		score += vehicleBonus
	case types.VehicleNone:
		score -= vehiclePenalty
	}
	adjusted, _ := ClampScore(score)
	return adjusted
}

// Evaluate runs the full composition for a candidate on a job: clamp the raw
// score, apply the vehicle adjustment, round to the integer tier score, then
// derive tier and star rating from that rounded score. Deriving from the
// rounded value keeps the stored triple self-consistent: tier and rating are
// always exactly what the persisted tier score classifies to, even when a
// fractional score rounds up across a cut point. The second return reports
// whether the raw score had to be clamped.
func Evaluate(rawScore float64, status types.VehicleStatus, vehicleRequired bool) (Result, bool) {
	score, clamped := ClampScore(rawScore)
	score = AdjustForVehicle(score, status, vehicleRequired)
	rounded := math.Round(score)
	return Result{
		TierScore:  int(rounded),
		Tier:       Classify(rounded),
		StarRating: StarRating(rounded),
	}, clamped
}
