package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talos/hvac-ats/internal/types"
)

func TestClassify_CutPoints(t *testing.T) {
	assert.Equal(t, types.TierRed, Classify(49))
	assert.Equal(t, types.TierYellow, Classify(50))
	assert.Equal(t, types.TierYellow, Classify(79))
	assert.Equal(t, types.TierGreen, Classify(80))
	assert.Equal(t, types.TierGreen, Classify(100))
	assert.Equal(t, types.TierRed, Classify(0))
}

func TestClassify_EveryIntegerScoreHasAValidTier(t *testing.T) {
	for s := 0; s <= 100; s++ {
		tier := Classify(float64(s))
		assert.True(t, tier.Valid(), "score %d produced tier %q", s, tier)
	}
}

func TestClassify_ClampsOutOfRangeInput(t *testing.T) {
	assert.Equal(t, types.TierGreen, Classify(150))
	assert.Equal(t, types.TierRed, Classify(-10))
}

func TestStarRating_BandBoundaries(t *testing.T) {
	assert.InDelta(t, 5.0, StarRating(100), 1e-9)
	assert.InDelta(t, 4.0, StarRating(80), 1e-9)
	assert.InDelta(t, 3.9, StarRating(79), 1e-9)
	assert.InDelta(t, 2.0, StarRating(50), 1e-9)
	assert.InDelta(t, 1.5, StarRating(49), 1e-9)
	assert.InDelta(t, 0.0, StarRating(0), 1e-9)
}

func TestStarRating_StaysInsideTierBand(t *testing.T) {
	for s := 0; s <= 100; s++ {
		rating := StarRating(float64(s))
		switch Classify(float64(s)) {
		case types.TierGreen:
			assert.GreaterOrEqual(t, rating, 4.0, "score %d", s)
			assert.LessOrEqual(t, rating, 5.0, "score %d", s)
		case types.TierYellow:
			assert.GreaterOrEqual(t, rating, 2.0, "score %d", s)
			assert.LessOrEqual(t, rating, 3.9, "score %d", s)
		case types.TierRed:
			assert.GreaterOrEqual(t, rating, 0.0, "score %d", s)
			assert.LessOrEqual(t, rating, 1.5, "score %d", s)
		}
	}
}

func TestStarRating_OneDecimalPlace(t *testing.T) {
	for s := 0; s <= 100; s++ {
		rating := StarRating(float64(s))
		scaled := rating * 10
		assert.InDelta(t, scaled, float64(int(scaled+0.5)), 1e-9, "score %d rating %v", s, rating)
	}
}

func TestAdjustForVehicle_NoRequirementPassesThrough(t *testing.T) {
	for _, status := range []types.VehicleStatus{types.VehicleHas, types.VehicleNone, types.VehicleUnknown} {
		assert.Equal(t, 70.0, AdjustForVehicle(70, status, false))
	}
}

func TestAdjustForVehicle_Required(t *testing.T) {
	assert.Equal(t, 75.0, AdjustForVehicle(70, types.VehicleHas, true))
	assert.Equal(t, 60.0, AdjustForVehicle(70, types.VehicleNone, true))
	assert.Equal(t, 70.0, AdjustForVehicle(70, types.VehicleUnknown, true))
}

func TestAdjustForVehicle_Clamps(t *testing.T) {
	assert.Equal(t, 100.0, AdjustForVehicle(98, types.VehicleHas, true))
	assert.Equal(t, 0.0, AdjustForVehicle(5, types.VehicleNone, true))
}

func TestClampScore(t *testing.T) {
	s, clamped := ClampScore(50)
	assert.Equal(t, 50.0, s)
	assert.False(t, clamped)

	s, clamped = ClampScore(120)
	assert.Equal(t, 100.0, s)
	assert.True(t, clamped)

	s, clamped = ClampScore(-3)
	assert.Equal(t, 0.0, s)
	assert.True(t, clamped)
}

func TestEvaluate_AdjustsBeforeClassifying(t *testing.T) {
	// 79 raw with a vehicle on a vehicle-required job crosses into green.
	res, clamped := Evaluate(79, types.VehicleHas, true)
	assert.False(t, clamped)
	assert.Equal(t, 84, res.TierScore)
	assert.Equal(t, types.TierGreen, res.Tier)
	assert.InDelta(t, 4.2, res.StarRating, 1e-9)

	// 55 raw without a vehicle drops into red.
	res, _ = Evaluate(55, types.VehicleNone, true)
	assert.Equal(t, 45, res.TierScore)
	assert.Equal(t, types.TierRed, res.Tier)
}

func TestEvaluate_FractionalScoreStaysSelfConsistent(t *testing.T) {
	// 79.5 rounds up to a stored score of 80; tier and rating must follow
	// the stored score across the cut point, not the unrounded input.
	res, clamped := Evaluate(79.5, types.VehicleUnknown, false)
	assert.False(t, clamped)
	assert.Equal(t, 80, res.TierScore)
	assert.Equal(t, types.TierGreen, res.Tier)
	assert.InDelta(t, 4.0, res.StarRating, 1e-9)

	// 49.5 rounds up across the yellow cut point.
	res, _ = Evaluate(49.5, types.VehicleUnknown, false)
	assert.Equal(t, 50, res.TierScore)
	assert.Equal(t, types.TierYellow, res.Tier)
	assert.InDelta(t, 2.0, res.StarRating, 1e-9)

	// Sweep the fractional range: the stored triple always agrees.
	for s := 0.0; s <= 100.0; s += 0.25 {
		res, _ := Evaluate(s, types.VehicleUnknown, false)
		assert.Equal(t, Classify(float64(res.TierScore)), res.Tier, "raw %v", s)
		assert.InDelta(t, StarRating(float64(res.TierScore)), res.StarRating, 1e-9, "raw %v", s)
	}
}

func TestEvaluate_ReportsClampedInput(t *testing.T) {
	res, clamped := Evaluate(130, types.VehicleUnknown, false)
	assert.True(t, clamped)
	assert.Equal(t, 100, res.TierScore)
	assert.Equal(t, types.TierGreen, res.Tier)
	assert.Equal(t, 5.0, res.StarRating)
}

func TestGiveThemAChance_RedTierNeverQualifies(t *testing.T) {
	analysis := &types.AnalysisResult{
		RawScore:             40,
		YearsOfExperience:    10,
		CertificationsScore:  95,
		TechnicalSkillsScore: 95,
		Summary:              "promoted to supervisor",
		PresentationScore:    90,
	}
	job := &types.Job{RequiredYearsExp: 2}
	assert.False(t, GiveThemAChance(analysis, job))
}

func TestGiveThemAChance_ShortOnYearsWithStrongCertifications(t *testing.T) {
	analysis := &types.AnalysisResult{
		RawScore:            60,
		YearsOfExperience:   3,
		CertificationsScore: 85,
	}
	job := &types.Job{RequiredYearsExp: 5}
	assert.True(t, GiveThemAChance(analysis, job))

	// Below half the requirement does not qualify.
	analysis.YearsOfExperience = 2
	assert.False(t, GiveThemAChance(analysis, job))
}

func TestGiveThemAChance_Overqualified(t *testing.T) {
	analysis := &types.AnalysisResult{
		RawScore:          78,
		YearsOfExperience: 12,
	}
	job := &types.Job{RequiredYearsExp: 5}
	assert.True(t, GiveThemAChance(analysis, job))

	analysis.RawScore = 70
	assert.False(t, GiveThemAChance(analysis, job))
}

func TestGiveThemAChance_TransferableBackground(t *testing.T) {
	analysis := &types.AnalysisResult{
		RawScore:          55,
		YearsOfExperience: 1,
		Summary:           "Five years in building Maintenance and customer service.",
		PresentationScore: 75,
	}
	job := &types.Job{RequiredYearsExp: 4}
	assert.True(t, GiveThemAChance(analysis, job))

	analysis.PresentationScore = 60
	assert.False(t, GiveThemAChance(analysis, job))
}
