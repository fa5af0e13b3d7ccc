package scoring

import (
	"strings"

	"github.com/talos/hvac-ats/internal/types"
)

// transferableKeywords flag backgrounds that tend to convert well into HVAC
// field roles even without direct trade experience.
var transferableKeywords = []string{
	"maintenance",
	"customer service",
	"promoted",
	"manager",
	"supervisor",
}

// GiveThemAChance decides whether an edge-case candidate deserves a second
// look despite landing in a lower band. It never applies to red-tier scores.
// The three signals, in order: high upside with modestly short experience,
// overqualification with a strong score, and a transferable background with a
// well-presented resume.
func GiveThemAChance(analysis *types.AnalysisResult, job *types.Job) bool {
	if analysis.RawScore < yellowFloor {
		return false
	}

	yearsExp := analysis.YearsOfExperience
	required := job.RequiredYearsExp

	// Short on years but within striking distance, backed by certifications
	// or technical skills.
	if yearsExp < required && yearsExp >= required*0.5 {
		if analysis.CertificationsScore >= 80 || analysis.TechnicalSkillsScore >= 80 {
			return true
		}
	}

	// Overqualified but still scoring well; likely to perform.
	if yearsExp > required*2 && analysis.RawScore >= 75 {
		return true
	}

	summary := strings.ToLower(analysis.Summary)
	for _, keyword := range transferableKeywords {
		if strings.Contains(summary, keyword) && analysis.PresentationScore >= 70 {
			return true
		}
	}

	return false
}
