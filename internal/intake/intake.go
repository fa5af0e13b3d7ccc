// Package intake validates and normalizes the payload produced by the
// external resume-analysis step before any of it is trusted as entity data.
// Validation happens once here; downstream code works with typed values.
package intake

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/talos/hvac-ats/internal/sanitize"
	"github.com/talos/hvac-ats/internal/schemas"
	"github.com/talos/hvac-ats/internal/types"
)

var validate = validator.New()

// Payload mirrors the analysis-result JSON document.
type Payload struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Analysis AnalysisPayload `json:"analysis" validate:"required"`
}

// AnalysisPayload is the analysis block of the document. The validate tags
// duplicate the schema's range checks on purpose: the schema guards the wire,
// the tags guard direct in-process construction.
type AnalysisPayload struct {
	RawScore             float64  `json:"raw_score" validate:"gte=0,lte=100"`
	YearsOfExperience    float64  `json:"years_of_experience" validate:"gte=0"`
	Certifications       []string `json:"certifications"`
	CertificationsScore  float64  `json:"certifications_score" validate:"gte=0,lte=100"`
	TechnicalSkillsScore float64  `json:"technical_skills_score" validate:"gte=0,lte=100"`
	PresentationScore    float64  `json:"presentation_score" validate:"gte=0,lte=100"`
	Summary              string   `json:"summary"`
	VehicleStatus        string   `json:"vehicle_status"`
	GiveThemAChance      bool     `json:"give_them_a_chance"`
}

// Result is the sanitized, typed outcome of a successful intake.
type Result struct {
	Candidate types.Candidate
	Analysis  types.AnalysisResult
}

// Parse validates raw analysis JSON (schema, then range checks, then field
// sanitization) and produces typed entities. Field-level problems come back
// as *schemas.ValidationError; they are user-facing, never fatal.
func Parse(raw []byte) (*Result, error) {
	if err := schemas.ValidateAnalysisResult(raw); err != nil {
		return nil, err
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis payload: %w", err)
	}

	if err := validate.Struct(&payload); err != nil {
		return nil, asFieldErrors(err)
	}

	var fieldErrs []schemas.FieldError

	email := sanitize.Email(payload.Email)
	if email == nil {
		fieldErrs = append(fieldErrs, schemas.FieldError{
			Field:   "email",
			Message: "a valid email address is required",
		})
	}

	// An unusable phone is dropped rather than rejected; email is the
	// identity hint, phone is a convenience.
	phone := sanitize.Phone(payload.Phone)
	name := sanitize.TrimString(payload.Name)

	if len(fieldErrs) > 0 {
		return nil, &schemas.ValidationError{Errors: fieldErrs}
	}

	certs := make([]string, 0, len(payload.Analysis.Certifications))
	for _, c := range payload.Analysis.Certifications {
		if trimmed := sanitize.TrimString(c); trimmed != nil {
			certs = append(certs, *trimmed)
		}
	}

	return &Result{
		Candidate: types.Candidate{
			Name:  name,
			Email: email,
			Phone: phone,
		},
		Analysis: types.AnalysisResult{
			RawScore:             payload.Analysis.RawScore,
			YearsOfExperience:    payload.Analysis.YearsOfExperience,
			Certifications:       certs,
			CertificationsScore:  payload.Analysis.CertificationsScore,
			TechnicalSkillsScore: payload.Analysis.TechnicalSkillsScore,
			PresentationScore:    payload.Analysis.PresentationScore,
			Summary:              payload.Analysis.Summary,
			VehicleStatus:        types.ParseVehicleStatus(payload.Analysis.VehicleStatus),
			GiveThemAChance:      payload.Analysis.GiveThemAChance,
		},
	}, nil
}

// asFieldErrors converts validator.ValidationErrors into the shared
// field-error shape so callers see one error type for all boundary failures.
func asFieldErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	converted := &schemas.ValidationError{
		Errors: make([]schemas.FieldError, 0, len(verrs)),
	}
	for _, fe := range verrs {
		converted.Errors = append(converted.Errors, schemas.FieldError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}
	return converted
}
