package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrOwnerRequired is returned when a learning profile has no owner.
	ErrOwnerRequired = errors.New("owner ID is required")

	// ErrPrimaryGoalRequired is returned when a learning profile has a
	// missing or blank primary goal.
	ErrPrimaryGoalRequired = errors.New("primary goal is required")
)

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// LanguagePreference is a subject the learner wants covered, with the
// priority they assigned to it in the questionnaire.
type LanguagePreference struct {
	Name     string
	Priority int
}

// LearningProfile is the questionnaire a learner submits to get a roadmap.
// Only OwnerID and PrimaryGoal are required; the remaining fields shape the
// prompt and are stored verbatim with the generated curriculum.
type LearningProfile struct {
	OwnerID     string `validate:"required,notblank"`
	PrimaryGoal string `validate:"notblank"`

	SpecificArea          string
	SelfAssessment        []string
	ExperienceDescription string

	HoursPerWeek string
	Pace         string

	LearningStyle string
	Difficulty    string

	Languages []LanguagePreference
	Tools     string

	AgeRange string
	Status   string
	Feedback string
}

// Validate checks the preconditions that must hold before generation runs.
// Owner is checked before the goal so callers see the same error order as
// the HTTP contract.
func (p *LearningProfile) Validate() error {
	if p == nil {
		return ErrPrimaryGoalRequired
	}
	err := profileValidator.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating learning profile: %w", err)
	}
	for _, fe := range fieldErrs {
		switch fe.StructField() {
		case "OwnerID":
			return ErrOwnerRequired
		case "PrimaryGoal":
			return ErrPrimaryGoalRequired
		}
	}
	return fmt.Errorf("invalid learning profile: %w", err)
}

// LanguageNames returns the non-blank language names in questionnaire order.
func (p *LearningProfile) LanguageNames() []string {
	names := make([]string, 0, len(p.Languages))
	for _, l := range p.Languages {
		if n := strings.TrimSpace(l.Name); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// SelfAssessmentText joins the self-assessment tags the way they are stored.
func (p *LearningProfile) SelfAssessmentText() string {
	return strings.Join(p.SelfAssessment, ", ")
}

// Clone returns a deep copy so a stored snapshot never aliases the caller's
// slices.
func (p *LearningProfile) Clone() LearningProfile {
	c := *p
	if p.SelfAssessment != nil {
		c.SelfAssessment = append([]string(nil), p.SelfAssessment...)
	}
	if p.Languages != nil {
		c.Languages = append([]LanguagePreference(nil), p.Languages...)
	}
	return c
}
