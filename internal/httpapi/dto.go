package httpapi

import (
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// Error codes returned in roadmapResponse.ErrorCode.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidUserID      = "INVALID_USER_ID"
	CodeInvalidPrimaryGoal = "INVALID_PRIMARY_GOAL"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeRoadmapNotFound    = "ROADMAP_NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

type languageDTO struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// roadmapRequest is the body of POST /api/roadmap/generate.
type roadmapRequest struct {
	UserID                string        `json:"userId"`
	PrimaryGoal           string        `json:"primaryGoal"`
	SpecificArea          string        `json:"specificArea"`
	SelfAssessment        []string      `json:"selfAssessment"`
	ExperienceDescription string        `json:"experienceDescription"`
	HoursPerWeek          string        `json:"hoursPerWeek"`
	Pace                  string        `json:"pace"`
	LearningStyle         string        `json:"learningStyle"`
	Difficulty            string        `json:"difficulty"`
	Languages             []languageDTO `json:"languages"`
	Tools                 string        `json:"tools"`
	AgeRange              string        `json:"ageRange"`
	Status                string        `json:"status"`
	Feedback              string        `json:"feedback"`
}

func (r roadmapRequest) profile() domain.LearningProfile {
	p := domain.LearningProfile{
		OwnerID:               r.UserID,
		PrimaryGoal:           r.PrimaryGoal,
		SpecificArea:          r.SpecificArea,
		SelfAssessment:        r.SelfAssessment,
		ExperienceDescription: r.ExperienceDescription,
		HoursPerWeek:          r.HoursPerWeek,
		Pace:                  r.Pace,
		LearningStyle:         r.LearningStyle,
		Difficulty:            r.Difficulty,
		Tools:                 r.Tools,
		AgeRange:              r.AgeRange,
		Status:                r.Status,
		Feedback:              r.Feedback,
	}
	for _, l := range r.Languages {
		p.Languages = append(p.Languages, domain.LanguagePreference{Name: l.Name, Priority: l.Priority})
	}
	return p
}

type roadmapDTO struct {
	ID                    string        `json:"id"`
	UserID                string        `json:"userId"`
	PrimaryGoal           string        `json:"primaryGoal"`
	SpecificArea          string        `json:"specificArea,omitempty"`
	SelfAssessment        string        `json:"selfAssessment,omitempty"`
	ExperienceDescription string        `json:"experienceDescription,omitempty"`
	HoursPerWeek          string        `json:"hoursPerWeek,omitempty"`
	Pace                  string        `json:"pace,omitempty"`
	LearningStyle         string        `json:"learningStyle,omitempty"`
	Difficulty            string        `json:"difficulty,omitempty"`
	Languages             []languageDTO `json:"languages"`
	GeneratedRoadmap      string        `json:"generatedRoadmap"`
	Provenance            string        `json:"provenance"`
	Domain                string        `json:"domain,omitempty"`
	Model                 string        `json:"model,omitempty"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

func toRoadmapDTO(c *domain.Curriculum) roadmapDTO {
	langs := make([]languageDTO, 0, len(c.Profile.Languages))
	for _, l := range c.Profile.Languages {
		langs = append(langs, languageDTO{Name: l.Name, Priority: l.Priority})
	}
	return roadmapDTO{
		ID:                    c.ID,
		UserID:                c.Profile.OwnerID,
		PrimaryGoal:           c.Profile.PrimaryGoal,
		SpecificArea:          c.Profile.SpecificArea,
		SelfAssessment:        c.Profile.SelfAssessmentText(),
		ExperienceDescription: c.Profile.ExperienceDescription,
		HoursPerWeek:          c.Profile.HoursPerWeek,
		Pace:                  c.Profile.Pace,
		LearningStyle:         c.Profile.LearningStyle,
		Difficulty:            c.Profile.Difficulty,
		Languages:             langs,
		GeneratedRoadmap:      c.Text,
		Provenance:            string(c.Provenance),
		Domain:                c.Domain,
		Model:                 c.Model,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

// roadmapResponse wraps the result of a generation request.
type roadmapResponse struct {
	Success   bool        `json:"success"`
	Roadmap   *roadmapDTO `json:"roadmap,omitempty"`
	Message   string      `json:"message,omitempty"`
	ErrorCode string      `json:"errorCode,omitempty"`
}
