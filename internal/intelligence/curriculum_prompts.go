package intelligence

import (
	"strings"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// Substitutions used when a profile field is blank. They only affect the
// prompt text; the profile itself is never modified.
const (
	DefaultSubject    = "a general technical subject"
	DefaultFocusArea  = "general skill-building"
	DefaultExperience = "complete beginner, no prior experience"
	DefaultPacing     = "15–20 hours per week at an intensive pace"
	DefaultStyle      = "interactive"
	DefaultDifficulty = "fundamentals"
	DefaultTools      = "open to exploring standard tools for the subject"
)

// ComposeCurriculumPrompt builds the instruction sent to the generation
// service. Pure and deterministic.
func ComposeCurriculumPrompt(p domain.LearningProfile) string {
	subject := orDefault(strings.Join(p.LanguageNames(), ", "), DefaultSubject)

	var b strings.Builder
	b.WriteString("You are an expert curriculum designer. ")
	b.WriteString("Create a personalized 4-week learning roadmap for ")
	b.WriteString(subject)
	b.WriteString(".\n\n")

	b.WriteString("Learner profile:\n")
	b.WriteString("- Goal: ")
	b.WriteString(strings.TrimSpace(p.PrimaryGoal))
	b.WriteString("\n- Focus area: ")
	b.WriteString(orDefault(p.SpecificArea, DefaultFocusArea))
	b.WriteString("\n- Experience: ")
	b.WriteString(orDefault(p.ExperienceDescription, DefaultExperience))
	b.WriteString("\n- Time commitment: ")
	b.WriteString(pacing(p.HoursPerWeek, p.Pace))
	b.WriteString("\n- Learning style: ")
	b.WriteString(orDefault(p.LearningStyle, DefaultStyle))
	b.WriteString("\n- Difficulty: ")
	b.WriteString(orDefault(p.Difficulty, DefaultDifficulty))
	b.WriteString("\n- Tools: ")
	b.WriteString(orDefault(p.Tools, DefaultTools))
	b.WriteString("\n\n")

	b.WriteString("Requirements:\n")
	b.WriteString("- Organize the roadmap into exactly four weekly sections, headed \"Week 1\" through \"Week 4\".\n")
	b.WriteString("- Each week must build on the previous one with increasing complexity.\n")
	b.WriteString("- For each week list concrete topics, one hands-on project, and specific resources as bullet points.\n")
	b.WriteString("- Match the stated learning style, difficulty, and time commitment.\n")
	b.WriteString("- Avoid generic advice and placeholder content; every item must be specific and actionable.\n")
	b.WriteString("- Respond with human-readable text only.")

	return b.String()
}

func pacing(hours, pace string) string {
	hours = strings.TrimSpace(hours)
	pace = strings.TrimSpace(pace)
	switch {
	case hours != "" && pace != "":
		return hours + " hours per week at a " + pace + " pace"
	case hours != "":
		return hours + " hours per week"
	case pace != "":
		return "a " + pace + " pace"
	default:
		return DefaultPacing
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
