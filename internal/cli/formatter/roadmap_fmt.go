package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/taxonomy"
)

// FormatRoadmap renders one curriculum with its profile summary.
func FormatRoadmap(c *domain.Curriculum) string {
	var meta strings.Builder
	fmt.Fprintf(&meta, "%s  %s  %s\n", Bold(c.Profile.PrimaryGoal), ProvenanceBadge(c.Provenance), DomainBadge(c.Domain))

	field := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&meta, "%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value)
	}
	field("ID", c.ID)
	field("Focus", c.Profile.SpecificArea)
	field("Experience", c.Profile.ExperienceDescription)
	field("Assessed", c.Profile.SelfAssessmentText())
	field("Hours/week", c.Profile.HoursPerWeek)
	field("Pace", c.Profile.Pace)
	field("Style", c.Profile.LearningStyle)
	field("Difficulty", c.Profile.Difficulty)
	field("Tools", c.Profile.Tools)
	field("Languages", formatLanguages(c.Profile.Languages))
	field("Model", c.Model)
	field("Created", c.CreatedAt.Local().Format("Jan 2, 2006 15:04"))

	return meta.String() + "\n" + RenderBox("Roadmap", strings.TrimSpace(c.Text)) + "\n"
}

func formatLanguages(langs []domain.LanguagePreference) string {
	parts := make([]string, 0, len(langs))
	for _, l := range langs {
		if strings.TrimSpace(l.Name) == "" {
			continue
		}
		if l.Priority > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d)", l.Name, l.Priority))
		} else {
			parts = append(parts, l.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// FormatRoadmapList renders an owner's curricula, newest first as given.
func FormatRoadmapList(curricula []*domain.Curriculum, now time.Time) string {
	if len(curricula) == 0 {
		return Dim("No roadmaps yet. Run `waypoint generate` to create one.") + "\n"
	}
	rows := make([][]string, 0, len(curricula))
	for _, c := range curricula {
		rows = append(rows, []string{
			TruncID(c.ID),
			truncate(c.Profile.PrimaryGoal, 40),
			DomainBadge(c.Domain),
			ProvenanceBadge(c.Provenance),
			HumanTimestamp(c.CreatedAt, now),
		})
	}
	return RenderTable([]string{"ID", "GOAL", "DOMAIN", "SOURCE", "CREATED"}, rows)
}

// FormatAccountList renders accounts as a table.
func FormatAccountList(accounts []*domain.Account, now time.Time) string {
	if len(accounts) == 0 {
		return Dim("No accounts. Run `waypoint account add` to create one.") + "\n"
	}
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{a.ID, a.Name, a.Email, HumanTimestamp(a.CreatedAt, now)})
	}
	return RenderTable([]string{"ID", "NAME", "EMAIL", "CREATED"}, rows)
}

// FormatClassification renders which keyword decided a classification.
func FormatClassification(t *taxonomy.Taxonomy, m taxonomy.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Taxonomy:"), t.Name)
	fmt.Fprintf(&b, "%s %s %s\n", Dim("Result:  "), Bold(t.Label(m.Tag)), Dim("("+string(m.Tag)+")"))
	switch {
	case m.Keyword == "":
		fmt.Fprintf(&b, "%s %s\n", Dim("Matched: "), Dim("no keyword, default"))
	case m.Broad:
		fmt.Fprintf(&b, "%s %s %s\n", Dim("Matched: "), strconv.Quote(m.Keyword), Dim("(broad)"))
	default:
		fmt.Fprintf(&b, "%s %s\n", Dim("Matched: "), strconv.Quote(m.Keyword))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
