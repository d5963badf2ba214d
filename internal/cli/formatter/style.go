package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/taxonomy"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// ProvenanceBadge shows whether a curriculum was generated or came from a
// template.
func ProvenanceBadge(p domain.Provenance) string {
	switch p {
	case domain.ProvenanceGenerated:
		return StyleGreen.Render("● GENERATED")
	case domain.ProvenanceFallback:
		return StyleYellow.Render("● TEMPLATE")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// DomainBadge renders the learning-domain label for a stored tag.
func DomainBadge(tag string) string {
	if tag == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(taxonomy.Learning.Label(taxonomy.Tag(tag)))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanTimestamp returns a relative time for recent moments and a date
// otherwise.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// RenderTable renders aligned columns under a styled header row. Widths are
// measured on visible characters so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	const gap = 2

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+gap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("─", w)
	}
	writeRow(seps, func(s string) string { return StyleDim.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
