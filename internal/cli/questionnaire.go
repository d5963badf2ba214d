package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/waypoint/internal/cli/formatter"
)

func waypointHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func options(values ...string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values))
	for _, v := range values {
		opts = append(opts, huh.NewOption(v, v))
	}
	return opts
}

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// questionnaireForm asks the same questions as the generate flags. Answers
// already given as flags are kept as defaults.
func questionnaireForm(f *profileFlags, languages *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is your main learning goal?").
				Placeholder("land a junior frontend role").
				Value(&f.goal).
				Validate(requiredText),
			huh.NewInput().
				Title("Which area do you want to focus on?").
				Placeholder("react, data analysis, unity...").
				Value(&f.area),
			huh.NewInput().
				Title("Tools you use or want to learn").
				Value(&f.tools),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("What do you already know?").
				Options(options("HTML/CSS", "JavaScript", "Python", "SQL", "Git", "Linux", "Cloud basics", "None yet")...).
				Value(&f.selfAssessment),
			huh.NewText().
				Title("Describe your experience").
				Value(&f.experience),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Hours per week").
				Options(options("under 5", "5-10", "10-15", "15-20", "20+")...).
				Value(&f.hours),
			huh.NewSelect[string]().
				Title("Pace").
				Options(options("relaxed", "steady", "intensive")...).
				Value(&f.pace),
			huh.NewSelect[string]().
				Title("Learning style").
				Options(options("hands-on projects", "video courses", "reading documentation", "mixed")...).
				Value(&f.style),
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(options("beginner", "intermediate", "advanced")...).
				Value(&f.difficulty),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Languages to cover, most important first").
				Description("Comma-separated, e.g. JavaScript, Python").
				Value(languages),
		),
	).WithTheme(waypointHuhTheme()).WithShowHelp(false)
}

// runQuestionnaire fills f from an interactive form on in/out.
func runQuestionnaire(ctx context.Context, in io.Reader, out io.Writer, f *profileFlags) error {
	languages := strings.Join(f.languages, ", ")
	form := questionnaireForm(f, &languages).
		WithProgramOptions(tea.WithInput(in), tea.WithOutput(out))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("questionnaire cancelled")
		}
		return fmt.Errorf("running questionnaire: %w", err)
	}
	f.languages = splitLanguageList(languages)
	return nil
}

// splitLanguageList turns "Go, Rust" into name:priority values in order.
func splitLanguageList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !strings.Contains(name, ":") {
			name = fmt.Sprintf("%s:%d", name, len(out)+1)
		}
		out = append(out, name)
	}
	return out
}

// selectOwner asks which account the roadmap is for.
func selectOwner(ctx context.Context, app *App, in io.Reader, out io.Writer, owner *string) error {
	accounts, err := app.Accounts.List(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return fmt.Errorf("no accounts yet; create one with `waypoint account add`")
	}
	opts := make([]huh.Option[string], 0, len(accounts))
	for _, a := range accounts {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s <%s>", a.Name, a.Email), a.ID))
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Who is this roadmap for?").Options(opts...).Value(owner),
	)).WithTheme(waypointHuhTheme()).WithShowHelp(false).
		WithProgramOptions(tea.WithInput(in), tea.WithOutput(out))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("questionnaire cancelled")
		}
		return fmt.Errorf("selecting account: %w", err)
	}
	return nil
}
