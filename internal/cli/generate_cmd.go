package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/waypoint/internal/cli/formatter"
	"github.com/alexanderramin/waypoint/internal/domain"
)

// profileFlags are the questionnaire answers accepted on the command line.
type profileFlags struct {
	owner          string
	goal           string
	area           string
	selfAssessment []string
	experience     string
	hours          string
	pace           string
	style          string
	difficulty     string
	languages      []string
	tools          string
	ageRange       string
	status         string
	feedback       string
}

func (f *profileFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.owner, "owner", "", "Account ID, email, or unique ID prefix")
	fs.StringVar(&f.goal, "goal", "", "Primary learning goal")
	fs.StringVar(&f.area, "area", "", "Specific area to focus on")
	fs.StringSliceVar(&f.selfAssessment, "self-assessment", nil, "Skills you already have (repeatable or comma-separated)")
	fs.StringVar(&f.experience, "experience", "", "Describe your experience")
	fs.StringVar(&f.hours, "hours", "", "Hours per week you can commit")
	fs.StringVar(&f.pace, "pace", "", "Preferred pace (relaxed, steady, intensive)")
	fs.StringVar(&f.style, "style", "", "Learning style")
	fs.StringVar(&f.difficulty, "difficulty", "", "Preferred difficulty")
	fs.StringArrayVar(&f.languages, "language", nil, "Language to cover as name[:priority] (repeatable)")
	fs.StringVar(&f.tools, "tools", "", "Tools you use or want to learn")
	fs.StringVar(&f.ageRange, "age-range", "", "Age range")
	fs.StringVar(&f.status, "status", "", "Current status (student, employed, ...)")
	fs.StringVar(&f.feedback, "feedback", "", "Anything else the roadmap should consider")
}

func (f *profileFlags) profile(ownerID string) (domain.LearningProfile, error) {
	langs, err := parseLanguages(f.languages)
	if err != nil {
		return domain.LearningProfile{}, err
	}
	return domain.LearningProfile{
		OwnerID:               ownerID,
		PrimaryGoal:           f.goal,
		SpecificArea:          f.area,
		SelfAssessment:        f.selfAssessment,
		ExperienceDescription: f.experience,
		HoursPerWeek:          f.hours,
		Pace:                  f.pace,
		LearningStyle:         f.style,
		Difficulty:            f.difficulty,
		Languages:             langs,
		Tools:                 f.tools,
		AgeRange:              f.ageRange,
		Status:                f.status,
		Feedback:              f.feedback,
	}, nil
}

// parseLanguages reads name[:priority] values. A missing priority takes the
// value's position, starting at 1.
func parseLanguages(values []string) ([]domain.LanguagePreference, error) {
	langs := make([]domain.LanguagePreference, 0, len(values))
	for i, v := range values {
		name, prio, hasPrio := strings.Cut(v, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid --language %q: name is empty", v)
		}
		p := i + 1
		if hasPrio {
			n, err := strconv.Atoi(strings.TrimSpace(prio))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid --language %q: priority must be a positive integer", v)
			}
			p = n
		}
		langs = append(langs, domain.LanguagePreference{Name: name, Priority: p})
	}
	return langs, nil
}

func newGenerateCmd(app *App) *cobra.Command {
	var flags profileFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a four-week learning roadmap",
		Long: "Generate a roadmap from questionnaire answers given as flags. On an\n" +
			"interactive terminal, omitting --goal opens the questionnaire instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			interactive := app.interactive()

			if flags.owner == "" && interactive {
				if err := selectOwner(ctx, app, cmd.InOrStdin(), cmd.OutOrStdout(), &flags.owner); err != nil {
					return err
				}
			}
			if flags.goal == "" && interactive {
				if err := runQuestionnaire(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), &flags); err != nil {
					return err
				}
			}

			ownerID, err := resolveOwnerID(ctx, app, flags.owner)
			if err != nil {
				return err
			}
			profile, err := flags.profile(ownerID)
			if err != nil {
				return err
			}

			stop := func() {}
			if interactive {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Building your roadmap...")
			}
			curriculum, err := app.Roadmaps.GenerateCurriculum(ctx, profile)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatRoadmap(curriculum))
			if curriculum.IsFallback() {
				fmt.Fprintln(out, formatter.Dim("The generation service was unavailable; this roadmap is a curated template."))
			}
			return nil
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}
