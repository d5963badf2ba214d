package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/waypoint/internal/httpapi"
	"github.com/alexanderramin/waypoint/internal/service"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Accounts service.AccountService
	Roadmaps service.RoadmapService

	// ServerAddr is the default listen address for serve.
	ServerAddr string
	Server     httpapi.Options

	// IsInteractive reports whether stdin is a terminal. Nil means never,
	// so tests and pipes always take the flag-driven path.
	IsInteractive func() bool

	// Now is the clock used for relative timestamps. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "waypoint" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "waypoint",
		Short: "Personalized four-week learning roadmaps",
		Long: "waypoint turns a short learning questionnaire into a four-week curriculum.\n" +
			"When the generation service is unavailable it falls back to a curated\n" +
			"template for the detected domain.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAccountCmd(app),
		newGenerateCmd(app),
		newRoadmapCmd(app),
		newClassifyCmd(),
		newServeCmd(app),
	)
	return root
}
