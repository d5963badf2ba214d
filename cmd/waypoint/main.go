package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/waypoint/internal/cli"
	"github.com/alexanderramin/waypoint/internal/config"
	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/httpapi"
	"github.com/alexanderramin/waypoint/internal/intelligence"
	"github.com/alexanderramin/waypoint/internal/llm"
	"github.com/alexanderramin/waypoint/internal/repository"
	"github.com/alexanderramin/waypoint/internal/service"
	"github.com/alexanderramin/waypoint/internal/template"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	accountRepo := repository.NewSQLiteAccountRepo(database)
	curriculumRepo := repository.NewSQLiteCurriculumRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	llmObservers := llm.MultiObserver{llm.MetricsObserver{}}
	useCaseObservers := []service.UseCaseObserver{service.MetricsUseCaseObserver{}}
	if cfg.Log.Calls {
		llmObservers = append(llmObservers, llm.NewLogObserver(os.Stderr))
		useCaseObservers = append(useCaseObservers, service.NewLogUseCaseObserver(os.Stderr))
	}

	generator, err := llm.NewGenerator(cfg.LLM, llmObservers)
	if err != nil {
		return fmt.Errorf("configuring generator: %w", err)
	}
	engine := intelligence.NewCurriculumService(generator, template.Default())

	app := &cli.App{
		Accounts:   service.NewAccountService(accountRepo),
		Roadmaps:   service.NewRoadmapService(accountRepo, curriculumRepo, engine, uow, useCaseObservers...),
		ServerAddr: cfg.Server.Addr,
		Server: httpapi.Options{
			RateLimit: cfg.Server.RateLimit,
			Logger:    slog.New(slog.NewTextHandler(os.Stderr, nil)),
		},
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
