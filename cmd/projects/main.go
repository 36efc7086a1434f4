package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/projects/internal/cli"
	"github.com/alexanderramin/projects/internal/config"
	"github.com/alexanderramin/projects/internal/db"
	"github.com/alexanderramin/projects/internal/repository"
	"github.com/alexanderramin/projects/internal/rowcodec"
	"github.com/alexanderramin/projects/internal/service"
	"github.com/alexanderramin/projects/pkg/logging"
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

	logger := logging.Setup(cfg.Log.Level)

	database, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database ready", "driver", cfg.DB.Driver)

	// Every repository call runs in its own transaction on its own connection.
	uow := db.NewSQLUnitOfWork(database, cfg.DB.Driver)
	projectRepo := repository.NewSQLProjectRepo(uow, rowcodec.Tagged{})

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, service.NewLogUseCaseObserver(logger)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
