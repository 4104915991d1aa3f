package app

import (
	"context"

	"gamenight/config"
	"gamenight/internal/controllers"
	"gamenight/internal/database"
	"gamenight/internal/handlers/middleware"
	"gamenight/internal/jobs"
	"gamenight/internal/metrics"
	"gamenight/internal/repositories"
	"gamenight/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database     database.DB
	Middleware   middleware.Middleware
	Config       config.Config
	Services     services.Service
	Repositories repositories.Repository
	Controllers  controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	metrics.Register()

	repos := repositories.New(db)
	service := services.New(db, config, repos)
	controllers := controllers.New(service, repos)
	middleware := middleware.New(db, config, repos)

	if config.SchedulerEnabled {
		if err := service.Scheduler.AddJob(jobs.NewTaskCleanupJob(repos.Task)); err != nil {
			return &App{}, log.Err("failed to register task cleanup job", err)
		}

		if err := service.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}

		// Timers do not survive a restart; rebuild them from the store.
		if err := service.Dispatch.Resync(context.Background()); err != nil {
			return &App{}, log.Err("failed to resync pending notifications", err)
		}
	}

	app := &App{
		Database:     db,
		Config:       config,
		Middleware:   middleware,
		Services:     service,
		Repositories: repos,
		Controllers:  controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}
	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Dispatch,
		a.Services.Mailer,
		a.Services.Catalog,
		a.Controllers.GameNight,
		a.Controllers.Game,
		a.Controllers.Contact,
		a.Controllers.Feedback,
		a.Controllers.Stats,
		a.Controllers.Tag,
	}
	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil && a.Services.Scheduler.IsRunning() {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
