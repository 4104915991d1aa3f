package services

import (
	"gamenight/config"
	"gamenight/internal/database"
	"gamenight/internal/repositories"
)

type Service struct {
	Transaction *TransactionService
	Scheduler   *SchedulerService
	Dispatch    *DispatchService
	Mailer      Mailer
	Catalog     *CatalogService
}

func New(db database.DB, config config.Config, repos repositories.Repository) Service {
	transactionService := NewTransactionService(db)
	schedulerService := NewSchedulerService()
	mailer := NewMailer(config)
	dispatchService := NewDispatchService(schedulerService, repos.Task, repos.GameNight, db.SQL, mailer)
	catalogService := NewCatalogService(config)

	return Service{
		Transaction: transactionService,
		Scheduler:   schedulerService,
		Dispatch:    dispatchService,
		Mailer:      mailer,
		Catalog:     catalogService,
	}
}
