package cmd

import (
	"log/slog"
	"time"

	"orderintegration/internal/adapters/out/erp"
	"orderintegration/internal/adapters/out/postgres"
	"orderintegration/internal/core/application/usecases/commands"
	"orderintegration/internal/core/application/usecases/queries"
	"orderintegration/internal/core/ports"
	"orderintegration/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	erpSender      ports.ErpSender
	staleThreshold time.Duration
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	erpConfig erp.Config,
	staleThreshold time.Duration,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		erpSender:      erp.NewSimulator(erpConfig, logger),
		staleThreshold: staleThreshold,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateSendOrderToErpCommandHandler() commands.SendOrderToErpCommandHandler {
	var f commands.IntegrationUoWFactory = FuncIntegrationUoWFactory(func() commands.IntegrationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendOrderToErpCommandHandler(f, c.erpSender)
}

func (c *CompositionRoot) CreateProcessErpWebhookCommandHandler() commands.ProcessErpWebhookCommandHandler {
	var f commands.IntegrationUoWFactory = FuncIntegrationUoWFactory(func() commands.IntegrationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessErpWebhookCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditEventsQueryHandler() queries.GetAuditEventsQueryHandler {
	return queries.NewGetAuditEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleAttemptsQueryHandler() queries.GetStaleAttemptsQueryHandler {
	return queries.NewGetStaleAttemptsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetStaleAttemptsQueryHandler(), c.staleThreshold, logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncIntegrationUoWFactory func() commands.IntegrationUoW

func (f FuncIntegrationUoWFactory) Create() commands.IntegrationUoW {
	return f()
}
