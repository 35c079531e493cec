package cmd

import (
	"log/slog"

	"lifebank/internal/adapters/in/auth"
	"lifebank/internal/adapters/out/clock"
	"lifebank/internal/adapters/out/postgres"
	"lifebank/internal/core/application/usecases/commands"
	"lifebank/internal/core/application/usecases/queries"
	"lifebank/internal/core/domain/services"
	"lifebank/internal/core/ports"
	"lifebank/internal/jobs"
	"lifebank/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config        Config
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	clock         ports.Clock
	authenticator ports.Authenticator
	authorizer    services.Authorizer
	notifier      *services.EventNotifier
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	m *metrics.Metrics,
) CompositionRoot {
	systemClock := clock.NewSystemClock()

	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:         systemClock,
		authenticator: auth.NewContextAuthenticator(),
		authorizer:    services.NewAdministratorAuthorizer(),
		notifier:      services.NewEventNotifier(publisher, systemClock, logger, m),
		logger:        logger,
		metrics:       m,
	}
}

func (c *CompositionRoot) CreateInitializeCommandHandler() commands.InitializeCommandHandler {
	var f commands.InstanceUoWFactory = FuncInstanceUoWFactory(func() commands.InstanceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewInitializeCommandHandler(f, c.authenticator, c.metrics)
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(
		c.requestUoWFactory(), c.authenticator, c.authorizer, c.clock, c.notifier, c.metrics)
}

func (c *CompositionRoot) CreateUpdateRequestStatusCommandHandler() commands.UpdateRequestStatusCommandHandler {
	return commands.NewUpdateRequestStatusCommandHandler(
		c.requestUoWFactory(), c.authenticator, c.authorizer, c.clock, c.notifier, c.metrics)
}

func (c *CompositionRoot) CreateAssignBloodUnitsCommandHandler() commands.AssignBloodUnitsCommandHandler {
	return commands.NewAssignBloodUnitsCommandHandler(
		c.requestUoWFactory(), c.authenticator, c.authorizer, c.notifier, c.metrics)
}

// Authenticator is shared by the command handlers and the HTTP server.
func (c *CompositionRoot) Authenticator() ports.Authenticator {
	return c.authenticator
}

func (c *CompositionRoot) CreateGetRequestQueryHandler() queries.GetRequestQueryHandler {
	return queries.NewGetRequestQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRequestsQueryHandler() queries.ListRequestsQueryHandler {
	return queries.NewListRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueRequestsQueryHandler() queries.GetOverdueRequestsQueryHandler {
	return queries.NewGetOverdueRequestsQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOverdueRequestsJob(
			c.CreateGetOverdueRequestsQueryHandler(),
			c.config.OverdueScanSchedule,
			c.logger,
			c.metrics,
		),
	)
}

func (c *CompositionRoot) requestUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncInstanceUoWFactory func() commands.InstanceUoW

func (f FuncInstanceUoWFactory) Create() commands.InstanceUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
