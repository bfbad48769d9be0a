package cmd

import (
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/userrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use-case handlers. Handlers are created
// per call; the shared pieces (database, publisher, notifier) live here.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	userRepo   *userrepo.GormUserRepository
	notifier   ports.Notifier
	publisher  ports.OrderEventPublisher
	dedup      ports.ReminderDeduplicator
	logger     *zap.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	publisher ports.OrderEventPublisher,
	dedup ports.ReminderDeduplicator,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		userRepo:   userrepo.NewGormUserRepository(gormDB),
		notifier:   notifier,
		publisher:  publisher,
		dedup:      dedup,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRequestCancelOrderCommandHandler() commands.RequestCancelOrderCommandHandler {
	return commands.NewRequestCancelOrderCommandHandler(
		c.orderUoWFactory(),
		c.userRepo,
		c.notifier,
		c.publisher,
		services.NewCancelRequestNotificationComposer(),
		c.logger,
	)
}

// UserRepository exposes the shared user read model for adapters that resolve
// caller identity.
func (c *CompositionRoot) UserRepository() ports.UserRepository {
	return c.userRepo
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reminderJob := jobs.NewCancelReviewReminderJob(
		c.orderUoWFactory(),
		c.userRepo,
		c.notifier,
		c.dedup,
		services.NewCancelRequestNotificationComposer(),
		c.config.Job.ReminderSchedule,
		c.config.Job.ReminderMaxAge,
		c.logger,
	)
	return jobs.NewJobManager(reminderJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
