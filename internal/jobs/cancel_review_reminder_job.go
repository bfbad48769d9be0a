package jobs

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/account"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CancelReviewReminderJob periodically re-notifies admins about orders that
// have been sitting in RequestCancel longer than the configured age.
// The deduplicator guarantees at most one reminder per order per window, so
// overlapping runs and multi-instance deployments do not double-notify.
type CancelReviewReminderJob struct {
	uowFactory commands.OrderUoWFactory
	userRepo   ports.UserRepository
	notifier   ports.Notifier
	dedup      ports.ReminderDeduplicator
	composer   services.CancelRequestNotificationComposer
	schedule   string
	maxAge     time.Duration
	cron       *cron.Cron
	logger     *zap.Logger
}

// NewCancelReviewReminderJob creates the reminder job.
// The schedule is a six-field cron expression; maxAge is how long an order may
// await cancellation review before admins are reminded.
func NewCancelReviewReminderJob(
	uowFactory commands.OrderUoWFactory,
	userRepo ports.UserRepository,
	notifier ports.Notifier,
	dedup ports.ReminderDeduplicator,
	composer services.CancelRequestNotificationComposer,
	schedule string,
	maxAge time.Duration,
	logger *zap.Logger,
) *CancelReviewReminderJob {
	return &CancelReviewReminderJob{
		uowFactory: uowFactory,
		userRepo:   userRepo,
		notifier:   notifier,
		dedup:      dedup,
		composer:   composer,
		schedule:   schedule,
		maxAge:     maxAge,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With(zap.String("component", "cancel_review_reminder_job")),
	}
}

// Start schedules the reminder job.
func (j *CancelReviewReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.RunOnce(ctx); err != nil {
			j.logger.Error("cancel review reminder run failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("cancel review reminder job started",
		zap.String("schedule", j.schedule),
		zap.Duration("maxAge", j.maxAge))
	return nil
}

// Stop stops the reminder job.
func (j *CancelReviewReminderJob) Stop() {
	j.cron.Stop()
	j.logger.Info("cancel review reminder job stopped")
}

// RunOnce executes a single reminder pass: find stale cancellation requests,
// claim each one through the deduplicator, and re-send admin notifications for
// the ones this run owns. Per-order failures are logged and do not abort the
// pass.
func (j *CancelReviewReminderJob) RunOnce(ctx context.Context) error {
	before := time.Now().UTC().Add(-j.maxAge)

	uow := j.uowFactory.Create()
	stale, err := uow.OrderRepository().GetAllAwaitingCancelReviewSince(ctx, before)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	admins, err := j.userRepo.GetAllInRole(ctx, account.RoleAdmin)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		j.logger.Warn("no admin accounts to remind",
			zap.Int("staleOrders", len(stale)))
		return nil
	}

	for _, aggregate := range stale {
		j.remind(ctx, aggregate, admins)
	}

	return nil
}

func (j *CancelReviewReminderJob) remind(ctx context.Context, aggregate *order.Order, admins []*account.User) {
	owned, err := j.dedup.MarkReminded(ctx, aggregate.ID())
	if err != nil {
		j.logger.Warn("reminder dedup check failed",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err))
		return
	}
	if !owned {
		return
	}

	customerUser, err := j.userRepo.GetByCustomerID(ctx, aggregate.CustomerID())
	if err != nil {
		j.logger.Warn("failed to load customer account for reminder",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err))
		customerUser = nil
	}

	notifications, skipped, err := j.composer.Compose(aggregate, customerUser, admins)
	if err != nil {
		j.logger.Warn("failed to compose reminder notifications",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err))
		return
	}

	for _, adminID := range skipped {
		j.logger.Info("admin has no registered device tokens, skipping reminder",
			zap.String("adminId", adminID.String()),
			zap.String("orderId", aggregate.ID().String()))
	}

	for _, notification := range notifications {
		if sendErr := j.notifier.SendToUser(ctx, notification); sendErr != nil {
			j.logger.Warn("failed to send cancel review reminder",
				zap.String("adminId", notification.RecipientID.String()),
				zap.String("orderId", aggregate.ID().String()),
				zap.Error(sendErr))
		}
	}
}
