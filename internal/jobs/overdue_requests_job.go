package jobs

import (
	"context"
	"log/slog"

	"lifebank/internal/core/application/usecases/queries"
	"lifebank/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultOverdueScanSchedule runs the scan at the start of every minute.
const DefaultOverdueScanSchedule = "0 * * * * *"

// OverdueLister returns the requests that missed their deadline.
type OverdueLister interface {
	Handle(ctx context.Context, query queries.GetOverdueRequestsQuery) ([]queries.OverdueRequestView, error)
}

// OverdueRequestsJob periodically reports requests that are still Pending
// or Approved after their required_by instant. It never changes a request.
type OverdueRequestsJob struct {
	handler  OverdueLister
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewOverdueRequestsJob creates the job. An empty schedule means
// DefaultOverdueScanSchedule; m may be nil.
func NewOverdueRequestsJob(
	handler OverdueLister,
	schedule string,
	logger *slog.Logger,
	m *metrics.Metrics,
) *OverdueRequestsJob {
	if schedule == "" {
		schedule = DefaultOverdueScanSchedule
	}
	return &OverdueRequestsJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_requests_job"),
		metrics:  m,
	}
}

func (j *OverdueRequestsJob) Name() string {
	return "overdue requests"
}

// Start schedules the scan.
func (j *OverdueRequestsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue requests job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler. A scan in progress is not interrupted.
func (j *OverdueRequestsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue requests job stopped")
}

// Run performs one scan and returns the number of overdue requests found,
// or -1 if the scan failed.
func (j *OverdueRequestsJob) Run(ctx context.Context) int {
	overdue, err := j.handler.Handle(ctx, queries.NewGetOverdueRequestsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue requests scan failed", "error", err)
		return -1
	}

	j.metrics.SetOverdue(len(overdue))

	for _, r := range overdue {
		j.logger.WarnContext(ctx, "Request is overdue",
			"request_id", r.ID,
			"requester_id", r.RequesterID,
			"status", r.Status.String(),
			"urgency", r.Urgency.String(),
			"blood_type", r.BloodType.String(),
			"overdue_by", -r.TimeRemaining,
			"sla_breached", r.SLABreached,
		)
	}

	return len(overdue)
}
