// Package jobs provides scheduled background tasks for the lifecycle service.
//
// Jobs use github.com/robfig/cron/v3 with second-resolution schedules and
// are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewOverdueRequestsJob(overdueHandler, cfg.OverdueScanSchedule, logger, m),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// OverdueRequestsJob lists Pending and Approved requests whose deadline has
// passed, logs one warning per request (including whether the urgency's SLA
// is breached) and publishes the count as the overdue gauge. It is read-only:
// requests are never expired or cancelled automatically.
package jobs
