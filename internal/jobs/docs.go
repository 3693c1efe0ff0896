// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DispatchSweepJob - Runs every 15 seconds to re-offer orders stuck in
// rider search with a widened search radius. An order can remain in
// looking_for_rider indefinitely if no courier accepts; the sweep is what
// eventually finds one as couriers come online or move closer.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep treats per-order dispatch failures as non-fatal: an order that
// was assigned or cancelled between listing and dispatching is skipped, and
// other errors are logged without stopping the sweep.
package jobs
