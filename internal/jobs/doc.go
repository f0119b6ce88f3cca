// Package jobs holds background work that runs beside the HTTP server.
//
// Each job owns its goroutine and exposes Start, Stop, RunOnce and
// IsRunning. The server starts jobs after wiring and stops them during
// graceful shutdown:
//
//	sweeper := jobs.NewTokenSweeper(tokenRepo, cfg.Jobs.TokenSweepInterval, cfg.Jobs.RevokedRetention)
//	sweeper.Start()
//	defer sweeper.Stop()
package jobs
