// Package supervisor keeps configured services running. A Manager owns
// one Service per configuration record and periodically polls each one,
// restarting processes that exited. Restarts are paced with exponential
// backoff; a service whose executable cannot be spawned at all is latched
// failed and left alone.
//
// The Manager consumes validated config.Config records; it knows nothing
// about how they were parsed or validated. Process spawning goes through
// the Spawner indirection so the supervision logic is testable without
// real executables.
//
// # Usage
//
//	m := supervisor.New(cfg,
//		supervisor.WithInterval(5*time.Second),
//		supervisor.WithLogger(log),
//	)
//	if err := m.Start(ctx); err != nil {
//		return err
//	}
//	defer m.Stop()
package supervisor
