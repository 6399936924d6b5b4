/*
Package monitoring collects Prometheus metrics for the backend.

Each Metrics value owns a private registry, so several servers (or tests)
can live in one process. The same value satisfies the recorder interfaces
of the window, terminal and session packages.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	sessions := session.NewManager(apps, commands, session.WithMetrics(metrics))
*/
package monitoring
