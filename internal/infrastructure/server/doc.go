// Package server assembles the desktop backend: catalogs, session manager,
// optional document store, gin router with its middleware stack, the
// WebSocket stream, Prometheus metrics and the static front end.
//
// Example Usage:
//
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//		return err
//	}
//	defer srv.Close()
//	return srv.Run(ctx)
package server
