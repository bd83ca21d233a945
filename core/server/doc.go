// Package server provides an HTTP server with graceful shutdown and
// environment-driven configuration.
//
// Usage:
//
//	srv, err := server.NewFromConfig(cfg,
//		server.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//
//	// Blocks until ctx is canceled, then shuts down gracefully.
//	return srv.Run(ctx, router)
package server
