// Package httpserver runs an http.Handler with graceful, context-driven
// shutdown and provides a liveness/readiness handler.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Run returns once the context is cancelled and in-flight requests finished
// or the shutdown timeout expired. Start failures wrap ErrStart, shutdown
// failures wrap ErrShutdown.
package httpserver
