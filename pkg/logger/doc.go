// Package logger builds *slog.Logger instances with functional options and
// context-aware attribute injection.
//
// New picks a text or JSON handler and applies static attributes. Registered
// ContextExtractor callbacks (for example the chi request id) are evaluated on
// every log call; a key the call already sets is left alone.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "fieldguard"),
//	    logger.WithLevel(logger.ParseLevel(cfg.LogLevel, slog.LevelInfo)),
//	)
//	log.InfoContext(ctx, "field rejected",
//	    logger.Field("reference"),
//	    logger.Policy("References"),
//	)
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Error returns an empty attribute for nil errors, so it can be passed
// unconditionally.
package logger
