// Package logger builds configured log/slog loggers: JSON for production,
// text for development, static attributes for service identity.
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatJSON),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("service", "web")),
//	)
package logger
