package api_test

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/fieldguard/internal/api"
	"github.com/dmitrymomot/fieldguard/pkg/logger"
)

func newJSONLogger(w io.Writer) *slog.Logger {
	return logger.New(
		logger.WithOutput(w),
		logger.WithFormat(logger.FormatJSON),
		logger.WithLevel(slog.LevelDebug),
		logger.WithContextExtractors(api.RequestIDExtractor()),
	)
}
