package stageexec

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"catalogprep/internal/logging"
	"catalogprep/internal/services"
	"catalogprep/internal/stage"
)

// Options controls a single stage execution.
type Options struct {
	Logger  *slog.Logger
	Handler stage.Handler
	State   *stage.State
}

// Run executes one stage with start, completion and failure logging. The
// stage name is attached to the context and to every log line.
func Run(ctx context.Context, opts Options) error {
	if opts.Handler == nil {
		return errors.New("stage handler unavailable")
	}
	if opts.State == nil {
		return errors.New("pipeline state is required")
	}
	name := opts.Handler.Name()

	stageCtx := logging.WithStage(ctx, name)
	stageLogger := logging.WithContext(stageCtx, opts.Logger)
	if aware, ok := opts.Handler.(stage.LoggerAware); ok {
		aware.SetLogger(stageLogger)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	stageLogger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))
	started := time.Now()

	if err := opts.Handler.Execute(stageCtx, opts.State); err != nil {
		logging.ErrorWithContext(stageLogger, "stage failed", "stage_failure",
			logging.Duration("elapsed", time.Since(started)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
		)
		return err
	}

	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("elapsed", time.Since(started)),
	}
	if hit, ok := opts.State.CacheHits[name]; ok {
		attrs = append(attrs, logging.Bool("cache_hit", hit))
	}
	stageLogger.Info("stage completed", logging.Args(attrs...)...)
	return nil
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "run interrupted; rerun to resume from cached stages"
	case errors.Is(err, services.ErrConfiguration):
		return "fix the configuration file and rerun"
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrNotFound):
		return "check the input dataset files"
	default:
		return "check logs for details"
	}
}
