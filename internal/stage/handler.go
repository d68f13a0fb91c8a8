package stage

import (
	"context"
	"log/slog"
)

// Handler describes the contract the pipeline runner needs from each stage.
type Handler interface {
	Name() string
	Execute(context.Context, *State) error
	HealthCheck(context.Context) Health
}

// LoggerAware handlers receive a stage-scoped logger before Execute.
type LoggerAware interface {
	SetLogger(*slog.Logger)
}
