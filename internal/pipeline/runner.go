package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"catalogprep/internal/artifactcache"
	"catalogprep/internal/config"
	"catalogprep/internal/figures"
	"catalogprep/internal/imagecheck"
	"catalogprep/internal/language"
	"catalogprep/internal/logging"
	"catalogprep/internal/preflight"
	"catalogprep/internal/services"
	"catalogprep/internal/stage"
	"catalogprep/internal/stageexec"
	"catalogprep/internal/textnorm"
)

// Runner executes the stage sequence for one configuration.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	cache      *artifactcache.Cache
	detector   language.Detector
	renderer   figures.Renderer
	normalizer *textnorm.Pipeline
}

// Option configures optional Runner collaborators.
type Option func(*Runner)

// WithDetector replaces the whatlanggo language detector.
func WithDetector(d language.Detector) Option {
	return func(r *Runner) { r.detector = d }
}

// WithRenderer replaces the gonum/plot bar renderer.
func WithRenderer(renderer figures.Renderer) Option {
	return func(r *Runner) { r.renderer = renderer }
}

// WithCache supplies an already opened artifact cache. The caller keeps
// ownership and closes it.
func WithCache(c *artifactcache.Cache) Option {
	return func(r *Runner) { r.cache = c }
}

// NewRunner builds a runner. The normalizer is built eagerly so that a bad
// step list fails before any work starts.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "init", "configuration is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	normalizer, err := textnorm.FromConfig(cfg.Normalizer)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "init", "normalizer", err)
	}
	r := &Runner{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		normalizer: normalizer,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.detector == nil {
		r.detector = language.NewWhatlangDetector()
	}
	if r.renderer == nil {
		r.renderer = figures.NewRenderer(cfg.Figures)
	}
	return r, nil
}

// Normalizer exposes the configured text normalizer.
func (r *Runner) Normalizer() *textnorm.Pipeline { return r.normalizer }

// handlers returns the enabled stages in execution order. cache may be nil.
func (r *Runner) handlers(cache artifactStore) []stage.Handler {
	cfg := r.cfg
	handlers := []stage.Handler{
		&loadStage{base: base{name: StageLoad}, featuresPath: cfg.FeaturesPath(), labelsPath: cfg.LabelsPath()},
	}
	imageDir := ""
	if cfg.Images.Validate {
		imageDir = cfg.Paths.ImageDir
		handlers = append(handlers, &imagesStage{
			base:        base{name: StageImages},
			dir:         imageDir,
			expectation: imagecheck.ExpectationFromConfig(cfg.Images),
		})
	}
	handlers = append(handlers, &fusionStage{base: base{name: StageFusion}, imageDir: imageDir})
	if cfg.Language.Enabled {
		handlers = append(handlers, &languageStage{
			base:       base{name: StageLanguage},
			classifier: language.NewClassifier(r.detector),
			cache:      cache,
		})
	}
	handlers = append(handlers,
		&normalizeStage{base: base{name: StageNormalize}, normalizer: r.normalizer, cache: cache},
		&frequencyStage{base: base{name: StageFrequency}},
	)
	if cfg.Figures.Enabled {
		handlers = append(handlers, &figuresStage{
			base:     base{name: StageFigures},
			dir:      cfg.Paths.FiguresDir,
			topN:     cfg.Figures.TopN,
			renderer: r.renderer,
		})
	}
	handlers = append(handlers, &splitStage{
		base:  base{name: StageSplit},
		dir:   cfg.Paths.OutputDir,
		ratio: cfg.Split.TestRatio,
		seed:  cfg.Split.Seed,
	})
	return handlers
}

// HealthCheck reports the readiness of every enabled stage.
func (r *Runner) HealthCheck(ctx context.Context) []stage.Health {
	handlers := r.handlers(nil)
	out := make([]stage.Health, 0, len(handlers))
	for _, h := range handlers {
		out = append(out, h.HealthCheck(ctx))
	}
	return out
}

// RunOptions controls a single run.
type RunOptions struct {
	// Force drops the cached artifacts before running.
	Force bool
	// Through stops the run after the named stage. Empty runs every stage.
	Through string
	// SkipPreflight disables the readiness checks.
	SkipPreflight bool
}

// Run executes the enabled stages in order under the run lock and returns the
// final state.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*stage.State, error) {
	through := strings.TrimSpace(opts.Through)
	if through != "" && !IsStage(through) {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "run", fmt.Sprintf("unknown stage %q", through), nil)
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "prepare directories", "", err)
	}

	lock := flock.New(r.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "acquire lock", r.cfg.LockPath(), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConflict, "pipeline", "acquire lock", "another catalogprep run is in progress", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	if !opts.SkipPreflight {
		if err := r.runPreflight(ctx, logger); err != nil {
			return nil, err
		}
	}

	cache, closeCache, err := r.openCache(ctx)
	if err != nil {
		return nil, err
	}
	defer closeCache()

	if opts.Force && cache != nil {
		for _, name := range CachedStages() {
			removed, err := cache.Invalidate(ctx, name)
			if err != nil {
				return nil, services.Wrap(services.ErrTransient, "pipeline", "invalidate cache", name, err)
			}
			logger.Info("cache invalidated",
				logging.String(logging.FieldEventType, "cache_invalidated"),
				logging.String("cached_stage", name),
				logging.Int("removed", removed),
			)
		}
	}

	var store artifactStore
	if cache != nil {
		store = cache
	}

	state := &stage.State{RunID: runID}
	logger.Info("pipeline started",
		logging.String(logging.FieldEventType, "pipeline_start"),
		logging.Bool("force", opts.Force),
		logging.Bool("cache", cache != nil),
	)
	for _, handler := range r.handlers(store) {
		if err := stageexec.Run(ctx, stageexec.Options{Logger: r.logger, Handler: handler, State: state}); err != nil {
			return state, err
		}
		if handler.Name() == through {
			break
		}
	}
	logger.Info("pipeline completed", logging.String(logging.FieldEventType, "pipeline_complete"))
	return state, nil
}

func (r *Runner) runPreflight(ctx context.Context, logger *slog.Logger) error {
	var failures []string
	for _, res := range preflight.RunAll(ctx, r.cfg) {
		if res.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", res.Name),
				logging.String("detail", res.Detail),
				logging.String(logging.FieldEventType, "preflight_passed"),
			)
			continue
		}
		logging.ErrorWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", res.Name),
			logging.String("detail", res.Detail),
			logging.String(logging.FieldErrorHint, "run 'catalogprep check' and fix the reported paths"),
		)
		failures = append(failures, fmt.Sprintf("%s: %s", res.Name, res.Detail))
	}
	if len(failures) > 0 {
		return services.Wrap(services.ErrNotFound, "pipeline", "preflight", strings.Join(failures, "; "), nil)
	}
	return nil
}

// openCache returns the cache to use for this run and its release function.
// A nil cache means caching is disabled.
func (r *Runner) openCache(ctx context.Context) (*artifactcache.Cache, func(), error) {
	if r.cache != nil {
		return r.cache, func() {}, nil
	}
	if !r.cfg.Cache.Enabled {
		return nil, func() {}, nil
	}
	cache, err := artifactcache.OpenFromConfig(ctx, r.cfg)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "pipeline", "open cache", r.cfg.Cache.ManifestPath, err)
	}
	return cache, func() { _ = cache.Close() }, nil
}
