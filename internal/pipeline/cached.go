package pipeline

import (
	"context"
	"log/slog"

	"catalogprep/internal/artifactcache"
	"catalogprep/internal/logging"
)

// artifactStore is the part of the artifact cache the stages use.
type artifactStore interface {
	Load(ctx context.Context, key artifactcache.Key) ([]byte, bool, error)
	Put(ctx context.Context, key artifactcache.Key, payload []byte, records int) (artifactcache.Entry, error)
}

// cachedPayload returns the cached payload for key, or computes and stores
// it. decode validates a cached payload; a payload it rejects is recomputed.
// Cache failures are logged and never fail the stage.
func cachedPayload(
	ctx context.Context,
	store artifactStore,
	key artifactcache.Key,
	logger *slog.Logger,
	decode func([]byte) error,
	compute func() ([]byte, int, error),
) (bool, error) {
	if store != nil {
		payload, ok, err := store.Load(ctx, key)
		switch {
		case err != nil:
			logging.WarnWithContext(logger, "artifact cache lookup failed", "cache_lookup_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "run 'catalogprep cache clear' if the manifest is corrupt"),
				logging.String(logging.FieldImpact, "stage recomputed"),
			)
		case ok:
			decodeErr := decode(payload)
			if decodeErr == nil {
				return true, nil
			}
			logging.WarnWithContext(logger, "cached artifact rejected", "cache_payload_invalid",
				logging.Error(decodeErr),
				logging.String(logging.FieldImpact, "stage recomputed"),
			)
		}
	}

	payload, records, err := compute()
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if store == nil {
		return false, nil
	}
	if _, err := store.Put(ctx, key, payload, records); err != nil {
		logging.WarnWithContext(logger, "artifact cache store failed", "cache_store_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check cache_dir permissions"),
			logging.String(logging.FieldImpact, "next run recomputes this stage"),
		)
	}
	return false, nil
}
