package testsupport

import (
	"context"
	"testing"

	"catalogprep/internal/artifactcache"
	"catalogprep/internal/config"
)

// MustOpenCache opens the artifact cache for tests and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *artifactcache.Cache {
	t.Helper()

	cache, err := artifactcache.OpenFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("artifactcache.OpenFromConfig: %v", err)
	}
	t.Cleanup(func() {
		cache.Close()
	})
	return cache
}
