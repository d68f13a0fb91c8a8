// Package artifactcache stores computed stage artifacts so unchanged inputs
// skip recomputation.
//
// Each artifact is a CSV payload file under the cache directory, indexed by a
// SQLite manifest. Keys derive from the stage name, the rule-set version of
// the computation and the content hash of its input; any change to one of
// the three produces a new key, so stale artifacts are never served. Payload
// hashes are re-verified on load and a corrupted payload counts as a miss.
package artifactcache
