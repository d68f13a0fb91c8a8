// Package pipeline wires the catalogprep stages into one sequential run.
//
// A Runner loads the features and labels tables, then executes the enabled
// stages in a fixed order through stageexec:
//
//	load -> images -> fusion -> language -> normalize -> frequency -> figures -> split
//
// The language and normalize stages are cached in the artifact cache, keyed
// by the input file hash and the rule-set version of the stage, so a rerun on
// unchanged inputs reuses their CSV artifacts. Runs are serialized with an
// exclusive file lock under the cache directory.
package pipeline
