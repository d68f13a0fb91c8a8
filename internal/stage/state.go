package stage

import (
	"catalogprep/internal/dataset"
	"catalogprep/internal/figures"
	"catalogprep/internal/frequency"
	"catalogprep/internal/imagecheck"
	"catalogprep/internal/language"
)

// State is the data passed from stage to stage during one run.
type State struct {
	RunID string

	Features *dataset.Table
	Labels   dataset.Labels
	// Codes holds the label of every feature record, in record order.
	Codes []string
	// RawHash is the content hash of the input files; it keys cached stages.
	RawHash string

	Images        imagecheck.Summary
	MissingImages int

	Languages      []string
	LanguageReport language.Report

	Matrix    *frequency.Matrix
	Figures   figures.Result
	Partition *dataset.Partition

	// CacheHits records, per cached stage, whether the artifact was reused.
	CacheHits map[string]bool
}

// RecordCache notes whether stage was served from the cache.
func (s *State) RecordCache(stage string, hit bool) {
	if s.CacheHits == nil {
		s.CacheHits = make(map[string]bool)
	}
	s.CacheHits[stage] = hit
}
