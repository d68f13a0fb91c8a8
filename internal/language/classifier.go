package language

import (
	"context"
	"fmt"
	"sort"
)

// Classifier maps text to a language label.
type Classifier struct {
	detector Detector
}

// NewClassifier wraps detector. A nil detector selects whatlanggo.
func NewClassifier(detector Detector) *Classifier {
	if detector == nil {
		detector = NewWhatlangDetector()
	}
	return &Classifier{detector: detector}
}

// Classify returns the French label of the detected language,
// LabelUnsupported for codes outside the table, or LabelError when detection
// fails. It never panics.
func (c *Classifier) Classify(text string) (label string) {
	defer func() {
		if r := recover(); r != nil {
			label = LabelError
		}
	}()
	code, err := c.detector.Detect(text)
	if err != nil {
		return LabelError
	}
	return Label(code)
}

// ClassifyAll labels every text in order, stopping early if ctx is cancelled.
func (c *Classifier) ClassifyAll(ctx context.Context, texts []string) ([]string, error) {
	labels := make([]string, len(texts))
	for i, text := range texts {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("classify languages: %w", err)
			}
		}
		labels[i] = c.Classify(text)
	}
	return labels, nil
}

// Count is one row of a value-count table.
type Count struct {
	Label string
	Count int
}

// Report summarizes the label distribution of a dataset.
type Report struct {
	Counts []Count
	Total  int
}

// BuildReport computes value counts sorted by count descending, then label
// ascending.
func BuildReport(labels []string) Report {
	counts := make(map[string]int)
	for _, label := range labels {
		counts[label]++
	}
	out := make([]Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return Report{Counts: out, Total: len(labels)}
}

// Share returns the fraction of the total carried by label.
func (r Report) Share(label string) float64 {
	if r.Total == 0 {
		return 0
	}
	for _, c := range r.Counts {
		if c.Label == label {
			return float64(c.Count) / float64(r.Total)
		}
	}
	return 0
}
