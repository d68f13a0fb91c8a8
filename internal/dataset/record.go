package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Column names used in the CSV files.
const (
	ColumnDesignation = "designation"
	ColumnDescription = "description"
	ColumnDescriptif  = "descriptif"
	ColumnProductID   = "productid"
	ColumnImageID     = "imageid"
	ColumnLabel       = "prdtypecode"
	ColumnLanguage    = "langue"
)

// ErrMisaligned marks features and labels that do not share an index.
var ErrMisaligned = errors.New("features and labels are not aligned")

// Record is one product row.
type Record struct {
	Index       string
	Designation string
	Description string
	Descriptif  string
	ProductID   string
	ImageID     string
}

// Table is an ordered set of records.
type Table struct {
	Records []Record
	// Fused reports whether Descriptif replaced the raw text columns.
	Fused bool
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// Texts returns the descriptif column in record order.
func (t *Table) Texts() []string {
	out := make([]string, len(t.Records))
	for i, rec := range t.Records {
		out[i] = rec.Descriptif
	}
	return out
}

// SetTexts replaces the descriptif column. texts must match the record count.
func (t *Table) SetTexts(texts []string) error {
	if len(texts) != len(t.Records) {
		return fmt.Errorf("descriptif column has %d values for %d records", len(texts), len(t.Records))
	}
	for i := range t.Records {
		t.Records[i].Descriptif = texts[i]
	}
	return nil
}

// Label is one labels row.
type Label struct {
	Index string
	Code  string
}

// Labels is the ordered labels table.
type Labels []Label

// Align returns the label code of every record in table order. Each record
// must have exactly one label.
func Align(table *Table, labels Labels) ([]string, error) {
	byIndex := make(map[string]string, len(labels))
	for _, l := range labels {
		if _, dup := byIndex[l.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate label index %q", ErrMisaligned, l.Index)
		}
		byIndex[l.Index] = l.Code
	}
	codes := make([]string, len(table.Records))
	var missing []string
	for i, rec := range table.Records {
		code, ok := byIndex[rec.Index]
		if !ok {
			missing = append(missing, rec.Index)
			continue
		}
		codes[i] = code
	}
	if len(missing) > 0 {
		sample := missing
		if len(sample) > 5 {
			sample = sample[:5]
		}
		return nil, fmt.Errorf("%w: %d records without label (e.g. %s)", ErrMisaligned, len(missing), strings.Join(sample, ", "))
	}
	if len(labels) != len(table.Records) {
		return nil, fmt.Errorf("%w: %d labels for %d records", ErrMisaligned, len(labels), len(table.Records))
	}
	return codes, nil
}

// LabelCount is one row of the label distribution.
type LabelCount struct {
	Code  string
	Count int
}

// Distribution returns label value counts, count descending then code
// ascending.
func (l Labels) Distribution() []LabelCount {
	counts := make(map[string]int)
	for _, row := range l {
		counts[row.Code]++
	}
	out := make([]LabelCount, 0, len(counts))
	for code, n := range counts {
		out = append(out, LabelCount{Code: code, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}
