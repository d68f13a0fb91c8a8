package frequency

import (
	"sort"

	"catalogprep/internal/textutil"
)

// Row is one (label, text) pair.
type Row struct {
	Label string
	Text  string
}

// TokenCount pairs a token with its count.
type TokenCount struct {
	Token string
	Count int
}

// Matrix holds per-label token counts.
type Matrix struct {
	counts map[string]map[string]int
}

// Aggregate counts the word tokens of every row under its label. The result
// does not depend on row order.
func Aggregate(rows []Row) *Matrix {
	m := &Matrix{counts: make(map[string]map[string]int)}
	for _, row := range rows {
		m.Add(row.Label, row.Text)
	}
	return m
}

// Add accumulates the tokens of text under label. A label with no tokens is
// still registered.
func (m *Matrix) Add(label, text string) {
	if m.counts == nil {
		m.counts = make(map[string]map[string]int)
	}
	bucket, ok := m.counts[label]
	if !ok {
		bucket = make(map[string]int)
		m.counts[label] = bucket
	}
	for _, tok := range textutil.WordTokens(text) {
		bucket[tok]++
	}
}

// Labels returns the labels in ascending order.
func (m *Matrix) Labels() []string {
	labels := make([]string, 0, len(m.counts))
	for label := range m.counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Tokens returns the sorted union of tokens across labels.
func (m *Matrix) Tokens() []string {
	seen := make(map[string]struct{})
	for _, bucket := range m.counts {
		for tok := range bucket {
			seen[tok] = struct{}{}
		}
	}
	tokens := make([]string, 0, len(seen))
	for tok := range seen {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// Count returns the count of token under label, 0 when absent.
func (m *Matrix) Count(label, token string) int {
	return m.counts[label][token]
}

// Counts returns a copy of the counts recorded for label.
func (m *Matrix) Counts(label string) map[string]int {
	bucket := m.counts[label]
	out := make(map[string]int, len(bucket))
	for tok, n := range bucket {
		out[tok] = n
	}
	return out
}

// Total returns the number of tokens counted under label.
func (m *Matrix) Total(label string) int {
	total := 0
	for _, n := range m.counts[label] {
		total += n
	}
	return total
}

// Top returns the n most frequent tokens of label, count descending and token
// ascending on ties. n <= 0 returns every token.
func (m *Matrix) Top(label string, n int) []TokenCount {
	bucket := m.counts[label]
	out := make([]TokenCount, 0, len(bucket))
	for tok, c := range bucket {
		out = append(out, TokenCount{Token: tok, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Dense is the materialized integer grid. Cells[i][j] is the count of
// Tokens[j] under Labels[i].
type Dense struct {
	Labels []string
	Tokens []string
	Cells  [][]int
}

// Dense materializes the full grid; absent cells are 0.
func (m *Matrix) Dense() Dense {
	labels := m.Labels()
	tokens := m.Tokens()
	col := make(map[string]int, len(tokens))
	for j, tok := range tokens {
		col[tok] = j
	}
	cells := make([][]int, len(labels))
	for i, label := range labels {
		row := make([]int, len(tokens))
		for tok, n := range m.counts[label] {
			row[col[tok]] = n
		}
		cells[i] = row
	}
	return Dense{Labels: labels, Tokens: tokens, Cells: cells}
}

// Distinctive ranks the tokens of label by TF-IDF, treating each label's
// counts as one document. Tokens shared by every label weigh 0 and are
// omitted.
func (m *Matrix) Distinctive(label string, n int) []textutil.WeightedTerm {
	if _, ok := m.counts[label]; !ok {
		return nil
	}
	corpus := textutil.NewCorpus()
	var target *textutil.TermVector
	for _, l := range m.Labels() {
		vec := textutil.NewTermVector(m.counts[l])
		corpus.Add(vec)
		if l == label {
			target = vec
		}
	}
	if target == nil {
		return nil
	}
	return target.WithIDF(corpus.IDF()).Top(n)
}
