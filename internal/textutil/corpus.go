package textutil

import (
	"math"
	"sort"
)

// TermVector is a weighted bag of terms. Vectors built from raw counts carry
// term frequencies; WithIDF rescales them.
type TermVector struct {
	terms map[string]float64
}

// WeightedTerm pairs a term with its weight.
type WeightedTerm struct {
	Term   string
	Weight float64
}

// NewTermVector builds a vector from term counts. Returns nil when no term
// has a positive count.
func NewTermVector(counts map[string]int) *TermVector {
	terms := make(map[string]float64, len(counts))
	for term, count := range counts {
		if count > 0 {
			terms[term] = float64(count)
		}
	}
	if len(terms) == 0 {
		return nil
	}
	return &TermVector{terms: terms}
}

// Len returns the number of distinct terms.
func (v *TermVector) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// WithIDF returns a new vector with each weight multiplied by its IDF.
// Terms absent from the IDF map retain their original weight; terms whose
// weight drops to zero are removed.
func (v *TermVector) WithIDF(idf map[string]float64) *TermVector {
	if v == nil || len(idf) == 0 {
		return v
	}
	weighted := make(map[string]float64, len(v.terms))
	for term, count := range v.terms {
		w := count
		if idfVal, ok := idf[term]; ok {
			w *= idfVal
		}
		if w == 0 {
			continue
		}
		weighted[term] = w
	}
	if len(weighted) == 0 {
		return nil
	}
	return &TermVector{terms: weighted}
}

// Top returns the n heaviest terms, weight descending and term ascending on
// ties. n <= 0 returns every term.
func (v *TermVector) Top(n int) []WeightedTerm {
	if v == nil {
		return nil
	}
	out := make([]WeightedTerm, 0, len(v.terms))
	for term, w := range v.terms {
		out = append(out, WeightedTerm{Term: term, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Term < out[j].Term
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Corpus collects document frequency statistics for IDF computation.
type Corpus struct {
	docCount int
	docFreq  map[string]int
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{docFreq: make(map[string]int)}
}

// Add registers a vector's distinct terms in the corpus.
func (c *Corpus) Add(v *TermVector) {
	if c == nil || v == nil {
		return
	}
	c.docCount++
	for term := range v.terms {
		c.docFreq[term]++
	}
}

// Documents returns how many vectors were added.
func (c *Corpus) Documents() int {
	if c == nil {
		return 0
	}
	return c.docCount
}

// IDF computes inverse document frequency weights: log((N+1)/(1+df)) for each term.
// A term present in every document weighs 0.
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docCount == 0 {
		return nil
	}
	idf := make(map[string]float64, len(c.docFreq))
	n := float64(c.docCount)
	for term, df := range c.docFreq {
		idf[term] = math.Log((n + 1) / (1 + float64(df)))
	}
	return idf
}
