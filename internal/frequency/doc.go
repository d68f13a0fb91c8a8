// Package frequency counts word occurrences per class label.
//
// Aggregate tokenizes each row into word-character runs and accumulates exact
// counts in a sparse label → token → count matrix. Dense materializes the
// integer grid over sorted labels and the sorted token union, filling absent
// cells with zero.
package frequency
