// Package textutil provides small text helpers shared by the frequency,
// figures and CLI packages.
//
// The primary use cases are:
//   - Splitting text into word-character runs
//   - Weighting per-class term counts with inverse document frequency
//   - Sanitizing labels into filesystem-safe tokens
package textutil
