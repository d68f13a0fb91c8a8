// Package preflight provides readiness checks for the filesystem paths and
// normalizer settings that catalogprep depends on.
//
// These checks run in two contexts:
//   - The pipeline runner calls RunAll before the first stage and aborts on
//     any failure, so a missing dataset fails in milliseconds, not mid-run.
//   - The CLI "catalogprep check" command renders every result as a table.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
