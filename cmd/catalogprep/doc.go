// Package main hosts the catalogprep CLI entrypoint and command graph.
//
// The Cobra command tree runs the preprocessing pipeline, inspects single
// strings through the normalizer and language classifier, reports token
// statistics, validates the image directory, manages the artifact cache and
// scaffolds configuration. It centralizes configuration resolution and
// logger setup so subcommands only deal with presentation.
//
// Keep this package lean: add behaviour to the internal packages first, then
// surface it here through a dedicated command or flag.
package main
