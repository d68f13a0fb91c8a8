// Package config loads, normalizes, and validates catalogprep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CATALOGPREP_DATA_DIR
// environment override. Relative feature and label file names resolve under
// the data directory so a single setting relocates the whole dataset.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
