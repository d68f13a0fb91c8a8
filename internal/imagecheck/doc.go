// Package imagecheck verifies the product image assets.
//
// Inspect reads only the image header. ValidateDir walks the image directory
// and reports every file whose mode, size or format differs from the
// expectation; problems are logged and collected, never fatal.
package imagecheck
