// Package report turns fitted regions into human-checkable output: an
// overlay that redraws the text at the fitted size, an annotated copy with
// per-region labels, a detection view, and summary statistics.
package report
