// Package fontfit estimates the font size of text lines in UI screenshots.
//
// For each detected line the package binarizes the line's pixels with a
// locally-adaptive threshold, renders the recognized text with a reference
// font over a range of sizes and baseline offsets, and keeps the candidate
// whose rendering best overlaps the binarized pixels (intersection over
// union). The search is coarse-to-fine: integer sizes first, then
// fractional sizes around the coarse winner.
//
// Every function is deterministic for the same image, font and options.
// A Fitter is immutable and may be shared between goroutines.
package fontfit
