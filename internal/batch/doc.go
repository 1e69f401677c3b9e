// Package batch composites every design onto every template.
//
// A Runner detects each template's print area once, then renders all
// design x template pairs on a bounded pool of goroutines
// (golang.org/x/sync/errgroup). Failures are recorded per pair in the
// Report and never stop the rest of the run.
//
// Output files are named from the design and template labels:
//
//	folder layout: {design}/{design}_{template}_tee.png
//	flat layout:   {design}_{template}.png
package batch
