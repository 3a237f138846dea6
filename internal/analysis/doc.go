// Package analysis inspects animated point clouds after the fact.
//
//   - [DominantPeriod]: strongest period in a visible-count series via [PowerSpectrum]
//   - [Overlap]: Jaccard similarity of two visible sets
//   - [Summarize]: mean, deviation and range of a series
//   - [ThresholdSweep]: visible counts across a range of thresholds
//
// The phase grows linearly, so the interference pattern repeats every
// [Period] seconds. Comparing frames one period apart with [Overlap] should
// give a similarity close to one:
//
//	p := analysis.Period(params.Speed, scale)
//	sim := analysis.Overlap(before.Visible, after.Visible)
package analysis
