// Package analysis inspects recorded runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectral content of a frame
//     column, computed with go-dsp
//   - [CollisionIntervals]: ticks between collisions, summarized with [Summarize]
//   - [NewPhasePortrait]: position/velocity trajectory of one body, with an
//     ASCII rendering for the terminal
//
// Two equal masses launched towards each other bounce between the walls
// with a fixed period, which shows up as a single spectral peak:
//
//	xa, _ := analysis.Series(frames, "xa")
//	hz := analysis.DominantFrequency(xa, 60)
package analysis
