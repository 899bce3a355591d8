// Package viz renders run results in the terminal.
//
//   - [RenderSummary]: lipgloss panel with counts, timing and metrics
//   - [Progress]: Bubble Tea model fed by a [Tracker] observer while the
//     engine runs
//   - [PlotSeries], [PlotTimings]: asciigraph charts of per-step
//     diagnostics and of the timing log
//
// # Key Bindings
//
//	q, ctrl+c - detach the progress view (the run itself continues)
package viz
