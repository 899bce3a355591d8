package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/storage"
)

const (
	plotHeight = 10
	plotWidth  = 70
)

// PlotSeries draws data as an ASCII line chart. It returns an empty
// string for empty data.
func PlotSeries(data []float64, caption string) string {
	switch len(data) {
	case 0:
		return ""
	case 1:
		data = []float64{data[0], data[0]}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotTimings charts elapsed milliseconds per record in log order.
func PlotTimings(records []storage.Record, caption string) string {
	data := make([]float64, len(records))
	for i, r := range records {
		data[i] = float64(r.Elapsed.Milliseconds())
	}
	return PlotSeries(data, caption)
}
