package report

import (
	"errors"
	"io"
	"strconv"

	"mnist-ca/internal/features"

	"github.com/wcharczuk/go-chart/v2"
)

// WriteBarChart renders the mean feature per digit as a PNG bar chart.
func WriteBarChart(w io.Writer, title string, stats []features.DigitStats) error {
	if len(stats) == 0 {
		return errors.New("report: no digit statistics to plot")
	}
	bars := make([]chart.Value, len(stats))
	max := 0.0
	for i, s := range stats {
		bars[i] = chart.Value{Label: strconv.Itoa(s.Digit), Value: s.Mean}
		if s.Mean > max {
			max = s.Mean
		}
	}
	if max == 0 {
		max = 1
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    640,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: max * 1.1},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
