package analytics

import (
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderReport writes a standalone HTML report for the summary: a bar chart
// of event counts per gesture with mean scores overlaid.
func RenderReport(w io.Writer, summary *Summary) error {
	names := make([]string, 0, len(summary.Gestures))
	counts := make([]opts.BarData, 0, len(summary.Gestures))
	means := make([]opts.BarData, 0, len(summary.Gestures))
	for _, gs := range summary.Gestures {
		names = append(names, gs.Gesture)
		counts = append(counts, opts.BarData{Value: gs.Count})
		means = append(means, opts.BarData{Value: gs.MeanScore})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Gesture Analytics",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Gesture Events",
			Subtitle: summary.GeneratedAt.Format(time.RFC3339),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("events", counts,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		).
		AddSeries("mean score", means)

	return bar.Render(w)
}
