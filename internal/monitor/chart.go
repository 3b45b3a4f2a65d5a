package monitor

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// chartTimeFormat labels the x axis.
const chartTimeFormat = "15:04:05"

// newRateChart builds the request-rate line chart for the given samples.
func newRateChart(title string, points []SamplePoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "request_count, 5s average"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "req/s", Min: 0}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	labels := make([]string, 0, len(points))
	data := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		labels = append(labels, p.Timestamp.Format(chartTimeFormat))
		data = append(data, opts.LineData{Value: p.Value})
	}

	line.SetXAxis(labels).AddSeries("requests/s", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(true)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.2)}),
	)
	return line
}

// WriteChart renders the history window as a standalone HTML page.
func WriteChart(w io.Writer, session *Session) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("botstat - %s", session.Endpoint)

	points := session.History().Snapshot()
	page.AddCharts(newRateChart(fmt.Sprintf("Request rate (%d samples)", len(points)), points))

	return page.Render(w)
}

// WriteChartFile writes the chart page to path, replacing any existing file.
func WriteChartFile(path string, session *Session) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteChart(f, session); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
