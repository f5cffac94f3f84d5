package render

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"incomecli/internal/aggregate"
	apperrors "incomecli/internal/errors"
)

// renderHTMLFile writes the interactive markup form of the chart with
// go-echarts. The document embeds the same data as the raster forms.
func renderHTMLFile(path string, res *aggregate.Result, kind Kind, cfg ChartConfig) error {
	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewIOError("failed to create html artifact", err).
			WithContext("path", path)
	}
	defer file.Close()

	switch kind {
	case KindPie:
		err = htmlPie(res, cfg).Render(file)
	case KindGroupedBar:
		err = htmlBar(res, cfg, false).Render(file)
	case KindHorizontalBar:
		err = htmlBar(res, cfg, true).Render(file)
	}
	if err != nil {
		return apperrors.NewIOError("failed to render html chart", err).
			WithContext("path", path)
	}
	return nil
}

func htmlPie(res *aggregate.Result, cfg ChartConfig) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(globalOptions(cfg)...)

	items := make([]opts.PieData, len(res.Buckets))
	for i, b := range res.Buckets {
		items[i] = opts.PieData{Name: sliceName(b, res), Value: b.Count}
	}

	pie.AddSeries(res.LabelColumn, items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {d}%",
		}))
	return pie
}

func htmlBar(res *aggregate.Result, cfg ChartConfig, horizontal bool) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(cfg)...)

	keys := res.GroupKeys()
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}

	// One series per label; missing group×label cells stay nil so echarts
	// leaves a gap instead of inventing a zero.
	for _, label := range res.Labels() {
		data := make([]opts.BarData, len(keys))
		for _, b := range res.Buckets {
			if b.Label != label {
				continue
			}
			data[index[b.Key()]] = opts.BarData{Value: value(b, cfg)}
		}
		bar.AddSeries(label, data)
	}
	bar.SetXAxis(keys)

	if cfg.TextFormat != "" {
		bar.SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{c}",
		}))
	}
	if horizontal {
		bar.XYReversal()
	}
	return bar
}

// globalOptions builds the shared title/size/palette options.
func globalOptions(cfg ChartConfig) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: cfg.Title}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", cfg.Width),
			Height: fmt.Sprintf("%dpx", cfg.Height),
		}),
		// go-echarts reverses the colors slice in place; hand it a copy so
		// the shared default palette keeps its order across renders.
		charts.WithColorsOpts(opts.Colors(append([]string(nil), cfg.Palette...))),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	}
}
