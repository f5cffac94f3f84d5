package render

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"incomecli/internal/aggregate"
	apperrors "incomecli/internal/errors"
)

// jpegQuality for the re-encoded raster form.
const jpegQuality = 90

// renderRaster draws the chart with go-chart and returns the PNG bytes.
func renderRaster(res *aggregate.Result, kind Kind, cfg ChartConfig) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch kind {
	case KindPie:
		err = rasterPie(res, cfg).Render(chart.PNG, &buf)
	case KindGroupedBar:
		err = rasterBar(res, cfg).Render(chart.PNG, &buf)
	case KindHorizontalBar:
		err = rasterHorizontalBar(res, cfg).Render(chart.PNG, &buf)
	}
	if err != nil {
		return nil, apperrors.NewIOError("failed to render raster chart", err).
			WithContext("slug", cfg.Slug)
	}
	return buf.Bytes(), nil
}

// reencodeJPEG converts the rendered PNG into the JPEG artifact form.
// go-chart emits PNG only, so the .jpg file is a re-encode of the same image.
func reencodeJPEG(pngBytes []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, apperrors.NewIOError("failed to decode rendered png", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, apperrors.NewIOError("failed to encode jpeg", err)
	}
	return buf.Bytes(), nil
}

func rasterPie(res *aggregate.Result, cfg ChartConfig) *chart.PieChart {
	values := make([]chart.Value, len(res.Buckets))
	for i, b := range res.Buckets {
		label := sliceName(b, res)
		if text := valueText(b, cfg); text != "" {
			label += " " + text
		}
		values[i] = chart.Value{
			Value: float64(b.Count),
			Label: label,
			Style: fillStyle(paletteColor(cfg.Palette, i)),
		}
	}
	return &chart.PieChart{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Values: values,
	}
}

func rasterBar(res *aggregate.Result, cfg ChartConfig) *chart.BarChart {
	labelRank := rankOf(res.Labels())
	multi := len(labelRank) > 1

	bars := make([]chart.Value, len(res.Buckets))
	for i, b := range res.Buckets {
		label := b.Key()
		if multi {
			label += " " + b.Label
		}
		if text := valueText(b, cfg); text != "" {
			label += "\n" + text
		}
		bars[i] = chart.Value{
			Value: value(b, cfg),
			Label: label,
			Style: fillStyle(paletteColor(cfg.Palette, labelRank[b.Label])),
		}
	}
	return &chart.BarChart{
		Title:    cfg.Title,
		Width:    cfg.Width,
		Height:   cfg.Height,
		BarWidth: barWidth(cfg.Width, len(bars)),
		Bars:     bars,
	}
}

func rasterHorizontalBar(res *aggregate.Result, cfg ChartConfig) *chart.StackedBarChart {
	labelRank := rankOf(res.Labels())
	multi := len(labelRank) > 1

	// StackedBarChart normalizes every bar to full length, so each bucket
	// gets a transparent filler segment sized against the maximum value to
	// keep visible lengths proportional.
	maxVal := 0.0
	for _, b := range res.Buckets {
		if v := value(b, cfg); v > maxVal {
			maxVal = v
		}
	}

	bars := make([]chart.StackedBar, len(res.Buckets))
	for i, b := range res.Buckets {
		name := sliceNameWhen(multi, b, res)
		if text := valueText(b, cfg); text != "" {
			name += " " + text
		}
		v := value(b, cfg)
		values := []chart.Value{{
			Value: v,
			Style: fillStyle(paletteColor(cfg.Palette, labelRank[b.Label])),
		}}
		if filler := maxVal - v; filler > 0 {
			values = append(values, chart.Value{
				Value: filler,
				Style: chart.Style{FillColor: drawing.ColorTransparent, StrokeWidth: 0},
			})
		}
		bars[i] = chart.StackedBar{Name: name, Values: values}
	}
	return &chart.StackedBarChart{
		Title:        cfg.Title,
		Width:        cfg.Width,
		Height:       cfg.Height,
		IsHorizontal: true,
		Bars:         bars,
	}
}

// sliceName names one bucket for a single-series chart.
func sliceName(b aggregate.Bucket, res *aggregate.Result) string {
	// A pie over a self-grouped label column would repeat the value twice.
	if len(res.GroupColumns) == 1 && res.GroupColumns[0] == res.LabelColumn {
		return b.Label
	}
	return b.Key()
}

func sliceNameWhen(multi bool, b aggregate.Bucket, res *aggregate.Result) string {
	name := sliceName(b, res)
	if multi && name != b.Label {
		name += " " + b.Label
	}
	return name
}

// rankOf assigns each category its first-appearance rank.
func rankOf(categories []string) map[string]int {
	ranks := make(map[string]int, len(categories))
	for i, c := range categories {
		ranks[c] = i
	}
	return ranks
}

// fillStyle builds a solid bar/slice style from a "#rrggbb" palette entry.
func fillStyle(hex string) chart.Style {
	col := drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	return chart.Style{
		FillColor:   col,
		StrokeColor: col,
		StrokeWidth: 0,
	}
}

// barWidth sizes bars to fill roughly two thirds of the drawable width.
func barWidth(chartWidth, bars int) int {
	if bars == 0 {
		return 20
	}
	w := (chartWidth * 2) / (bars * 3)
	if w < 10 {
		return 10
	}
	if w > 80 {
		return 80
	}
	return w
}
