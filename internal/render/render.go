// Package render turns aggregation results into chart artifacts. Every
// chart is serialized three ways under the results directory: a raster
// image pair (<slug>.png and <slug>.jpg) and an interactive HTML document
// (<slug>.html). Re-rendering a chart overwrites its files in place.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"incomecli/internal/aggregate"
	"incomecli/internal/config"
	apperrors "incomecli/internal/errors"
)

// Kind selects the chart shape.
type Kind string

const (
	KindPie           Kind = "pie"
	KindGroupedBar    Kind = "grouped_bar"
	KindHorizontalBar Kind = "horizontal_bar"
)

// ChartConfig holds the per-chart options. Palette colors are applied by
// rank: palette index = first-appearance position of the category, never a
// semantic mapping from the value.
type ChartConfig struct {
	Title      string   `validate:"required"`
	Slug       string   `validate:"required,lowercase"`
	XField     string   // group column shown on the category axis
	YField     string   `validate:"omitempty,oneof=count percent"` // alias of ValueField for bar charts
	ColorField string   // column splitting the series, typically the income label
	ValueField string   `validate:"omitempty,oneof=count percent"`
	Width      int      `validate:"omitempty,min=100"`
	Height     int      `validate:"omitempty,min=100"`
	TextFormat string   // fmt verb for value text, e.g. "%.2f%%"
	Palette    []string `validate:"omitempty,dive,hexcolor"`
}

// Artifact is the handle returned for a rendered chart.
type Artifact struct {
	Slug  string
	Files []string
}

// defaultPalette is applied when a chart config carries no palette.
var defaultPalette = []string{
	"#5b8ff9", "#5ad8a6", "#f6bd16", "#e8684a",
	"#6dc8ec", "#9270ca", "#ff9d4d", "#269a99",
}

// Renderer writes chart artifacts to the results directory.
type Renderer struct {
	paths    *config.Paths
	logger   *slog.Logger
	validate *validator.Validate
}

// NewRenderer creates a renderer over the configured paths.
func NewRenderer(paths *config.Paths, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		paths:    paths,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Render draws the aggregation result as the requested chart kind and writes
// the three artifact files, overwriting any previous run's output. The
// results directory is created on demand. Fails with a VALIDATION kind for a
// bad config and an IO kind when a file cannot be written.
func (r *Renderer) Render(res *aggregate.Result, kind Kind, cfg ChartConfig) (*Artifact, error) {
	applyConfigDefaults(&cfg)

	if err := r.validate.Struct(cfg); err != nil {
		return nil, apperrors.NewValidationError("invalid chart config", err).
			WithContext("slug", cfg.Slug)
	}
	if err := checkFields(res, cfg); err != nil {
		return nil, err
	}
	switch kind {
	case KindPie, KindGroupedBar, KindHorizontalBar:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown chart kind %q", kind), nil)
	}

	if err := os.MkdirAll(r.paths.ResultsDir, 0755); err != nil {
		return nil, apperrors.NewIOError("failed to create results directory", err).
			WithContext("dir", r.paths.ResultsDir)
	}

	pngBytes, err := renderRaster(res, kind, cfg)
	if err != nil {
		return nil, err
	}
	jpgBytes, err := reencodeJPEG(pngBytes)
	if err != nil {
		return nil, err
	}

	pngPath := r.paths.ResultsFile(cfg.Slug + ".png")
	jpgPath := r.paths.ResultsFile(cfg.Slug + ".jpg")
	htmlPath := r.paths.ResultsFile(cfg.Slug + ".html")

	if err := writeFile(pngPath, pngBytes); err != nil {
		return nil, err
	}
	if err := writeFile(jpgPath, jpgBytes); err != nil {
		return nil, err
	}
	if err := renderHTMLFile(htmlPath, res, kind, cfg); err != nil {
		return nil, err
	}

	artifact := &Artifact{Slug: cfg.Slug, Files: []string{jpgPath, pngPath, htmlPath}}

	r.logger.Info("rendered chart",
		slog.String("slug", cfg.Slug),
		slog.String("kind", string(kind)),
		slog.Int("buckets", len(res.Buckets)))

	return artifact, nil
}

// applyConfigDefaults fills optional fields the caller left at zero.
func applyConfigDefaults(cfg *ChartConfig) {
	if cfg.Width == 0 {
		cfg.Width = 900
	}
	if cfg.Height == 0 {
		cfg.Height = 500
	}
	if cfg.ValueField == "" {
		cfg.ValueField = cfg.YField
	}
	if cfg.ValueField == "" {
		cfg.ValueField = "percent"
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = defaultPalette
	}
}

// checkFields verifies the config's field references against the result's
// schema so a typo fails loudly instead of producing an empty chart.
func checkFields(res *aggregate.Result, cfg ChartConfig) error {
	if cfg.XField != "" {
		found := false
		for _, c := range res.GroupColumns {
			if c == cfg.XField {
				found = true
				break
			}
		}
		if !found {
			return apperrors.NewSchemaError(cfg.XField).
				WithContext("reason", "x_field is not a group column of the aggregation")
		}
	}
	if cfg.ColorField != "" && cfg.ColorField != res.LabelColumn {
		return apperrors.NewSchemaError(cfg.ColorField).
			WithContext("reason", "color_field is not the label column of the aggregation")
	}
	return nil
}

// value returns the plotted value of a bucket per the configured value field.
func value(b aggregate.Bucket, cfg ChartConfig) float64 {
	if cfg.ValueField == "count" {
		return float64(b.Count)
	}
	return b.Percent
}

// valueText formats the value text drawn next to a slice or bar.
func valueText(b aggregate.Bucket, cfg ChartConfig) string {
	if cfg.TextFormat == "" {
		return ""
	}
	return fmt.Sprintf(cfg.TextFormat, value(b, cfg))
}

// paletteColor returns the rank-indexed palette entry, cycling when the
// category set is larger than the palette.
func paletteColor(palette []string, rank int) string {
	return palette[rank%len(palette)]
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to write %s", filepath.Base(path)), err).
			WithContext("path", path)
	}
	return nil
}
