// Package report drives the full analysis run: load the processed table,
// profile it, then produce the fixed catalog of grouped-aggregation charts
// and their tabular exports. Stages are strictly sequential and the table is
// never mutated after load.
package report

import (
	"context"
	"log/slog"

	"incomecli/internal/aggregate"
	"incomecli/internal/config"
	"incomecli/internal/dataset"
	"incomecli/internal/exporter"
	"incomecli/internal/profile"
	"incomecli/internal/render"
)

// Runner executes the one-shot analysis pipeline.
type Runner struct {
	paths    *config.Paths
	logger   *slog.Logger
	renderer *render.Renderer
	csv      *exporter.CSVWriter
	workbook *exporter.WorkbookWriter
}

// NewRunner wires the pipeline stages over the configured paths.
func NewRunner(paths *config.Paths, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		paths:    paths,
		logger:   logger,
		renderer: render.NewRenderer(paths, logger),
		csv:      exporter.NewCSVWriter(paths),
		workbook: exporter.NewWorkbookWriter(paths, logger),
	}
}

// Run executes load → profile → aggregate → render to completion. Any stage
// failure aborts the run with the stage's typed error.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting analysis run",
		slog.String("input", r.paths.ProcessedCSV),
		slog.String("results_dir", r.paths.ResultsDir))

	table, err := dataset.Load(r.paths.ProcessedCSV)
	if err != nil {
		return err
	}

	if err := r.profileStage(ctx, table); err != nil {
		return err
	}
	if err := r.chartStage(ctx, table); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "analysis run complete")
	return nil
}

// profileStage computes the descriptive statistics and exports the profile
// workbook.
func (r *Runner) profileStage(ctx context.Context, table *dataset.Table) error {
	schema := profile.DescribeSchema(table)
	numeric := profile.DescribeNumeric(table)

	categoricals := make(map[string][]profile.CategoryShare)
	for _, field := range schema {
		if field.Kind.Numeric() {
			continue
		}
		shares, err := profile.DescribeCategorical(table, field.Name)
		if err != nil {
			return err
		}
		categoricals[field.Name] = shares
	}

	r.logger.InfoContext(ctx, "profiled table",
		slog.Int("columns", len(schema)),
		slog.Int("numeric_columns", len(numeric)),
		slog.Int("categorical_columns", len(categoricals)))

	return r.workbook.WriteProfile(schema, numeric, categoricals)
}

// chartStage aggregates and renders every chart in the catalog, exporting
// each aggregation as CSV alongside the chart files.
func (r *Runner) chartStage(ctx context.Context, table *dataset.Table) error {
	for _, spec := range catalog {
		res, err := aggregate.By(table, spec.groupColumns, spec.labelColumn)
		if err != nil {
			return err
		}
		if spec.topN > 0 {
			res = res.TopN(spec.topN)
		}

		if _, err := r.renderer.Render(res, spec.kind, spec.config); err != nil {
			return err
		}
		if err := r.csv.WriteAggregation(spec.config.Slug, res); err != nil {
			return err
		}

		r.logger.InfoContext(ctx, "produced chart",
			slog.String("slug", spec.config.Slug),
			slog.String("kind", string(spec.kind)),
			slog.Int("buckets", len(res.Buckets)))
	}
	return nil
}
