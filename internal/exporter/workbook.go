package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"incomecli/internal/config"
	apperrors "incomecli/internal/errors"
	"incomecli/internal/profile"
)

// excelSheetNameLimit is imposed by the xlsx format.
const excelSheetNameLimit = 31

// WorkbookWriter exports the profiling outputs as one Excel workbook in the
// results directory.
type WorkbookWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer over the configured paths.
func NewWorkbookWriter(paths *config.Paths, logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{paths: paths, logger: logger}
}

// WriteProfile writes the schema, numeric summaries and categorical
// frequency tables to the profile workbook, one sheet each. Column order
// follows the schema; the file is overwritten on re-run.
func (w *WorkbookWriter) WriteProfile(
	schema []profile.SchemaField,
	numeric map[string]profile.NumericSummary,
	categoricals map[string][]profile.CategoryShare,
) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSchemaSheet(f, schema); err != nil {
		return err
	}
	if err := writeNumericSheet(f, schema, numeric); err != nil {
		return err
	}
	for _, field := range schema {
		shares, ok := categoricals[field.Name]
		if !ok {
			continue
		}
		if err := writeCategoricalSheet(f, field.Name, shares); err != nil {
			return err
		}
	}

	path := w.paths.ProfileWorkbook
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewIOError("failed to create results directory", err).
			WithContext("path", path)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewIOError("failed to save profile workbook", err).
			WithContext("path", path)
	}

	w.logger.Info("wrote profile workbook",
		slog.String("path", path),
		slog.Int("columns", len(schema)),
		slog.Int("categorical_sheets", len(categoricals)))
	return nil
}

// writeSchemaSheet renames the default sheet and fills the per-column
// metadata.
func writeSchemaSheet(f *excelize.File, schema []profile.SchemaField) error {
	if err := f.SetSheetName(f.GetSheetName(0), "Schema"); err != nil {
		return apperrors.NewIOError("failed to name schema sheet", err)
	}
	if err := setRow(f, "Schema", 1, []interface{}{"column", "kind", "missing"}); err != nil {
		return err
	}
	for i, field := range schema {
		row := []interface{}{field.Name, string(field.Kind), field.Missing}
		if err := setRow(f, "Schema", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeNumericSheet(f *excelize.File, schema []profile.SchemaField, numeric map[string]profile.NumericSummary) error {
	if _, err := f.NewSheet("Numeric"); err != nil {
		return apperrors.NewIOError("failed to create numeric sheet", err)
	}
	header := []interface{}{"column", "count", "mean", "std", "min", "p25", "p50", "p75", "max"}
	if err := setRow(f, "Numeric", 1, header); err != nil {
		return err
	}
	row := 2
	for _, field := range schema {
		s, ok := numeric[field.Name]
		if !ok {
			continue
		}
		values := []interface{}{field.Name, s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max}
		if err := setRow(f, "Numeric", row, values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeCategoricalSheet(f *excelize.File, column string, shares []profile.CategoryShare) error {
	sheet := sheetName(column)
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to create sheet for %s", column), err)
	}
	if err := setRow(f, sheet, 1, []interface{}{"value", "proportion"}); err != nil {
		return err
	}
	for i, s := range shares {
		if err := setRow(f, sheet, i+2, []interface{}{s.Value, s.Proportion}); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes one row of cells starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return apperrors.NewIOError("invalid cell coordinates", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to write row %d of %s", row, sheet), err)
	}
	return nil
}

// sheetName truncates a column name to the xlsx sheet-name limit.
func sheetName(column string) string {
	if len(column) > excelSheetNameLimit {
		return column[:excelSheetNameLimit]
	}
	return column
}
