package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"incomecli/internal/aggregate"
	"incomecli/internal/config"
	apperrors "incomecli/internal/errors"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a file in the results directory with the given
// options, overwriting any previous content.
func (w *CSVWriter) WriteCSV(name string, options WriteOptions) error {
	fullPath := w.paths.ResultsFile(name)

	slog.Info("writing CSV report",
		slog.String("file", name),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewIOError("failed to create results directory", err).
			WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to create %s", name), err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewIOError("failed to write BOM", err).
				WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewIOError("failed to write headers", err).
				WithContext("path", fullPath)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewIOError(fmt.Sprintf("failed to write record %d", i), err).
				WithContext("path", fullPath)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewIOError("failed to flush csv", err).WithContext("path", fullPath)
	}
	return nil
}

// WriteAggregation exports an aggregation result as <name>.csv: one row per
// bucket with the group columns, label, raw count and percentage share.
func (w *CSVWriter) WriteAggregation(name string, res *aggregate.Result) error {
	headers := make([]string, 0, len(res.GroupColumns)+3)
	headers = append(headers, res.GroupColumns...)
	headers = append(headers, res.LabelColumn, "count", "percent")

	records := make([][]string, len(res.Buckets))
	for i, b := range res.Buckets {
		record := make([]string, 0, len(headers))
		record = append(record, b.Group...)
		record = append(record,
			b.Label,
			strconv.Itoa(b.Count),
			strconv.FormatFloat(b.Percent, 'f', 2, 64))
		records[i] = record
	}

	return w.WriteCSV(name+".csv", WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}
