// Package exporter persists tabular analysis outputs next to the chart
// artifacts.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers and
// UTF-8 BOM for Excel compatibility, plus an aggregation-result export.
//
// WorkbookWriter: Writes the profiling outputs (schema, numeric summaries,
// categorical frequency tables) into a single Excel workbook.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(paths)
//	err := w.WriteAggregation("income_by_race", result)
package exporter
