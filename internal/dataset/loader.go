package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	apperrors "incomecli/internal/errors"
)

// missingCell reports whether a cell is absent. The UCI Adult export uses
// "?" for unknown values; empty cells count as missing too.
func missingCell(cell string) bool {
	return cell == "" || cell == "?"
}

// Load reads a comma-delimited UTF-8 table with a header row into a Table.
// Column kinds are inferred from the data: a column is int if every
// non-missing cell parses as an integer, float if every non-missing cell
// parses as a number, string otherwise.
//
// Fails with a NOT_FOUND kind when the path does not exist and a PARSING
// kind when a row has an inconsistent field count.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(path, err)
		}
		return nil, apperrors.NewIOError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	table, err := read(file)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}

	slog.Info("loaded record table",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns())))

	return table, nil
}

// read parses the delimited stream into a Table.
func read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewParsingError("table has no header row", err)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read header row", err)
	}

	columns := make([]*column, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		columns[i] = &column{info: ColumnInfo{Name: name}}
		index[name] = i
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("malformed row", err).
				WithContext("row", rows+1)
		}
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			columns[i].cells = append(columns[i].cells, cell)
			columns[i].missing = append(columns[i].missing, missingCell(cell))
		}
		rows++
	}

	for _, c := range columns {
		inferKind(c)
	}

	return &Table{columns: columns, index: index, rows: rows}, nil
}

// inferKind types a column from its non-missing cells and fills the parsed
// numeric view for numeric columns.
func inferKind(c *column) {
	allInt, allFloat := true, true
	seen := false

	for i, cell := range c.cells {
		if c.missing[i] {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			allFloat = false
			break
		}
	}

	switch {
	case seen && allInt:
		c.info.Kind = KindInt
	case seen && allFloat:
		c.info.Kind = KindFloat
	default:
		c.info.Kind = KindString
	}

	if !c.info.Kind.Numeric() {
		return
	}
	c.nums = make([]float64, len(c.cells))
	for i, cell := range c.cells {
		if c.missing[i] {
			continue
		}
		v, _ := strconv.ParseFloat(cell, 64)
		c.nums[i] = v
	}
}
