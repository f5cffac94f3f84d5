package dataset

import (
	apperrors "incomecli/internal/errors"
)

// Kind is the inferred type of a column.
type Kind string

const (
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
)

// Numeric reports whether the kind supports numeric summaries.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name string
	Kind Kind
}

// column holds one column's cells. Raw text is kept verbatim; nums is a
// parallel slice valid wherever missing is false and the kind is numeric.
type column struct {
	info    ColumnInfo
	cells   []string
	nums    []float64
	missing []bool
}

// Table is an immutable, column-oriented record table. Rows and columns are
// fixed at load time.
type Table struct {
	columns []*column
	index   map[string]int
	rows    int
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Columns returns the column descriptors in header order.
func (t *Table) Columns() []ColumnInfo {
	infos := make([]ColumnInfo, len(t.columns))
	for i, c := range t.columns {
		infos[i] = c.info
	}
	return infos
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Strings returns the raw cell text of the named column, in row order.
// Missing cells are returned as empty strings.
func (t *Table) Strings(name string) ([]string, error) {
	c, err := t.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, t.rows)
	for i, cell := range c.cells {
		if c.missing[i] {
			continue
		}
		out[i] = cell
	}
	return out, nil
}

// Floats returns the numeric values of the named column with missing cells
// skipped. Fails with a SchemaError kind if the column does not exist or is
// not numeric.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if !c.info.Kind.Numeric() {
		return nil, apperrors.NewSchemaError(name).WithContext("reason", "column is not numeric")
	}
	out := make([]float64, 0, t.rows)
	for i, v := range c.nums {
		if c.missing[i] {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Cell returns the raw text of a single cell.
func (t *Table) Cell(row int, name string) (string, error) {
	c, err := t.column(name)
	if err != nil {
		return "", err
	}
	if c.missing[row] {
		return "", nil
	}
	return c.cells[row], nil
}

// MissingCount returns how many cells of the named column are missing.
func (t *Table) MissingCount(name string) (int, error) {
	c, err := t.column(name)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range c.missing {
		if m {
			n++
		}
	}
	return n, nil
}

func (t *Table) column(name string) (*column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, apperrors.NewSchemaError(name)
	}
	return t.columns[i], nil
}
