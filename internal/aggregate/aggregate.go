// Package aggregate computes grouped count/percentage tables from a record
// table: rows are grouped by one or more dimension columns and counted per
// distinct value of a label column.
package aggregate

import (
	"sort"
	"strings"

	"incomecli/internal/dataset"
	apperrors "incomecli/internal/errors"
)

// Bucket is one (group key, label) cell of an aggregation: the raw row count
// and the percentage share of the count within its group.
type Bucket struct {
	Group   []string
	Label   string
	Count   int
	Percent float64
}

// Key returns the group values joined for display and sorting.
func (b Bucket) Key() string {
	return strings.Join(b.Group, " / ")
}

// Result is an ordered aggregation table. Group×label combinations with zero
// rows are absent; consumers must not assume every combination appears.
type Result struct {
	GroupColumns []string
	LabelColumn  string
	Buckets      []Bucket
}

// By groups the table rows by the distinct combination of values in
// groupColumns, counts rows per distinct value of labelColumn within each
// group, and computes each count's percentage share of its group total.
// Buckets are sorted ascending by group key, then by label.
//
// Fails with a SCHEMA kind if any referenced column is absent.
func By(t *dataset.Table, groupColumns []string, labelColumn string) (*Result, error) {
	if len(groupColumns) == 0 {
		return nil, apperrors.NewSchemaError("").
			WithContext("reason", "at least one group column is required")
	}

	groupCells := make([][]string, len(groupColumns))
	for i, name := range groupColumns {
		cells, err := t.Strings(name)
		if err != nil {
			return nil, err
		}
		groupCells[i] = cells
	}
	labels, err := t.Strings(labelColumn)
	if err != nil {
		return nil, err
	}

	type cell struct {
		group []string
		label string
	}
	counts := make(map[string]int)
	totals := make(map[string]int)
	cells := make(map[string]cell)

	for row := 0; row < t.Len(); row++ {
		group := make([]string, len(groupColumns))
		for i := range groupColumns {
			group[i] = groupCells[i][row]
		}
		groupKey := strings.Join(group, "\x1f")
		cellKey := groupKey + "\x1e" + labels[row]

		counts[cellKey]++
		totals[groupKey]++
		if _, ok := cells[cellKey]; !ok {
			cells[cellKey] = cell{group: group, label: labels[row]}
		}
	}

	buckets := make([]Bucket, 0, len(cells))
	for key, c := range cells {
		groupKey := strings.Join(c.group, "\x1f")
		buckets = append(buckets, Bucket{
			Group:   c.group,
			Label:   c.label,
			Count:   counts[key],
			Percent: 100 * float64(counts[key]) / float64(totals[groupKey]),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		for k := range buckets[i].Group {
			if buckets[i].Group[k] != buckets[j].Group[k] {
				return buckets[i].Group[k] < buckets[j].Group[k]
			}
		}
		return buckets[i].Label < buckets[j].Label
	})

	return &Result{
		GroupColumns: append([]string(nil), groupColumns...),
		LabelColumn:  labelColumn,
		Buckets:      buckets,
	}, nil
}

// TopN returns a copy of the result truncated to the n buckets with the
// highest raw counts. The sort is stable over the ascending base order, so
// ties keep their group/label ordering. Percentages are left untouched:
// ranking is by absolute count even when the display shows shares.
func (r *Result) TopN(n int) *Result {
	buckets := make([]Bucket, len(r.Buckets))
	copy(buckets, r.Buckets)

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	if n >= 0 && n < len(buckets) {
		buckets = buckets[:n]
	}

	return &Result{
		GroupColumns: r.GroupColumns,
		LabelColumn:  r.LabelColumn,
		Buckets:      buckets,
	}
}

// Labels returns the distinct labels of the result in bucket order.
func (r *Result) Labels() []string {
	seen := make(map[string]bool)
	labels := make([]string, 0, 2)
	for _, b := range r.Buckets {
		if !seen[b.Label] {
			seen[b.Label] = true
			labels = append(labels, b.Label)
		}
	}
	return labels
}

// GroupKeys returns the distinct group keys of the result in bucket order.
func (r *Result) GroupKeys() []string {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, b := range r.Buckets {
		k := b.Key()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
