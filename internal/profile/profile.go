// Package profile computes descriptive statistics over a loaded record
// table: per-column schema metadata, numeric summaries and categorical
// frequency tables. All operations are pure reads.
package profile

import (
	"math"
	"sort"

	"incomecli/internal/dataset"
)

// SchemaField describes one column: its name, inferred kind and how many
// cells are missing.
type SchemaField struct {
	Name    string
	Kind    dataset.Kind
	Missing int
}

// NumericSummary holds the standard sample statistics of one numeric column.
type NumericSummary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

// CategoryShare is one row of a categorical frequency table.
type CategoryShare struct {
	Value      string
	Proportion float64
}

// DescribeSchema returns per-column metadata in header order.
func DescribeSchema(t *dataset.Table) []SchemaField {
	cols := t.Columns()
	fields := make([]SchemaField, len(cols))
	for i, c := range cols {
		missing, _ := t.MissingCount(c.Name)
		fields[i] = SchemaField{Name: c.Name, Kind: c.Kind, Missing: missing}
	}
	return fields
}

// DescribeNumeric computes sample statistics for every numeric column.
// Missing cells are excluded from the statistics.
func DescribeNumeric(t *dataset.Table) map[string]NumericSummary {
	out := make(map[string]NumericSummary)
	for _, c := range t.Columns() {
		if !c.Kind.Numeric() {
			continue
		}
		vals, err := t.Floats(c.Name)
		if err != nil || len(vals) == 0 {
			continue
		}
		out[c.Name] = summarize(vals)
	}
	return out
}

// DescribeCategorical returns the frequency table of one column, sorted by
// descending proportion with ties kept in first-encountered order.
// Proportions are taken over the total row count and sum to 1.
func DescribeCategorical(t *dataset.Table, column string) ([]CategoryShare, error) {
	cells, err := t.Strings(column)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, nil
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, v := range cells {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	total := float64(len(cells))
	shares := make([]CategoryShare, len(order))
	for i, v := range order {
		shares[i] = CategoryShare{Value: v, Proportion: float64(counts[v]) / total}
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Proportion > shares[j].Proportion
	})
	return shares, nil
}

// summarize computes the eight-number summary over a non-empty sample.
func summarize(vals []float64) NumericSummary {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	n := len(sorted)
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	std := 0.0
	if n > 1 {
		ss := 0.0
		for _, v := range sorted {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1)) // sample standard deviation
	}

	return NumericSummary{
		Count: n,
		Mean:  mean,
		Std:   std,
		Min:   sorted[0],
		P25:   percentile(sorted, 0.25),
		P50:   percentile(sorted, 0.50),
		P75:   percentile(sorted, 0.75),
		Max:   sorted[n-1],
	}
}

// percentile computes the p-th percentile of a sorted sample using linear
// interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
