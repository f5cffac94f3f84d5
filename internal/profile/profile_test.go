package profile

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incomecli/internal/dataset"
	apperrors "incomecli/internal/errors"
)

func loadCSV(t *testing.T, content string) *dataset.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	table, err := dataset.Load(path)
	require.NoError(t, err)
	return table
}

func TestDescribeSchema_HeaderOrderRoundTrip(t *testing.T) {
	table := loadCSV(t, "age,workclass,income,hours_per_week\n39,Private,<=50K,40\n28,?,>50K,50\n")

	fields := DescribeSchema(table)
	require.Len(t, fields, 4)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"age", "workclass", "income", "hours_per_week"}, names)

	assert.Equal(t, dataset.KindInt, fields[0].Kind)
	assert.Equal(t, 0, fields[0].Missing)
	assert.Equal(t, 1, fields[1].Missing)
}

func TestDescribeNumeric(t *testing.T) {
	table := loadCSV(t, "v,name\n1,a\n2,b\n3,c\n4,d\n")

	summaries := DescribeNumeric(table)
	require.Contains(t, summaries, "v")
	assert.NotContains(t, summaries, "name", "string columns are excluded")

	s := summaries["v"]
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.0, s.Min, 1e-12)
	assert.InDelta(t, 4.0, s.Max, 1e-12)
	assert.InDelta(t, 2.5, s.P50, 1e-12)
	assert.InDelta(t, 1.75, s.P25, 1e-12)
	assert.InDelta(t, 3.25, s.P75, 1e-12)
	// Sample std of 1..4 is sqrt(5/3).
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.Std, 1e-12)
}

func TestDescribeNumeric_SingleValue(t *testing.T) {
	table := loadCSV(t, "v\n7\n")

	s := DescribeNumeric(table)["v"]
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 7.0, s.P25)
	assert.Equal(t, 7.0, s.P50)
	assert.Equal(t, 0.0, s.Std)
}

func TestDescribeCategorical(t *testing.T) {
	table := loadCSV(t, "race\nWhite\nWhite\nBlack\nWhite\nAsian\nBlack\n")

	shares, err := DescribeCategorical(table, "race")
	require.NoError(t, err)
	require.Len(t, shares, 3)

	assert.Equal(t, "White", shares[0].Value)
	assert.InDelta(t, 0.5, shares[0].Proportion, 1e-12)
	assert.Equal(t, "Black", shares[1].Value)
	assert.Equal(t, "Asian", shares[2].Value)
}

func TestDescribeCategorical_TiesFirstEncountered(t *testing.T) {
	table := loadCSV(t, "c\nzebra\napple\nzebra\napple\n")

	shares, err := DescribeCategorical(table, "c")
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "zebra", shares[0].Value, "tie keeps first-encountered order")
	assert.Equal(t, "apple", shares[1].Value)
}

func TestDescribeCategorical_ProportionsSumToOne(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("c\n")
	for i := 0; i < 97; i++ {
		sb.WriteString(fmt.Sprintf("v%d\n", i%7))
	}
	table := loadCSV(t, sb.String())

	for _, col := range []string{"c"} {
		shares, err := DescribeCategorical(table, col)
		require.NoError(t, err)

		sum := 0.0
		for _, s := range shares {
			sum += s.Proportion
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestDescribeCategorical_UnknownColumn(t *testing.T) {
	table := loadCSV(t, "a\n1\n")

	_, err := DescribeCategorical(table, "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}
