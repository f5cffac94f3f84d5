package aggregate

import (
	"os"
	"path/filepath"
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

func TestBy_TwoLabelSplit(t *testing.T) {
	table := loadCSV(t, "age_group,income\n18-25,<=50K\n18-25,<=50K\n18-25,>50K\n")

	res, err := By(table, []string{"age_group"}, "income")
	require.NoError(t, err)
	require.Len(t, res.Buckets, 2)

	assert.Equal(t, []string{"18-25"}, res.Buckets[0].Group)
	assert.Equal(t, "<=50K", res.Buckets[0].Label)
	assert.Equal(t, 2, res.Buckets[0].Count)
	assert.InDelta(t, 66.67, res.Buckets[0].Percent, 0.01)

	assert.Equal(t, ">50K", res.Buckets[1].Label)
	assert.Equal(t, 1, res.Buckets[1].Count)
	assert.InDelta(t, 33.33, res.Buckets[1].Percent, 0.01)
}

func TestBy_PercentagesSumTo100PerGroup(t *testing.T) {
	table := loadCSV(t, `region,income
East,<=50K
East,>50K
East,<=50K
West,<=50K
West,>50K
West,>50K
West,>50K
North,<=50K
`)

	res, err := By(table, []string{"region"}, "income")
	require.NoError(t, err)

	sums := make(map[string]float64)
	for _, b := range res.Buckets {
		sums[b.Key()] += b.Percent
	}
	for key, sum := range sums {
		assert.InDelta(t, 100.0, sum, 1e-6, key)
	}
}

func TestBy_SingleLabelGroupIsExactly100(t *testing.T) {
	table := loadCSV(t, "region,income\nNorth,<=50K\nNorth,<=50K\n")

	res, err := By(table, []string{"region"}, "income")
	require.NoError(t, err)
	require.Len(t, res.Buckets, 1)
	assert.Equal(t, 100.0, res.Buckets[0].Percent)
}

func TestBy_AbsentCombinationsOmitted(t *testing.T) {
	table := loadCSV(t, "region,income\nEast,<=50K\nWest,>50K\n")

	res, err := By(table, []string{"region"}, "income")
	require.NoError(t, err)
	// Only the observed combinations appear; no explicit zero rows.
	require.Len(t, res.Buckets, 2)
}

func TestBy_SortOrder(t *testing.T) {
	table := loadCSV(t, "g,l\nb,y\nb,x\na,y\na,x\n")

	res, err := By(table, []string{"g"}, "l")
	require.NoError(t, err)

	got := make([][2]string, len(res.Buckets))
	for i, b := range res.Buckets {
		got[i] = [2]string{b.Key(), b.Label}
	}
	assert.Equal(t, [][2]string{{"a", "x"}, {"a", "y"}, {"b", "x"}, {"b", "y"}}, got)
}

func TestBy_MultipleGroupColumns(t *testing.T) {
	table := loadCSV(t, `education_level,occupation_grouped,income
Bachelors,Professional,>50K
Bachelors,Professional,>50K
Bachelors,Service,<=50K
HS-grad,Service,<=50K
`)

	res, err := By(table, []string{"education_level", "occupation_grouped"}, "income")
	require.NoError(t, err)
	require.Len(t, res.Buckets, 3)

	assert.Equal(t, "Bachelors / Professional", res.Buckets[0].Key())
	assert.Equal(t, 2, res.Buckets[0].Count)
	assert.Equal(t, 100.0, res.Buckets[0].Percent)
}

func TestBy_SchemaErrors(t *testing.T) {
	table := loadCSV(t, "a,b\n1,2\n")

	_, err := By(table, []string{"missing"}, "b")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	_, err = By(table, []string{"a"}, "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))

	_, err = By(table, nil, "b")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}

func TestTopN(t *testing.T) {
	table := loadCSV(t, `g,l
a,x
a,x
a,x
b,x
b,x
c,x
d,x
`)

	res, err := By(table, []string{"g"}, "l")
	require.NoError(t, err)

	top := res.TopN(2)
	require.Len(t, top.Buckets, 2)
	assert.Equal(t, "a", top.Buckets[0].Key())
	assert.Equal(t, 3, top.Buckets[0].Count)
	assert.Equal(t, "b", top.Buckets[1].Key())

	// Original result is untouched.
	assert.Len(t, res.Buckets, 4)
}

func TestTopN_TiesKeepBaseOrder(t *testing.T) {
	table := loadCSV(t, "g,l\nb,x\na,x\nc,x\n")

	res, err := By(table, []string{"g"}, "l")
	require.NoError(t, err)

	top := res.TopN(2)
	// All counts tie at 1; the ascending base order (a, b, c) decides.
	assert.Equal(t, "a", top.Buckets[0].Key())
	assert.Equal(t, "b", top.Buckets[1].Key())
}

func TestLabelsAndGroupKeys(t *testing.T) {
	table := loadCSV(t, "g,l\na,x\na,y\nb,x\n")

	res, err := By(table, []string{"g"}, "l")
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, res.Labels())
	assert.Equal(t, []string{"a", "b"}, res.GroupKeys())
}
