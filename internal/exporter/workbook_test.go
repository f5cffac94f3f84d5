package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"incomecli/internal/dataset"
	"incomecli/internal/profile"
)

func TestWriteProfile(t *testing.T) {
	paths := testPaths(t)
	w := NewWorkbookWriter(paths, nil)

	schema := []profile.SchemaField{
		{Name: "age", Kind: dataset.KindInt, Missing: 0},
		{Name: "race", Kind: dataset.KindString, Missing: 2},
	}
	numeric := map[string]profile.NumericSummary{
		"age": {Count: 4, Mean: 2.5, Min: 1, Max: 4, P50: 2.5},
	}
	categoricals := map[string][]profile.CategoryShare{
		"race": {
			{Value: "White", Proportion: 0.75},
			{Value: "Black", Proportion: 0.25},
		},
	}

	require.NoError(t, w.WriteProfile(schema, numeric, categoricals))

	f, err := excelize.OpenFile(paths.ProfileWorkbook)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Schema", "Numeric", "race"}, f.GetSheetList())

	v, err := f.GetCellValue("Schema", "A2")
	require.NoError(t, err)
	assert.Equal(t, "age", v)

	v, err = f.GetCellValue("Schema", "C3")
	require.NoError(t, err)
	assert.Equal(t, "2", v, "missing count for race")

	v, err = f.GetCellValue("Numeric", "A2")
	require.NoError(t, err)
	assert.Equal(t, "age", v)

	v, err = f.GetCellValue("race", "A2")
	require.NoError(t, err)
	assert.Equal(t, "White", v)
}

func TestWriteProfile_OverwritesOnRerun(t *testing.T) {
	paths := testPaths(t)
	w := NewWorkbookWriter(paths, nil)

	schema := []profile.SchemaField{{Name: "age", Kind: dataset.KindInt}}
	require.NoError(t, w.WriteProfile(schema, nil, nil))
	require.NoError(t, w.WriteProfile(schema, nil, nil))

	f, err := excelize.OpenFile(paths.ProfileWorkbook)
	require.NoError(t, err)
	defer f.Close()
	assert.ElementsMatch(t, []string{"Schema", "Numeric"}, f.GetSheetList())
}

func TestSheetName_Truncation(t *testing.T) {
	long := "a_very_long_categorical_column_name_indeed"
	assert.Len(t, sheetName(long), excelSheetNameLimit)
	assert.Equal(t, "race", sheetName("race"))
}
