package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "incomecli/internal/errors"
)

const sampleCSV = `age,workclass,income,hours_per_week
39,State-gov,<=50K,40
50,Self-emp-not-inc,<=50K,13
38,?,>50K,40
53,Private,>50K,45
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adult_cleaned.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	table, err := Load(writeSample(t, sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, table.Len())

	cols := table.Columns()
	require.Len(t, cols, 4)
	// Header order must survive the round trip.
	assert.Equal(t, "age", cols[0].Name)
	assert.Equal(t, "workclass", cols[1].Name)
	assert.Equal(t, "income", cols[2].Name)
	assert.Equal(t, "hours_per_week", cols[3].Name)

	assert.Equal(t, KindInt, cols[0].Kind)
	assert.Equal(t, KindString, cols[1].Kind)
	assert.Equal(t, KindString, cols[2].Kind)
	assert.Equal(t, KindInt, cols[3].Kind)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestLoad_MalformedRow(t *testing.T) {
	_, err := Load(writeSample(t, "a,b\n1,2\n3\n"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 2, appErr.Context["row"])
}

func TestLoad_EmptyFile(t *testing.T) {
	_, err := Load(writeSample(t, ""))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestLoad_FloatInference(t *testing.T) {
	table, err := Load(writeSample(t, "score\n1.5\n2\n3.25\n"))
	require.NoError(t, err)

	cols := table.Columns()
	assert.Equal(t, KindFloat, cols[0].Kind)

	vals, err := table.Floats("score")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2, 3.25}, vals)
}

func TestLoad_MissingCells(t *testing.T) {
	table, err := Load(writeSample(t, "age,workclass\n30,Private\n?,?\n41,\n"))
	require.NoError(t, err)

	// "?" does not demote a numeric column to string.
	assert.Equal(t, KindInt, table.Columns()[0].Kind)

	n, err := table.MissingCount("age")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = table.MissingCount("workclass")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Missing numeric cells are skipped, not zero-filled.
	vals, err := table.Floats("age")
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 41}, vals)
}
