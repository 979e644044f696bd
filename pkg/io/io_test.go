package io

import (
	"context"
	stderrors "errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwatch/driftwatch/pkg/config"
	"github.com/driftwatch/driftwatch/pkg/errors"
)

// stubTable implements Tabular for write tests.
type stubTable struct {
	columns []string
	rows    [][]interface{}
}

func (s stubTable) Columns() []string     { return s.columns }
func (s stubTable) Rows() [][]interface{} { return s.rows }

func reportTable() stubTable {
	return stubTable{
		columns: []string{"column_name", "trend_significant_change", "new_values", "mean"},
		rows: [][]interface{}{
			{"sales", true, nil, 104.5},
			{"region", nil, []interface{}{"apac"}, nil},
		},
	}
}

func TestCSVRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	raw := "month,sales,region\n1,100.5,eu\n2,,us\n3,98,eu\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	ds, err := (&CSVHandler{}).Read(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"month", "sales", "region"}, ds.ColumnNames())
	assert.Equal(t, 3, ds.Rows())

	sales, err := ds.Column("sales")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{100.5, nil, 98.0}, sales.Values)

	region, err := ds.Column("region")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"eu", "us", "eu"}, region.Values)
}

func TestCSVWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, (&CSVHandler{}).Write(context.Background(), reportTable(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := "column_name,trend_significant_change,new_values,mean\n" +
		"sales,true,,104.5\n" +
		"region,,\"[\"\"apac\"\"]\",\n"
	assert.Equal(t, expected, string(raw))
}

func TestCSVCustomDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n1\tx\n"), 0o644))

	ds, err := (&CSVHandler{Comma: '\t'}).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.ColumnNames())
}

func TestCSVReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ds, err := (&CSVHandler{}).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Width())
}

func TestJSONRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	raw := `[
  {"month": 1, "sales": 100.5, "region": "eu"},
  {"month": 2, "region": "us"}
]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	ds, err := (&JSONHandler{}).Read(context.Background(), path)
	require.NoError(t, err)

	// JSON objects carry no order; columns come back sorted.
	assert.Equal(t, []string{"month", "region", "sales"}, ds.ColumnNames())

	sales, err := ds.Column("sales")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{100.5, nil}, sales.Values)
}

func TestJSONWriteOmitsNilCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, (&JSONHandler{}).Write(context.Background(), reportTable(), path))

	ds, err := (&JSONHandler{}).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rows())

	mean, err := ds.Column("mean")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{104.5, nil}, mean.Values)

	fresh, err := ds.Column("new_values")
	require.NoError(t, err)
	assert.Nil(t, fresh.Values[0])
	assert.Equal(t, []interface{}{"apac"}, fresh.Values[1])
}

func TestJSONWriteNonFiniteCells(t *testing.T) {
	// A volatility index over a zero mean is legitimately +Inf; the
	// report write must render it as an absent cell, not fail.
	table := stubTable{
		columns: []string{"column_name", "timeseries_volatility_index", "numeric_cv"},
		rows: [][]interface{}{
			{"sales", math.Inf(1), math.NaN()},
			{"price", 0.5, 0.1},
		},
	}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, (&JSONHandler{}).Write(context.Background(), table, path))

	ds, err := (&JSONHandler{}).Read(context.Background(), path)
	require.NoError(t, err)

	vol, err := ds.Column("timeseries_volatility_index")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{nil, 0.5}, vol.Values)

	cv, err := ds.Column("numeric_cv")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{nil, 0.1}, cv.Values)
}

func TestForConfig(t *testing.T) {
	handler, err := ForConfig(config.DataConfig{Format: "csv", Path: "data.csv"})
	require.NoError(t, err)
	assert.IsType(t, &CSVHandler{}, handler)

	handler, err = ForConfig(config.DataConfig{Format: "json", Path: "data.json"})
	require.NoError(t, err)
	assert.IsType(t, &JSONHandler{}, handler)

	handler, err = ForConfig(config.DataConfig{Format: "csv", Path: "https://example.com/data.csv"})
	require.NoError(t, err)
	assert.IsType(t, &RemoteHandler{}, handler)
}

func TestForConfigUnknownFormat(t *testing.T) {
	_, err := ForConfig(config.DataConfig{Format: "parquet"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	assert.Contains(t, err.Error(), "csv")
	assert.Contains(t, err.Error(), "json")
}

func TestRemoteRead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("month,sales\n1,100\n2,97\n"))
	}))
	defer server.Close()

	handler := NewRemoteHandler(&CSVHandler{})
	ds, err := handler.Read(context.Background(), server.URL+"/data.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"month", "sales"}, ds.ColumnNames())
	assert.Equal(t, 2, ds.Rows())
}

func TestRemoteReadBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewRemoteHandler(&CSVHandler{}).Read(context.Background(), server.URL+"/absent.csv")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))

	var structured *errors.Error
	require.True(t, stderrors.As(err, &structured))
	assert.Equal(t, http.StatusNotFound, structured.Details["status"])
}

func TestRemoteWriteRejected(t *testing.T) {
	err := NewRemoteHandler(&CSVHandler{}).Write(context.Background(), reportTable(), "https://example.com/report.csv")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
