package columnar

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwatch/driftwatch/pkg/compression"
	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/errors"
	"github.com/driftwatch/driftwatch/pkg/testutil"
)

func threeColumnDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.NewColumn("a", []interface{}{1.0, 2.0, 3.0}),
		dataset.NewColumn("b", []interface{}{"x", "y", "z"}),
		dataset.NewColumn("c", []interface{}{true, false, nil}),
	)
	require.NoError(t, err)
	return ds
}

func TestColumnNamesMatchDatasetOrder(t *testing.T) {
	store, err := New(threeColumnDataset(t))
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, []string{"a", "b", "c"}, store.ColumnNames())
}

func TestLoadColumnRoundTrip(t *testing.T) {
	store, err := New(threeColumnDataset(t))
	require.NoError(t, err)
	defer store.Close()

	// A, B, C, A: the final load must return A's original values
	// unchanged after two evictions.
	for _, name := range []string{"a", "b", "c"} {
		col, err := store.LoadColumn(name)
		require.NoError(t, err)
		assert.Equal(t, name, col.Name)
	}

	col, err := store.LoadColumn("a")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0}, col.Values)
}

func TestLoadColumnPreservesNumericCells(t *testing.T) {
	ds, err := dataset.New(
		dataset.NewColumn("a", []interface{}{1, 2, 3}),
		dataset.NewColumn("b", []interface{}{int64(4), int64(5), int64(6)}),
	)
	require.NoError(t, err)

	store, err := New(ds)
	require.NoError(t, err)
	defer store.Close()

	first, err := store.LoadColumn("a")
	require.NoError(t, err)
	before := append([]interface{}(nil), first.Values...)

	_, err = store.LoadColumn("b")
	require.NoError(t, err)

	again, err := store.LoadColumn("a")
	require.NoError(t, err)
	assert.Equal(t, before, again.Values)
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0}, again.Values)
}

func TestWriteBackPersistsMutations(t *testing.T) {
	store, err := New(threeColumnDataset(t))
	require.NoError(t, err)
	defer store.Close()

	col, err := store.LoadColumn("a")
	require.NoError(t, err)
	col.Values[0] = 99.0

	// Swapping to another column writes the resident one back; the
	// mutation must survive the round trip.
	_, err = store.LoadColumn("b")
	require.NoError(t, err)

	col, err = store.LoadColumn("a")
	require.NoError(t, err)
	assert.Equal(t, 99.0, col.Values[0])
}

func TestLoadColumnNotFound(t *testing.T) {
	store, err := New(threeColumnDataset(t))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.LoadColumn("missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestIterateVisitsColumnsInOrder(t *testing.T) {
	store, err := New(threeColumnDataset(t))
	require.NoError(t, err)
	defer store.Close()

	var visited []string
	it := store.Iterate()
	for it.Next() {
		visited = append(visited, it.Column().Name)
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"a", "b", "c"}, visited)

	// Re-iterating repeats the same order.
	visited = nil
	it = store.Iterate()
	for it.Next() {
		visited = append(visited, it.Column().Name)
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"a", "b", "c"}, visited)
}

func TestCloseIsIdempotent(t *testing.T) {
	store, err := New(threeColumnDataset(t))
	require.NoError(t, err)

	dir := store.dir
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))

	_, err = store.LoadColumn("a")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeStorage))
}

func TestCompressedSpillRoundTrip(t *testing.T) {
	for _, algorithm := range []compression.Algorithm{
		compression.Gzip,
		compression.Snappy,
		compression.S2,
		compression.Zstd,
	} {
		t.Run(string(algorithm), func(t *testing.T) {
			store, err := New(threeColumnDataset(t),
				WithCompression(algorithm),
				WithLogger(testutil.TestLogger(t)))
			require.NoError(t, err)
			defer store.Close()

			col, err := store.LoadColumn("b")
			require.NoError(t, err)
			assert.Equal(t, []interface{}{"x", "y", "z"}, col.Values)
		})
	}
}

func TestEmptyDataset(t *testing.T) {
	ds, err := dataset.New()
	require.NoError(t, err)

	store, err := New(ds)
	require.NoError(t, err)
	defer store.Close()

	assert.Empty(t, store.ColumnNames())
	assert.False(t, store.Iterate().Next())
}
