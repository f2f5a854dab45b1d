package vizstore

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-braket/errors"
	testutil "github.com/teranos/qntx-braket/internal/testing"
)

func TestCatalogListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(testutil.CreateTestDB(t))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"bell_pair_circuit", "results_t1", "ghz_circuit"} {
		require.NoError(t, catalog.Record(ctx, Entry{
			ID:        name,
			Kind:      KindOf(name),
			BaseName:  name,
			Path:      "/tmp/" + name + ".png",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := catalog.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ghz_circuit", all[0].ID)
	assert.Equal(t, "bell_pair_circuit", all[2].ID)

	circuits, err := catalog.List(ctx, "circuit", 0)
	require.NoError(t, err)
	assert.Len(t, circuits, 2)

	limited, err := catalog.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCatalogDuplicatePathRejected(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(testutil.CreateTestDB(t))

	e := Entry{ID: "a", Kind: "circuit", BaseName: "x", Path: "/tmp/x.png", CreatedAt: time.Now()}
	require.NoError(t, catalog.Record(ctx, e))
	e.ID = "b"
	err := catalog.Record(ctx, e)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrVisualization))
}

func TestCatalogEmptyList(t *testing.T) {
	entries, err := NewCatalog(testutil.CreateTestDB(t)).List(context.Background(), "results", 10)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestCatalogRecordError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("INSERT INTO visualizations").WillReturnError(errors.New("disk I/O error"))

	err = NewCatalog(conn).Record(context.Background(), Entry{ID: "id-1", CreatedAt: time.Now()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrVisualization))
	assert.Contains(t, err.Error(), "id-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogListQueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT id, kind").WithArgs("circuit", DefaultListLimit).WillReturnError(errors.New("locked"))

	_, err = NewCatalog(conn).List(context.Background(), "circuit", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list visualizations")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogListScansRows(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	created := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "kind", "base_name", "path", "description", "size_bytes", "created_at"}).
		AddRow("id-1", "results", "results_t", "/tmp/r.png", "summary", int64(42), created)
	mock.ExpectQuery("SELECT id, kind").WithArgs(5).WillReturnRows(rows)

	entries, err := NewCatalog(conn).List(context.Background(), "", 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{ID: "id-1", Kind: "results", BaseName: "results_t", Path: "/tmp/r.png", Description: "summary", SizeBytes: 42, CreatedAt: created}, entries[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
