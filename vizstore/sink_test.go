package vizstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-braket/errors"
	testutil "github.com/teranos/qntx-braket/internal/testing"
)

var fixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func TestSaveWritesImage(t *testing.T) {
	workspace := t.TempDir()
	sink := NewFileSink(workspace, WithClock(fixedClock))

	path, err := sink.Save(context.Background(), []byte("png-bytes"), "bell_pair_circuit")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(workspace, SubDir), filepath.Dir(path))
	name := filepath.Base(path)
	assert.True(t, strings.HasPrefix(name, "bell_pair_circuit_20260314_150926_"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	matches, err := filepath.Glob(filepath.Join(sink.Dir(), "*_metadata.txt"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSaveDescribedWritesMetadata(t *testing.T) {
	sink := NewFileSink(t.TempDir(), WithClock(fixedClock))

	path, err := sink.SaveDescribed(context.Background(), []byte("x"), "results_arn:aws:braket/task", "Measured 2 unique outcomes")
	require.NoError(t, err)
	assert.NotContains(t, filepath.Base(path), ":")
	assert.NotContains(t, filepath.Base(path), "/")

	meta, err := os.ReadFile(strings.TrimSuffix(path, ".png") + "_metadata.txt")
	require.NoError(t, err)
	assert.Contains(t, string(meta), "description: Measured 2 unique outcomes")
	assert.Contains(t, string(meta), "created: 2026-03-14T15:09:26Z")
}

func TestSaveUniqueNames(t *testing.T) {
	sink := NewFileSink(t.TempDir(), WithClock(fixedClock))
	a, err := sink.Save(context.Background(), []byte("a"), "custom_circuit")
	require.NoError(t, err)
	b, err := sink.Save(context.Background(), []byte("b"), "custom_circuit")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSaveFailureIsVisualizationError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := NewFileSink(blocker).Save(context.Background(), []byte("x"), "custom_circuit")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrVisualization))
}

func TestSaveRecordsInCatalog(t *testing.T) {
	catalog := NewCatalog(testutil.CreateTestDB(t))
	sink := NewFileSink(t.TempDir(), WithClock(fixedClock), WithCatalog(catalog))

	path, err := sink.SaveDescribed(context.Background(), []byte("12345"), "results_abc", "summary")
	require.NoError(t, err)

	entries, err := catalog.List(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, path, entries[0].Path)
	assert.Equal(t, "results", entries[0].Kind)
	assert.Equal(t, int64(5), entries[0].SizeBytes)
	assert.True(t, fixedTime.Equal(entries[0].CreatedAt))
}

func TestSaveSurvivesClosedCatalog(t *testing.T) {
	conn := testutil.CreateTestDB(t)
	catalog := NewCatalog(conn)
	require.NoError(t, conn.Close())

	path, err := NewFileSink(t.TempDir(), WithCatalog(catalog)).Save(context.Background(), []byte("x"), "ghz_circuit")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "results", KindOf("results_task-1"))
	assert.Equal(t, "circuit", KindOf("ghz_circuit"))
}
