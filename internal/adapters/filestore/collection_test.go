package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestOpenCollection_CreatesEmptyDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	c, err := OpenCollection[record](dir, "records.json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "records.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Empty(t, c.Load(context.Background()))
	assert.Equal(t, "records.json", c.Name())
}

func TestOpenCollection_KeepsExistingDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), []byte(`[{"id":1,"name":"a"}]`), 0o644))

	c, err := OpenCollection[record](dir, "records.json")
	require.NoError(t, err)

	assert.Equal(t, []record{{ID: 1, Name: "a"}}, c.Load(context.Background()))
}

func TestCollection_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	c, err := OpenCollection[record](t.TempDir(), "records.json")
	require.NoError(t, err)

	require.NoError(t, c.Save(ctx, []record{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}))
	assert.Equal(t, []record{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, c.Load(ctx))

	require.NoError(t, c.Save(ctx, nil))
	data, err := os.ReadFile(c.path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCollection_CorruptDocumentReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	c, err := OpenCollection[record](t.TempDir(), "records.json")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(c.path, []byte("{not json"), 0o644))

	assert.Empty(t, c.Load(ctx))

	// The next write starts from the empty collection.
	require.NoError(t, c.Update(ctx, func(rs []record) ([]record, error) {
		return append(rs, record{ID: 9}), nil
	}))
	assert.Equal(t, []record{{ID: 9}}, c.Load(ctx))
}

func TestCollection_MissingDocumentReadsAsEmpty(t *testing.T) {
	c, err := OpenCollection[record](t.TempDir(), "records.json")
	require.NoError(t, err)
	require.NoError(t, os.Remove(c.path))

	assert.Empty(t, c.Load(context.Background()))
}

func TestCollection_NullDocumentReadsAsEmpty(t *testing.T) {
	c, err := OpenCollection[record](t.TempDir(), "records.json")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(c.path, []byte("null"), 0o644))

	loaded := c.Load(context.Background())
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestCollection_UpdateErrorSkipsWrite(t *testing.T) {
	ctx := context.Background()
	c, err := OpenCollection[record](t.TempDir(), "records.json")
	require.NoError(t, err)
	require.NoError(t, c.Save(ctx, []record{{ID: 1}}))

	boom := errors.New("boom")
	err = c.Update(ctx, func(rs []record) ([]record, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []record{{ID: 1}}, c.Load(ctx))
}

func TestCollection_WriteFailurePropagates(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := OpenCollection[record](dir, "records.json")
	require.NoError(t, err)

	// Replace the document with a directory so the write fails.
	require.NoError(t, os.Remove(c.path))
	require.NoError(t, os.Mkdir(c.path, 0o755))

	assert.Error(t, c.Save(ctx, []record{{ID: 1}}))
}

func TestCollection_ConcurrentUpdatesKeepEveryRecord(t *testing.T) {
	ctx := context.Background()
	c, err := OpenCollection[record](t.TempDir(), "records.json")
	require.NoError(t, err)

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, c.Update(ctx, func(rs []record) ([]record, error) {
				return append(rs, record{ID: id}), nil
			}))
		}(i)
	}
	wg.Wait()

	assert.Len(t, c.Load(ctx), writers)
}
