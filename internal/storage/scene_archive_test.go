package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSceneArchive тестирует архив запусков в памяти
func TestSceneArchive(t *testing.T) {
	archive, err := OpenInMemoryArchive()
	require.NoError(t, err)
	defer archive.Close()

	t.Run("Save and Load", func(t *testing.T) {
		payload := []byte(`[{"type":"chair"}]`)
		saved, err := archive.Save(RunMeta{Seed: 42, Count: 1, Jitter: 10, Objects: 7}, payload)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, saved.ID, "ID должен быть назначен")
		assert.False(t, saved.CreatedAt.IsZero())

		meta, data, err := archive.Load(saved.ID)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
		assert.Equal(t, int64(42), meta.Seed)
		assert.Equal(t, 7, meta.Objects)
		assert.True(t, saved.CreatedAt.Equal(meta.CreatedAt))
	})

	t.Run("Load Unknown Run", func(t *testing.T) {
		_, _, err := archive.Load(uuid.New())
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("List Newest First", func(t *testing.T) {
		base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		older, err := archive.Save(RunMeta{CreatedAt: base, Seed: 1}, []byte("[]"))
		require.NoError(t, err)
		newer, err := archive.Save(RunMeta{CreatedAt: base.Add(time.Hour), Seed: 2}, []byte("[]"))
		require.NoError(t, err)

		runs, err := archive.List()
		require.NoError(t, err)
		require.Len(t, runs, 3)

		// Запуск из первого подтеста создан «сейчас», он новее обоих
		assert.Equal(t, newer.ID, runs[1].ID)
		assert.Equal(t, older.ID, runs[2].ID)
	})

	t.Run("Explicit ID Is Kept", func(t *testing.T) {
		id := uuid.New()
		saved, err := archive.Save(RunMeta{ID: id}, []byte("[]"))
		require.NoError(t, err)
		assert.Equal(t, id, saved.ID)
	})
}

func TestSceneArchive_Closed(t *testing.T) {
	archive, err := OpenInMemoryArchive()
	require.NoError(t, err)
	require.NoError(t, archive.Close())
	require.NoError(t, archive.Close(), "повторное закрытие безопасно")

	_, err = archive.Save(RunMeta{}, nil)
	assert.ErrorIs(t, err, ErrArchiveClosed)
	_, _, err = archive.Load(uuid.New())
	assert.ErrorIs(t, err, ErrArchiveClosed)
	_, err = archive.List()
	assert.ErrorIs(t, err, ErrArchiveClosed)
}

func TestSceneArchive_OnDiskReopen(t *testing.T) {
	dir := t.TempDir()

	archive, err := OpenSceneArchive(dir)
	require.NoError(t, err)
	saved, err := archive.Save(RunMeta{Seed: 5}, []byte(`[1]`))
	require.NoError(t, err)
	require.NoError(t, archive.Close())

	reopened, err := OpenSceneArchive(dir)
	require.NoError(t, err)
	defer reopened.Close()

	meta, data, err := reopened.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), meta.Seed)
	assert.Equal(t, []byte(`[1]`), data)
}
