package localcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSlotRoundTrip(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put("greeting", []byte("hello")))

	payload, ok, err := store.Get("greeting")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), payload)

	require.NoError(t, store.Put("greeting", []byte("replaced")))
	payload, _, err = store.Get("greeting")
	require.NoError(t, err)
	assert.Equal(t, []byte("replaced"), payload)

	require.NoError(t, store.Delete("greeting"))
	_, ok, err = store.Get("greeting")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteAbsentSlotIsNoError(t *testing.T) {
	store := openTestStore(t)

	assert.NoError(t, store.Delete("never-written"))
}

func TestTokenSlot(t *testing.T) {
	store := openTestStore(t)

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SetToken("abc123"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, store.ClearToken())
	token, err = store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestThemeDefaultsToDark(t *testing.T) {
	store := openTestStore(t)

	theme, err := store.Theme()
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	require.NoError(t, store.SetTheme("light"))
	theme, err = store.Theme()
	require.NoError(t, err)
	assert.Equal(t, "light", theme)
}

type cachedRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRecordsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := LoadRecords[cachedRecord](store, "things")
	require.NoError(t, err)
	assert.False(t, ok)

	records := []cachedRecord{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}
	require.NoError(t, SaveRecords(store, "things", records))

	loaded, ok, err := LoadRecords[cachedRecord](store, "things")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, records, loaded)

	require.NoError(t, ClearRecords(store, "things"))
	_, ok, err = LoadRecords[cachedRecord](store, "things")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveRecordsNilPersistsEmptyList(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, SaveRecords[cachedRecord](store, "things", nil))

	loaded, ok, err := LoadRecords[cachedRecord](store, "things")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, loaded)
}

func TestRecordKindsAreIsolated(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, SaveRecords(store, "a", []cachedRecord{{ID: "1"}}))
	require.NoError(t, SaveRecords(store, "b", []cachedRecord{{ID: "2"}, {ID: "3"}}))

	a, _, err := LoadRecords[cachedRecord](store, "a")
	require.NoError(t, err)
	b, _, err := LoadRecords[cachedRecord](store, "b")
	require.NoError(t, err)

	assert.Len(t, a, 1)
	assert.Len(t, b, 2)
}
