package model

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"tribute-wall/backend/common"

	"github.com/burugo/thing"
	"github.com/burugo/thing/drivers/db/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTributeTestDB(t *testing.T) func() {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	common.SQLitePath = filepath.Join(t.TempDir(), "tribute_test.db")

	// The ORM's default local cache is process-global; give each test a fresh
	// instance so cached query results don't leak across per-test databases.
	thing.DefaultLocalCache = reflect.New(reflect.TypeOf(thing.DefaultLocalCache).Elem()).Interface().(thing.CacheClient)

	err := InitDB()
	require.NoError(t, err)

	return func() {
		common.SQLitePath = originalSQLitePath
	}
}

func newTestTribute(fullName string) *Tribute {
	return &Tribute{
		Experience: "When you showed true leadership",
		Answer:     strings.Repeat("a", 40),
		FullName:   fullName,
		Department: "Engineering",
	}
}

func TestInsertAndGetTributeById(t *testing.T) {
	teardown := setupTributeTestDB(t)
	defer teardown()

	tribute := newTestTribute("Jane Doe")
	require.NoError(t, InsertTribute(tribute))
	require.NotZero(t, tribute.ID)

	found, err := GetTributeById(tribute.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", found.FullName)
	assert.Equal(t, "Engineering", found.Department)
}

func TestGetTributeByIdNotFound(t *testing.T) {
	teardown := setupTributeTestDB(t)
	defer teardown()

	_, err := GetTributeById(424242)
	assert.ErrorIs(t, err, ErrTributeNotFound)
}

func TestGetTributeByIdPropagatesStoreErrors(t *testing.T) {
	teardown := setupTributeTestDB(t)
	defer teardown()

	// Point the ORM at an empty database where the tributes table was never
	// migrated, so the query fails for an infrastructure reason, not a miss.
	dbAdapter, err := sqlite.NewSQLiteAdapter(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	thing.Configure(dbAdapter, nil)
	require.NoError(t, TributeInit())

	_, err = GetTributeById(1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTributeNotFound)
}

func TestGetLatestTributeByName(t *testing.T) {
	teardown := setupTributeTestDB(t)
	defer teardown()

	first := newTestTribute("Jane Doe")
	require.NoError(t, InsertTribute(first))
	other := newTestTribute("John Roe")
	require.NoError(t, InsertTribute(other))
	second := newTestTribute("Jane Doe")
	require.NoError(t, InsertTribute(second))

	latest, err := GetLatestTributeByName("Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestGetLatestTributeByNameIsCaseSensitive(t *testing.T) {
	teardown := setupTributeTestDB(t)
	defer teardown()

	require.NoError(t, InsertTribute(newTestTribute("Jane Doe")))

	_, err := GetLatestTributeByName("jane doe")
	assert.ErrorIs(t, err, ErrTributeNotFound)
}

func TestGetAllTributesNewestFirst(t *testing.T) {
	teardown := setupTributeTestDB(t)
	defer teardown()

	var ids []int64
	for _, name := range []string{"A A", "B B", "C C"} {
		tribute := newTestTribute(name)
		require.NoError(t, InsertTribute(tribute))
		ids = append(ids, tribute.ID)
	}

	tributes, err := GetAllTributes()
	require.NoError(t, err)
	require.Len(t, tributes, 3)
	assert.Equal(t, ids[2], tributes[0].ID)
	assert.Equal(t, ids[1], tributes[1].ID)
	assert.Equal(t, ids[0], tributes[2].ID)
}

func TestGetAllTributesReturnsEveryRecord(t *testing.T) {
	teardown := setupTributeTestDB(t)
	defer teardown()

	const total = 1001
	for i := 0; i < total; i++ {
		require.NoError(t, InsertTribute(newTestTribute(fmt.Sprintf("Person %04d", i))))
	}

	tributes, err := GetAllTributes()
	require.NoError(t, err)
	assert.Len(t, tributes, total)
}

func TestTributeUpdateAndDelete(t *testing.T) {
	teardown := setupTributeTestDB(t)
	defer teardown()

	tribute := newTestTribute("Jane Doe")
	require.NoError(t, InsertTribute(tribute))

	tribute.PreviewImage = "uploads/previews/image-1.png"
	require.NoError(t, tribute.Update())

	found, err := GetTributeById(tribute.ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/previews/image-1.png", found.PreviewImage)

	require.NoError(t, found.Delete())
	_, err = GetTributeById(tribute.ID)
	assert.ErrorIs(t, err, ErrTributeNotFound)
}

func TestTributeMarshalJSON(t *testing.T) {
	teardown := setupTributeTestDB(t)
	defer teardown()

	tribute := newTestTribute("Jane Doe")
	require.NoError(t, InsertTribute(tribute))

	data, err := json.Marshal(tribute)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Jane Doe", decoded["fullName"])
	assert.Nil(t, decoded["memoryImage"])
	assert.Nil(t, decoded["previewImage"])
	assert.NotEmpty(t, decoded["createdAt"])

	tribute.MemoryImage = "uploads/memories/image-1.png"
	data, err = json.Marshal(tribute)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "uploads/memories/image-1.png", decoded["memoryImage"])
}
