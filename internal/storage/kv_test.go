package storage_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"carshop/internal/storage"
)

func memKV(t *testing.T) *storage.KV {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(storage.Schema)
	require.NoError(t, err)
	return storage.NewKV(db)
}

func TestKVSetGetRemove(t *testing.T) {
	kv := memKV(t)

	_, ok, err := kv.Get("cart:a")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Set("cart:a", "[]"))
	require.NoError(t, kv.Set("cart:a", `[1]`))
	v, ok, err := kv.Get("cart:a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[1]", v)

	require.NoError(t, kv.Remove("cart:a"))
	_, ok, err = kv.Get("cart:a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKVJSONRoundTripAndCorruption(t *testing.T) {
	kv := memKV(t)
	type item struct {
		ID  string `json:"id"`
		Qty int    `json:"qty"`
	}
	in := []item{{"1", 1}, {"7", 2}}
	require.NoError(t, kv.SetJSON("k", in))

	var out []item
	ok, err := kv.GetJSON("k", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, out)

	require.NoError(t, kv.Set("k", "{not json"))
	ok, err = kv.GetJSON("k", &out)
	require.True(t, ok)
	var ce *storage.CorruptError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "k", ce.Key)
}
