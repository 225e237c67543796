package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := b.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "healthcare_users", []byte(`[{"id":"u1"}]`)))
	v, ok, err := b.Get(ctx, "healthcare_users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(v))

	require.NoError(t, b.Set(ctx, "healthcare_users", []byte(`[]`)))
	v, _, err = b.Get(ctx, "healthcare_users")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(v))

	require.NoError(t, b.Remove(ctx, "healthcare_users"))
	require.NoError(t, b.Remove(ctx, "healthcare_users"))
	_, ok, err = b.Get(ctx, "healthcare_users")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", []byte("abc")))

	v, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	v[0] = 'z'

	again, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFileBackend(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "nested", "store.json"))
	require.NoError(t, err)
	exerciseBackend(t, f)
}

func TestFileBackendPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "current_user_id", []byte("user-1")))

	second, err := NewFile(path)
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, "current_user_id")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "user-1", string(v))
}

func TestFileBackendCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	f, err := NewFile(path)
	require.NoError(t, err)
	_, _, err = f.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewFileRequiresPath(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, &internal.Config{StoreDriver: DriverMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	b, err = Open(ctx, &internal.Config{StoreDriver: DriverFile, StorePath: filepath.Join(t.TempDir(), "s.json")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &File{}, b)

	_, err = Open(ctx, &internal.Config{StoreDriver: "floppy"}, nil)
	assert.Error(t, err)

	_, err = Open(ctx, &internal.Config{StoreDriver: DriverPostgres}, nil)
	assert.Error(t, err)

	_, err = Open(ctx, &internal.Config{StoreDriver: DriverMongo}, nil)
	assert.Error(t, err)
}

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	b, err := Instrument(NewMemory(), reg)
	require.NoError(t, err)
	exerciseBackend(t, b)

	ops, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, ops)

	// a second wrap on the same registry reuses the collectors
	again, err := Instrument(NewMemory(), reg)
	require.NoError(t, err)
	require.NoError(t, again.Set(ctx, "k", []byte("v")))

	counter := b.(*instrumented).ops.WithLabelValues("set", "ok")
	assert.Equal(t, float64(3), testutil.ToFloat64(counter))
}
