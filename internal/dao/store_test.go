package dao

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a1s/gridview/internal/model1"
)

func assertStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", `[{"id":"q"}]`))
	require.NoError(t, s.Set("k", `[]`))
	require.NoError(t, s.Set("other", "v"))

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestMemoryStore(t *testing.T) {
	assertStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "store.yaml")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	assertStore(t, s)

	again, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := again.Get("other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	assertStore(t, s)
	require.NoError(t, s.Close())

	again, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer again.Close()
	v, ok, err := again.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	uu := map[string]struct {
		spec StoreSpec
		err  bool
	}{
		"default": {},
		"memory":  {spec: StoreSpec{Backend: BackendMemory}},
		"file":    {spec: StoreSpec{Backend: BackendFile, Path: filepath.Join(dir, "s.yaml")}},
		"sqlite":  {spec: StoreSpec{Backend: BackendSQLite, Path: filepath.Join(dir, "s.db")}},
		"redis":   {spec: StoreSpec{Backend: BackendRedis, Addr: "localhost:6379"}},
		"file-no-path": {
			spec: StoreSpec{Backend: BackendFile},
			err:  true,
		},
		"s3-no-bucket": {
			spec: StoreSpec{Backend: BackendS3},
			err:  true,
		},
		"bogus": {
			spec: StoreSpec{Backend: "etcd"},
			err:  true,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			s, err := NewStore(nil, u.spec)
			if u.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, CloseStore(s))
		})
	}
}

func TestRowCache(t *testing.T) {
	c := NewRowCache(time.Minute)
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", model1.Rows{{"id": "1"}})
	rows, ok := c.Get("a")
	assert.True(t, ok)
	assert.Len(t, rows, 1)

	c.Invalidate("a")
	_, ok = c.Get("a")
	assert.False(t, ok)

	c.Set("b", nil)
	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)

	expired := NewRowCache(0)
	expired.Set("a", model1.Rows{})
	time.Sleep(time.Millisecond)
	_, ok = expired.Get("a")
	assert.False(t, ok)
}
