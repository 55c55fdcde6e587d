package dao

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

// StoreSpec describes where persisted grid state lives.
type StoreSpec struct {
	Backend  string
	Path     string
	Addr     string
	Password string
	DB       int
	Bucket   string
	Prefix   string
}

// NewStore opens the store described by spec.
func NewStore(f Factory, spec StoreSpec) (Store, error) {
	switch spec.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(spec.Path)
	case BackendSQLite:
		return NewSQLiteStore(spec.Path)
	case BackendRedis:
		return NewRedisStore(spec.Addr, spec.Password, spec.DB, spec.Prefix), nil
	case BackendS3:
		return NewS3Store(f, spec.Bucket, spec.Prefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, spec.Backend)
	}
}

// CloseStore releases a store when it holds resources.
func CloseStore(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	data map[string]string
	mx   sync.RWMutex
}

// NewMemoryStore returns an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value of a key.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores a value.
func (m *MemoryStore) Set(key, value string) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	m.data[key] = value
	return nil
}

// FileStore keeps values in a yaml document on disk.
type FileStore struct {
	path string
	mx   sync.Mutex
}

// NewFileStore returns a store backed by the given file.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store requires a path")
	}
	return &FileStore{path: path}, nil
}

// Path returns the store file.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the value of a key.
func (f *FileStore) Get(key string) (string, bool, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	data, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set stores a value and rewrites the file.
func (f *FileStore) Set(key, value string) error {
	f.mx.Lock()
	defer f.mx.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	data[key] = value
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write store: %w", err)
	}

	return os.Rename(tmp, f.path)
}

func (f *FileStore) load() (map[string]string, error) {
	data := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", f.path, err)
	}
	if data == nil {
		data = make(map[string]string)
	}

	return data, nil
}
