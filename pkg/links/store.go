package links

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/pkg/constants"
	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/logging"
)

// Store loads and saves the link table as a whole.
type Store interface {
	// Load returns the current table. On failure it still returns a usable
	// empty table together with the error.
	Load(ctx context.Context) (*Table, error)

	// Save replaces the durable table with t.
	Save(ctx context.Context, t *Table) error
}

// Compile-time interface checks.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// FileStore keeps the table in a single indented JSON file.
type FileStore struct {
	path   string
	logger *zerolog.Logger
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithLogger sets the logger used when no logger is carried by the context.
func WithLogger(logger *zerolog.Logger) FileOption {
	return func(s *FileStore) {
		s.logger = logger
	}
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the table. A missing file is created empty. An unreadable or
// unparsable file yields an empty table; a file that fails to parse is moved
// aside so the next save cannot overwrite it.
func (s *FileStore) Load(ctx context.Context) (*Table, error) {
	logger := s.log(ctx)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		table := NewTable()
		if err := s.Save(ctx, table); err != nil {
			return table, err
		}
		logger.Info().Str("path", s.path).Msg("Created empty link table")
		return table, nil
	}
	if err != nil {
		perr := errors.NewPersistenceError("read", s.path, err)
		logger.Error().Err(perr).Msg("Failed to read link table, using an empty table")
		return NewTable(), perr
	}

	table := NewTable()
	if err := json.Unmarshal(data, table); err != nil {
		perr := errors.NewPersistenceError("parse", s.path, err)
		event := logger.Error().Err(perr)
		if quarantined, qerr := s.quarantine(); qerr != nil {
			event = event.AnErr("quarantine_error", qerr)
		} else {
			event = event.Str("moved_to", quarantined)
		}
		event.Msg("Failed to parse link table, using an empty table")
		return NewTable(), perr
	}
	if table.LinkedUsers == nil {
		table.LinkedUsers = make(map[string]string)
	}
	return table, nil
}

// Save writes t to a temporary file next to the table and renames it over
// the old one, so a failed write leaves the previous table in place.
func (s *FileStore) Save(ctx context.Context, t *Table) error {
	if t == nil {
		t = NewTable()
	}
	if err := s.write(t); err != nil {
		perr := errors.NewPersistenceError("write", s.path, err)
		s.log(ctx).Error().Err(perr).Msg("Failed to save link table")
		return perr
	}
	return nil
}

func (s *FileStore) write(t *Table) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

// quarantine moves a damaged table file aside and returns its new path.
func (s *FileStore) quarantine() (string, error) {
	target := s.path + constants.CorruptSuffix
	if err := os.Rename(s.path, target); err != nil {
		return "", err
	}
	return target, nil
}

func (s *FileStore) log(ctx context.Context) *zerolog.Logger {
	if s.logger != nil && logging.FromContext(ctx) == logging.Default() {
		return s.logger
	}
	return logging.FromContext(ctx)
}

// MemoryStore keeps the table in memory. It is used by tests and dry runs.
type MemoryStore struct {
	mu    sync.Mutex
	table *Table
	saves int
}

// NewMemoryStore returns a store seeded with initial links.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	t := NewTable()
	for k, v := range initial {
		t.Set(k, v)
	}
	return &MemoryStore{table: t}
}

// Load returns a copy of the stored table.
func (m *MemoryStore) Load(_ context.Context) (*Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Clone(), nil
}

// Save replaces the stored table with a copy of t.
func (m *MemoryStore) Save(_ context.Context, t *Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = t.Clone()
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Snapshot returns a copy of the stored links.
func (m *MemoryStore) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Clone().LinkedUsers
}
