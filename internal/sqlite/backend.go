package sqlite

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

// DBFileName is the database file created inside Config.DataDir.
const DBFileName = "parlor.db"

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on a single SQLite database file.
// One connection is held for the lifetime of an attachment; every mutating
// operation runs in its own IMMEDIATE transaction on it.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *sqlx.DB
	logger   *zap.Logger
}

// NewBackend creates a new SQLite backend instance. A nil logger discards
// all log output. The backend is not attached; call Attach to initialize.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{logger: logger.Named("sqlite")}
}

// Attach opens (or creates) DataDir/parlor.db and creates any missing
// tables. Existing data is kept. Returns ErrAlreadyAttached if already
// attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath, err := filepath.Abs(filepath.Join(dataDir, DBFileName))
	if err != nil {
		return fmt.Errorf("resolving database path: %w", err)
	}
	db, err := sqlx.Open(driverName, dsn(dbPath))
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// A single connection keeps PRAGMAs and the write lock on one session.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.attached = true

	b.logger.Debug("attached", zap.String("path", dbPath))
	return nil
}

// Detach closes the database. Idempotent. After Detach all operations
// return ErrStoreDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}
	b.attached = false

	b.logger.Debug("detached")
	return nil
}

// dsn builds a modernc.org/sqlite URI with foreign keys on, a busy
// timeout, and IMMEDIATE transactions so the write lock is taken before any
// stock check runs. path must be absolute; characters such as '?' and '#'
// in it are percent-escaped.
func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_txlock", "immediate")
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: q.Encode()}
	return u.String()
}

// createSchema runs the table and index DDL in one transaction.
func createSchema(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaDDL {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}
	return nil
}

// withTx runs fn inside one transaction. The transaction is rolled back on
// every path that does not reach Commit, so a failed operation leaves the
// database exactly as it found it.
func (b *Backend) withTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		b.logRollback(op, err)
		return err
	}

	if err := tx.Commit(); err != nil {
		b.logRollback(op, err)
		return fmt.Errorf("committing %s: %w", op, err)
	}

	b.logger.Debug("committed", zap.String("op", op))
	return nil
}

// view runs a read-only fn against the attached database.
func (b *Backend) view(fn func(db *sqlx.DB) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	return fn(b.db)
}

// logRollback logs expected domain failures at debug and everything else
// at warn.
func (b *Backend) logRollback(op string, err error) {
	if isDomainError(err) {
		b.logger.Debug("rolled back", zap.String("op", op), zap.Error(err))
		return
	}
	b.logger.Warn("rolled back", zap.String("op", op), zap.Error(err))
}

func isDomainError(err error) bool {
	for _, target := range []error{
		types.ErrNotFound,
		types.ErrDuplicateName,
		types.ErrAlreadyLinked,
		types.ErrInsufficientStock,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// newID generates a UUID v7 string.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}

// now returns the timestamp stored in created_at columns.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return t, nil
}
