package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"

	"github.com/storedesk/storedesk-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "storedesk.db"

// foldFunc lowercases with Unicode rules. SQLite's own lower() and LIKE
// only fold ASCII, so searches wrap columns in it to match the in-memory
// store.
const foldFunc = "storedesk_fold"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, fold)
}

func fold(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.storedesk/data/storedesk.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".storedesk", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordStore returns a RecordStore interface backed by this store.
func (s *Store) RecordStore() driven.RecordStore {
	return &recordStore{store: s}
}

// Cache returns a Cache interface backed by this store.
func (s *Store) Cache() driven.Cache {
	return &cache{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Record Store ====================

// recordStore implements driven.RecordStore.
type recordStore struct {
	store *Store
}

var _ driven.RecordStore = (*recordStore)(nil)

const recordColumns = "kind, id, fields, created_at, updated_at"

// Save stores or updates a record.
func (s *recordStore) Save(ctx context.Context, record domain.Record) error {
	fields := record.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO records (kind, id, name, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET
			name = excluded.name,
			fields = excluded.fields,
			updated_at = excluded.updated_at
	`, string(record.Kind), record.ID, record.Name(), string(fieldsJSON),
		record.CreatedAt, record.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	return nil
}

// Get retrieves a record by kind and ID.
func (s *recordStore) Get(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE kind = ? AND id = ?",
		string(kind), id)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// Delete removes a record.
func (s *recordStore) Delete(ctx context.Context, kind domain.Kind, id string) error {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM records WHERE kind = ? AND id = ?", string(kind), id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all records of a kind ordered by name.
func (s *recordStore) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE kind = ? ORDER BY name COLLATE NOCASE, id",
		string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	return scanRecordRows(rows)
}

// Search returns one page of records whose search fields contain the term.
// Matching is a case-insensitive substring test done by SQLite LIKE over
// the Unicode-folded JSON fields. With no search fields every field value
// is tested.
func (s *recordStore) Search(ctx context.Context, req domain.PageRequest) ([]domain.Record, error) {
	query := "SELECT " + recordColumns + " FROM records WHERE kind = ?"
	args := []any{string(req.Kind)}

	if search := strings.TrimSpace(req.Search); search != "" {
		clause, clauseArgs := searchClause(req.SearchFields, search)
		query += " AND " + clause
		args = append(args, clauseArgs...)
	}

	query += " ORDER BY name COLLATE NOCASE, id"
	if req.PageSize > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, req.PageSize, req.Offset())
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	defer rows.Close()

	return scanRecordRows(rows)
}

// searchClause builds the OR-ed LIKE filter for a search term.
func searchClause(fields []string, search string) (string, []any) {
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"

	if len(fields) == 0 {
		return `(` + foldFunc + `(id) LIKE ? ESCAPE '\' OR EXISTS (
			SELECT 1 FROM json_each(records.fields)
			WHERE ` + foldFunc + `(CAST(value AS TEXT)) LIKE ? ESCAPE '\'
		))`, []any{pattern, pattern}
	}

	parts := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, field := range fields {
		if field == domain.FieldID {
			parts = append(parts, foldFunc+"(id) LIKE ? ESCAPE '\\'")
			args = append(args, pattern)
			continue
		}
		parts = append(parts, foldFunc+"(CAST(json_extract(fields, ?) AS TEXT)) LIKE ? ESCAPE '\\'")
		args = append(args, jsonPath(field), pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// jsonPath quotes a field name as a JSON1 path.
func jsonPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, `\"`) + `"`
}

// escapeLike escapes LIKE wildcards so the term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(s)
}

// ==================== Cache ====================

// cache implements driven.Cache over the kv_cache table.
type cache struct {
	store *Store
}

var _ driven.Cache = (*cache)(nil)

// Get returns the value stored under key.
func (c *cache) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.store.db.QueryRowContext(ctx, "SELECT value FROM kv_cache WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading cache: %w", err)
	}
	return value, true, nil
}

// Set stores value under key.
func (c *cache) Set(ctx context.Context, key, value string) error {
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO kv_cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Delete removes key.
func (c *cache) Delete(ctx context.Context, key string) error {
	if _, err := c.store.db.ExecContext(ctx, "DELETE FROM kv_cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting cache key: %w", err)
	}
	return nil
}

// Clear removes every key with the given prefix.
func (c *cache) Clear(ctx context.Context, prefix string) error {
	_, err := c.store.db.ExecContext(ctx,
		"DELETE FROM kv_cache WHERE substr(key, 1, ?) = ?", len(prefix), prefix)
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// ==================== Helpers ====================

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var record domain.Record
	var kind, fieldsJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&kind, &record.ID, &fieldsJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	record.Kind = domain.Kind(kind)
	if err := json.Unmarshal([]byte(fieldsJSON), &record.Fields); err != nil {
		return nil, fmt.Errorf("unmarshaling fields: %w", err)
	}
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		record.UpdatedAt = updatedAt.Time
	}
	return &record, nil
}

func scanRecordRows(rows *sql.Rows) ([]domain.Record, error) {
	records := make([]domain.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}
