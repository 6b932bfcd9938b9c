package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/funcsearch/pkg/types"
)

var (
	// ErrNotFound is returned when a requested snapshot doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

var _ Storage = (*SQLiteStorage)(nil)

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage opens (or creates) the snapshot database at dbPath
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// SaveCorpus writes the snapshot row and every document in one transaction
func (s *SQLiteStorage) SaveCorpus(ctx context.Context, root string, corpus *types.Corpus, stats ScanStats) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id, err = insertSnapshot(ctx, tx, root, corpus.Len(), stats)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (snapshot_id, position, file_path, function_name, package_name,
		                       receiver, docstring, signature, search_text, line_number, end_line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare document insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < corpus.Len(); i++ {
		doc := corpus.At(i)
		_, err = stmt.ExecContext(ctx, id, i,
			doc.FilePath, doc.FunctionName, doc.Package,
			doc.Receiver, doc.Docstring, doc.Signature, doc.SearchText,
			doc.LineNumber, doc.EndLine)
		if err != nil {
			return 0, fmt.Errorf("failed to insert document %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return id, nil
}

// insertSnapshot records snapshot metadata and returns the new ID
func insertSnapshot(ctx context.Context, q querier, root string, documents int, stats ScanStats) (int64, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO snapshots (root_path, document_count, files_scanned, files_failed, scan_duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, root, documents, stats.FilesScanned, stats.FilesFailed, stats.Duration.Milliseconds(), time.Now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to create snapshot: %w", err)
	}

	return result.LastInsertId()
}

// LoadCorpus returns the documents of a snapshot ordered by position
func (s *SQLiteStorage) LoadCorpus(ctx context.Context, snapshotID int64) (*types.Corpus, error) {
	snapshot, err := s.GetSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT file_path, function_name, package_name, receiver, docstring,
		       signature, search_text, line_number, end_line
		FROM documents
		WHERE snapshot_id = ?
		ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]types.Document, 0, snapshot.Documents)
	for rows.Next() {
		var doc types.Document
		if err := rows.Scan(
			&doc.FilePath, &doc.FunctionName, &doc.Package, &doc.Receiver, &doc.Docstring,
			&doc.Signature, &doc.SearchText, &doc.LineNumber, &doc.EndLine,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(docs) != snapshot.Documents {
		return nil, fmt.Errorf("snapshot %d is incomplete: expected %d documents, found %d",
			snapshotID, snapshot.Documents, len(docs))
	}

	return types.NewCorpus(docs), nil
}

const snapshotColumns = `id, root_path, document_count, files_scanned, files_failed, scan_duration_ms, created_at`

// scanner is implemented by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var snapshot Snapshot
	var durationMs, createdAt int64
	err := row.Scan(
		&snapshot.ID, &snapshot.RootPath, &snapshot.Documents,
		&snapshot.FilesScanned, &snapshot.FilesFailed, &durationMs, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	snapshot.ScanDuration = time.Duration(durationMs) * time.Millisecond
	snapshot.CreatedAt = time.Unix(0, createdAt)
	return &snapshot, nil
}

// GetSnapshot retrieves snapshot metadata by ID
func (s *SQLiteStorage) GetSnapshot(ctx context.Context, snapshotID int64) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+snapshotColumns+" FROM snapshots WHERE id = ?", snapshotID)
	snapshot, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %d: %w", snapshotID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// LatestSnapshot returns the most recently saved snapshot, limited to root when it is not empty
func (s *SQLiteStorage) LatestSnapshot(ctx context.Context, root string) (*Snapshot, error) {
	query := "SELECT " + snapshotColumns + " FROM snapshots"
	args := []interface{}{}
	if root != "" {
		query += " WHERE root_path = ?"
		args = append(args, root)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT 1"

	snapshot, err := scanSnapshot(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no snapshot: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ListSnapshots returns all snapshots, newest first
func (s *SQLiteStorage) ListSnapshots(ctx context.Context) ([]*Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+snapshotColumns+" FROM snapshots ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// DeleteSnapshot removes a snapshot and its documents
func (s *SQLiteStorage) DeleteSnapshot(ctx context.Context, snapshotID int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", snapshotID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("snapshot %d: %w", snapshotID, ErrNotFound)
	}
	return nil
}
