package adapter

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ai-quiz/internal/domain"

	"github.com/jmoiron/sqlx"
)

// SQLiteBlobAdapter implements domain.BlobStore on the blobs table.
type SQLiteBlobAdapter struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLiteBlobAdapter expects a database migrated by database.Migrate.
func NewSQLiteBlobAdapter(db *sqlx.DB) domain.BlobStore {
	return &SQLiteBlobAdapter{db: db, now: time.Now}
}

func (s *SQLiteBlobAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM blobs WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *SQLiteBlobAdapter) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UnixMilli())
	return err
}

func (s *SQLiteBlobAdapter) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key)
	return err
}

func (s *SQLiteBlobAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var _ domain.BlobStore = (*SQLiteBlobAdapter)(nil)
