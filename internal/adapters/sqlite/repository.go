package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
)

type Repository struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	source_kind TEXT NOT NULL,
	pair_count  INTEGER NOT NULL,
	outcome     TEXT NOT NULL,
	message     TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
)`

// New opens the SQLite database and ensures the attempts table exists.
// The schema is a single append-only table, so it is managed inline rather
// than through a migration tool.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// ── Attempts ──────────────────────────────────────────────────────────────────

func (r *Repository) RecordAttempt(ctx context.Context, a *domain.AttemptRecord) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO attempts (description, source_kind, pair_count, outcome, message, created_at)
		VALUES (?,?,?,?,?,?)`,
		a.Description, a.SourceKind, a.PairCount, a.Outcome, a.Message, a.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	a.ID = id
	return nil
}

func (r *Repository) RecentAttempts(ctx context.Context, limit int) ([]domain.AttemptRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, source_kind, pair_count, outcome, message, created_at
		FROM attempts ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.AttemptRecord
	for rows.Next() {
		var a domain.AttemptRecord
		if err := rows.Scan(&a.ID, &a.Description, &a.SourceKind, &a.PairCount, &a.Outcome, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
