// Package postgres provides a Postgres-backed metadata store, selected with
// DB_DRIVER=postgres for deployments that outgrow the embedded SQLite file.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bnema/reelvault/internal/domain"
	"github.com/bnema/reelvault/internal/port"
)

type Store struct {
	db *sql.DB
}

func NewStore(connString string) (*Store, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			email TEXT NOT NULL UNIQUE,
			hashed_password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS videos (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			thumbnail_url TEXT,
			video_url TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_user_id ON videos(user_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Users

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, updated_at, email, hashed_password)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.CreatedAt, u.UpdatedAt, u.Email, u.HashedPassword,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrAlreadyExists
	}
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, email, hashed_password
		FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, email, hashed_password
		FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Email, &u.HashedPassword)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Videos

func (s *Store) Create(ctx context.Context, v *domain.Video) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO videos (id, created_at, updated_at, user_id, title, description, thumbnail_url, video_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.CreatedAt, v.UpdatedAt, v.UserID, v.Title, v.Description, v.ThumbnailURL, v.VideoURL,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, user_id, title, description, thumbnail_url, video_url
		FROM videos WHERE id = $1`, id)

	var v domain.Video
	err := row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.UserID,
		&v.Title, &v.Description, &v.ThumbnailURL, &v.VideoURL)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, updated_at, user_id, title, description, thumbnail_url, video_url
		FROM videos WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []*domain.Video{}
	for rows.Next() {
		var v domain.Video
		if err := rows.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.UserID,
			&v.Title, &v.Description, &v.ThumbnailURL, &v.VideoURL); err != nil {
			return nil, err
		}
		videos = append(videos, &v)
	}
	return videos, rows.Err()
}

func (s *Store) Update(ctx context.Context, v *domain.Video) error {
	v.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE videos SET updated_at = $1, title = $2, description = $3, thumbnail_url = $4, video_url = $5
		WHERE id = $6`,
		v.UpdatedAt, v.Title, v.Description, v.ThumbnailURL, v.VideoURL, v.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ port.VideoStore = (*Store)(nil)
var _ port.UserStore = (*Store)(nil)
