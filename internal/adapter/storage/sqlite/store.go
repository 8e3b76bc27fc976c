package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"

	"github.com/bnema/reelvault/internal/domain"
	"github.com/bnema/reelvault/internal/port"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
				"PRAGMA foreign_keys = ON",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

func NewStore(dataDir string) (*Store, error) {
	registerHook()

	dbPath := filepath.Join(dataDir, "reelvault.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection for SQLite (WAL allows concurrent reads but only one writer)
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Users

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, updated_at, email, hashed_password)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID.String(), u.CreatedAt, u.UpdatedAt, u.Email, u.HashedPassword,
	)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, email, hashed_password
		FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, email, hashed_password
		FROM users WHERE id = ?`, id.String())
	return scanUser(row)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var id string
	err := row.Scan(&id, &u.CreatedAt, &u.UpdatedAt, &u.Email, &u.HashedPassword)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	return &u, nil
}

// Videos

func (s *Store) Create(ctx context.Context, v *domain.Video) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO videos (id, created_at, updated_at, user_id, title, description, thumbnail_url, video_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID.String(), v.CreatedAt, v.UpdatedAt, v.UserID.String(),
		v.Title, v.Description, v.ThumbnailURL, v.VideoURL,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, user_id, title, description, thumbnail_url, video_url
		FROM videos WHERE id = ?`, id.String())

	v, err := scanVideo(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return v, err
}

func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, updated_at, user_id, title, description, thumbnail_url, video_url
		FROM videos WHERE user_id = ? ORDER BY created_at DESC`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []*domain.Video{}
	for rows.Next() {
		v, err := scanVideo(rows.Scan)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (s *Store) Update(ctx context.Context, v *domain.Video) error {
	v.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE videos SET updated_at = ?, title = ?, description = ?, thumbnail_url = ?, video_url = ?
		WHERE id = ?`,
		v.UpdatedAt, v.Title, v.Description, v.ThumbnailURL, v.VideoURL, v.ID.String(),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanVideo(scan func(dest ...any) error) (*domain.Video, error) {
	var v domain.Video
	var id, userID string
	err := scan(&id, &v.CreatedAt, &v.UpdatedAt, &userID,
		&v.Title, &v.Description, &v.ThumbnailURL, &v.VideoURL)
	if err != nil {
		return nil, err
	}
	if v.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse video id: %w", err)
	}
	if v.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse video user id: %w", err)
	}
	return &v, nil
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

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite reports SQLITE_CONSTRAINT_UNIQUE as error code 2067
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == 2067
	}
	return false
}

var _ port.VideoStore = (*Store)(nil)
var _ port.UserStore = (*Store)(nil)
