package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"chat-app/session-service/internal/domain"
	"chat-app/session-service/internal/repository/user/migrations"
	_ "github.com/glebarez/sqlite" // SQLite driver
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	"github.com/pressly/goose/v3"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

const userColumns = `id, username, email, age, password_hash, created_at, updated_at`

// SQLUserRepository serves both SQLite and Postgres; queries are written
// with ? placeholders and rebound per dialect.
type SQLUserRepository struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func NewSQLUserRepository(db *sql.DB, dialect Dialect) *SQLUserRepository {
	return &SQLUserRepository{db: db, dialect: dialect, now: time.Now}
}

func NewSQLiteUserRepository(ctx context.Context, dbFilePath string) (*SQLUserRepository, error) {
	db, err := sql.Open("sqlite", dbFilePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	return open(ctx, db, SQLite)
}

func NewPostgresUserRepository(ctx context.Context, dsn string) (*SQLUserRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	return open(ctx, db, Postgres)
}

func open(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLUserRepository, error) {
	r := NewSQLUserRepository(db, dialect)
	if err := r.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLUserRepository) Migrate(ctx context.Context) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(string(r.dialect)); err != nil {
		return fmt.Errorf("migration dialect: %w", err)
	}
	dir := "postgres"
	if r.dialect == SQLite {
		dir = "sqlite"
	}
	if err := goose.UpContext(ctx, r.db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (r *SQLUserRepository) Close() error {
	return r.db.Close()
}

func (r *SQLUserRepository) rebind(query string) string {
	if r.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	u := &domain.User{}
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &u.Age, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *SQLUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (r *SQLUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := r.rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *SQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	now := r.now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	query := r.rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.Age, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *SQLUserRepository) Update(ctx context.Context, id string, fields domain.UserUpdate) (*domain.User, error) {
	query := r.rebind(`UPDATE users
		SET username = COALESCE(?, username), email = COALESCE(?, email), age = COALESCE(?, age), updated_at = ?
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, fields.Username, fields.Email, fields.Age, r.now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := expectRow(res, id); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *SQLUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectRow(res, id)
}

func expectRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}
