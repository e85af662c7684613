package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agsavn/foodwatch/internal/common"
	"github.com/agsavn/foodwatch/internal/dbx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresStore implements Store over a real database for deployments that
// outgrow the demo kv store. The unique index on lower(email) makes the
// duplicate-email check atomic instead of check-then-insert.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, name, email, password_hash, role, status, created_at, last_login`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	u := &User{}
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt, &lastLogin)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("PostgresStore.List: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresStore.List: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresStore.List: %w", err)
	}
	return users, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("PostgresStore.FindByEmail: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("PostgresStore.FindByID: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) Create(ctx context.Context, u *User) (*User, error) {
	created := *u
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, status, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		created.ID, created.Name, created.Email, created.PasswordHash,
		created.Role, created.Status, created.CreatedAt, created.LastLogin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("PostgresStore.Create: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, upd Update) (*User, error) {
	var updated *User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)

		u, err := scanUser(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrNotFound
			}
			return fmt.Errorf("select for update: %w", err)
		}

		applyUpdate(u, upd)

		_, err = tx.ExecContext(ctx, `
			UPDATE users
			SET name = $2, email = $3, password_hash = $4, role = $5, status = $6, last_login = $7
			WHERE id = $1`,
			id, u.Name, u.Email, u.PasswordHash, u.Role, u.Status, u.LastLogin,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return common.ErrDuplicateEmail
			}
			return fmt.Errorf("update: %w", err)
		}

		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("PostgresStore.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("PostgresStore.Delete: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
