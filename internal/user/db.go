package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agsavn/foodwatch/internal/user/migrations"
	"github.com/pressly/goose/v3"
)

// RunPostgresMigrations brings the users schema up to date.
func RunPostgresMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}
