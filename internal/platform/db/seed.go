package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"lms/internal/auth"
	"lms/internal/domain/identity"
	"lms/internal/platform/config"
)

// Seed provisions the configured head-of-department account so a fresh
// deployment has a final approver before anyone signs up.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedHODEmail == "" || cfg.SeedHODPassword == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM accounts WHERE email = $1", cfg.SeedHODEmail).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedHODPassword)
	if err != nil {
		return err
	}

	name := cfg.SeedHODName
	if name == "" {
		name = "Head of Department"
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO accounts (id, name, email, password_hash, department, role, section, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,'',$7)
  `, uuid.NewString(), name, cfg.SeedHODEmail, hash, cfg.SeedHODDepartment, identity.RoleHOD, time.Now().UTC())
	return err
}
