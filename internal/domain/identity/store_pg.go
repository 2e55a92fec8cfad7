package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) CreateAccount(ctx context.Context, account Account) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO accounts (id, name, email, password_hash, department, role, section, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, account.ID, account.Name, account.Email, account.PasswordHash, account.Department, account.Role, account.Section, account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *PGStore) AccountByEmail(ctx context.Context, email string) (Account, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT id, name, email, password_hash, department, role, section, created_at
    FROM accounts
    WHERE email = $1
  `, email))
}

func (s *PGStore) AccountByID(ctx context.Context, id string) (Account, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT id, name, email, password_hash, department, role, section, created_at
    FROM accounts
    WHERE id = $1
  `, id))
}

func (s *PGStore) scanOne(row pgx.Row) (Account, error) {
	var out Account
	err := row.Scan(&out.ID, &out.Name, &out.Email, &out.PasswordHash, &out.Department, &out.Role, &out.Section, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return out, nil
}
