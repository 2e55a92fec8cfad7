package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lms/internal/auth"
	"lms/internal/domain/notify"
)

type Service struct {
	store   StoreAPI
	notices *notify.Bus
}

func NewService(store StoreAPI, notices *notify.Bus) *Service {
	return &Service{store: store, notices: notices}
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	Role       Role
	Section    string
}

// Register creates an account. Enum membership is checked at the
// transport boundary; the service enforces required fields and email
// uniqueness.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Account, error) {
	required := []struct{ field, value string }{
		{"name", input.Name},
		{"email", input.Email},
		{"password", input.Password},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			s.notices.Emit(notify.KindError, "Please fill in all fields!")
			return Account{}, fmt.Errorf("%w: %s", ErrValidation, item.field)
		}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		s.notices.Emit(notify.KindError, "Signup failed")
		return Account{}, err
	}

	account := Account{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Department:   input.Department,
		Role:         input.Role,
		Section:      input.Section,
		CreatedAt:    time.Now().UTC(),
	}
	// Heads of department are scoped to the whole department.
	if account.Role == RoleHOD {
		account.Section = ""
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		if err == ErrDuplicateEmail {
			s.notices.Emit(notify.KindError, "Email already registered!")
		} else {
			s.notices.Emit(notify.KindError, "Signup failed")
		}
		return Account{}, err
	}

	s.notices.Emit(notify.KindSuccess, "Signup successful! Please login.")
	return account, nil
}

// Authenticate verifies the email/password pair. Lookup misses and
// password mismatches are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		s.notices.Emit(notify.KindError, "Please enter email and password!")
		return Account{}, fmt.Errorf("%w: credentials", ErrValidation)
	}

	account, err := s.store.AccountByEmail(ctx, email)
	if err != nil {
		s.notices.Emit(notify.KindError, "Invalid credentials!")
		if err == ErrNotFound {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}

	if err := auth.CheckPassword(account.PasswordHash, password); err != nil {
		s.notices.Emit(notify.KindError, "Invalid credentials!")
		return Account{}, ErrInvalidCredentials
	}
	return account, nil
}

// AccountByID loads a stored account, used by transports that only
// carry the account id.
func (s *Service) AccountByID(ctx context.Context, id string) (Account, error) {
	return s.store.AccountByID(ctx, id)
}
