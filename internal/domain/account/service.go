package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carebridge/portal/internal/platform/password"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrTermsNotAccepted   = errors.New("terms must be accepted")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 8

type Service struct {
	repo   Repository
	tx     TxRunner
	hasher *password.Hasher
}

func NewService(repo Repository, tx TxRunner, hasher *password.Hasher) *Service {
	return &Service{repo: repo, tx: tx, hasher: hasher}
}

// SignUp creates an account and, when a staged intake row exists for the
// email, provisions the profile and emergency profile from it. The insert,
// both seeds and the intake delete run in one transaction: either the
// account comes up fully provisioned or not at all.
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*Identity, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}
	if !req.AcceptedTerms {
		return nil, ErrTermsNotAccepted
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	p := &Patient{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertPatient(ctx, p); err != nil {
			return err
		}

		staged, err := s.repo.GetStagedIntake(ctx, email)
		if errors.Is(err, pgx.ErrNoRows) {
			// Self-registered patient with no staff intake on file.
			return nil
		}
		if err != nil {
			return err
		}

		first, last := SplitFullName(staged.FullName)
		if err := s.repo.SeedProfile(ctx, p.ID, first, last, staged); err != nil {
			return err
		}
		if err := s.repo.SeedEmergencyProfile(ctx, p.ID, staged); err != nil {
			return err
		}
		return s.repo.DeleteStagedIntake(ctx, email)
	})
	if err != nil {
		return nil, err
	}

	return &Identity{ID: p.ID, Email: p.Email}, nil
}

// SignIn verifies email+password. Unknown email and wrong password are
// indistinguishable to the caller; the bcrypt work factor is paid on both
// paths so response timing does not leak account existence.
func (s *Service) SignIn(ctx context.Context, req *SignInRequest) (*Identity, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	p, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		s.hasher.VerifyDummy(req.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(p.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return &Identity{ID: p.ID, Email: p.Email}, nil
}

// SplitFullName splits a staff-entered display name on whitespace: the first
// token becomes the first name and the remainder, joined, the last name. A
// missing or blank name yields nil for both.
func SplitFullName(name *string) (first, last *string) {
	if name == nil {
		return nil, nil
	}
	parts := strings.Fields(*name)
	if len(parts) == 0 {
		return nil, nil
	}
	first = &parts[0]
	if len(parts) > 1 {
		rest := strings.Join(parts[1:], " ")
		last = &rest
	}
	return first, last
}
