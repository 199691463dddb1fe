package intake

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingEmail = errors.New("email is required")
	ErrInvalidDOB   = errors.New("dob must be YYYY-MM-DD")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record validates a staff intake submission and upserts the staging row.
// The email is the key: a second submission for the same address replaces
// the first so there is never more than one pending row per patient.
func (s *Service) Record(ctx context.Context, req *IntakeRequest) (*PendingIntake, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrMissingEmail
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return nil, err
	}

	p := &PendingIntake{
		Email:             email,
		FullName:          trimmed(req.FullName),
		DOB:               dob,
		PhoneNumber:       trimmed(req.PhoneNumber),
		HomeAddress:       trimmed(req.HomeAddress),
		Insurance:         trimmed(req.Insurance),
		HealthCard:        trimmed(req.HealthCard),
		BloodType:         trimmed(req.BloodType),
		Allergies:         trimmed(req.Allergies),
		MedicalConditions: trimmed(req.MedicalConditions),
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*PatientSummary, int, error) {
	return s.repo.ListPatients(ctx, limit, offset)
}

// parseDOB validates an optional YYYY-MM-DD date string. An empty or missing
// value is allowed and yields nil.
func parseDOB(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*s))
	if err != nil {
		return nil, ErrInvalidDOB
	}
	return &t, nil
}

// trimmed normalizes an optional string field: whitespace-only input becomes
// nil so it stores as NULL.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
