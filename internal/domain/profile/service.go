package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidDOB      = errors.New("dob must be YYYY-MM-DD")
)

// defaultProvince applies when an address is supplied without a province.
const defaultProvince = "ON"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Update validates and stores the patient's profile. Postal codes are
// normalized to uppercase, the province falls back to defaultProvince, and
// when the mailing address is flagged same-as-home the home fields are
// copied into the mailing columns at write time. The stored mailing address
// is a snapshot: editing home later without re-saving does not move it.
func (s *Service) Update(ctx context.Context, patientID uuid.UUID, req *UpdateProfileRequest) (*Profile, error) {
	exists, err := s.repo.PatientExists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		PatientID:   patientID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DOB:         dob,
		HealthCard:  req.HealthCard,
		PhoneNumber: req.PhoneNumber,
		Insurance:   req.Insurance,
		HomeAddress: req.HomeAddressText,
	}

	home := normalizeAddress(req.HomeAddress)
	if home != nil {
		p.HomeLine1 = home.Line1
		p.HomeLine2 = home.Line2
		p.HomeCity = home.City
		p.HomeProvince = home.Province
		p.HomePostalCode = home.PostalCode
	}

	p.MailingSameAsHome = true
	if req.MailingSameAsHome != nil {
		p.MailingSameAsHome = *req.MailingSameAsHome
	}

	if p.MailingSameAsHome {
		p.MailingLine1 = p.HomeLine1
		p.MailingLine2 = p.HomeLine2
		p.MailingCity = p.HomeCity
		p.MailingProvince = p.HomeProvince
		p.MailingPostalCode = p.HomePostalCode
	} else if mailing := normalizeAddress(req.MailingAddress); mailing != nil {
		p.MailingLine1 = mailing.Line1
		p.MailingLine2 = mailing.Line2
		p.MailingCity = mailing.City
		p.MailingProvince = mailing.Province
		p.MailingPostalCode = mailing.PostalCode
	}

	return s.repo.Upsert(ctx, p)
}

// Overview returns the joined account + profile + clinical seed view.
func (s *Service) Overview(ctx context.Context, patientID uuid.UUID) (*Overview, error) {
	exists, err := s.repo.PatientExists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPatientNotFound
	}
	return s.repo.GetOverview(ctx, patientID)
}

// normalizeAddress trims every field, uppercases the postal code and applies
// the province default when any other field is present.
func normalizeAddress(a *AddressInput) *AddressInput {
	if a == nil {
		return nil
	}

	out := &AddressInput{
		Line1: trimmed(a.Line1),
		Line2: trimmed(a.Line2),
		City:  trimmed(a.City),
	}
	if pc := trimmed(a.PostalCode); pc != nil {
		upper := strings.ToUpper(*pc)
		out.PostalCode = &upper
	}

	out.Province = trimmed(a.Province)
	if out.Province == nil && (out.Line1 != nil || out.City != nil || out.PostalCode != nil) {
		prov := defaultProvince
		out.Province = &prov
	}

	return out
}

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
