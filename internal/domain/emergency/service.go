package emergency

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carebridge/portal/internal/platform/token"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrLinkNotFound    = errors.New("invalid or expired link")
	ErrLinkRevoked     = errors.New("link revoked")
)

type Service struct {
	repo    Repository
	baseURL string
}

// NewService builds the emergency service. baseURL is the public origin the
// shareable URLs are formed against, without a trailing slash.
func NewService(repo Repository, baseURL string) *Service {
	return &Service{repo: repo, baseURL: strings.TrimRight(baseURL, "/")}
}

// GetSettings returns the patient's identity fields merged over the stored
// emergency profile, applying defaults when no row has been saved yet.
func (s *Service) GetSettings(ctx context.Context, patientID uuid.UUID) (*Settings, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	p, err := s.profileOrDefault(ctx, patientID)
	if err != nil {
		return nil, err
	}

	out := &Settings{EmergencyProfile: *p}
	personal, err := s.personalOrNil(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if personal != nil {
		out.Email = personal.Email
		out.FirstName = personal.FirstName
		out.LastName = personal.LastName
		out.DOB = personal.DOB
		out.HealthCard = personal.HealthCard
	}
	return out, nil
}

// UpdateSettings merges the request into the stored profile (or the default
// when none exists) and persists the result.
func (s *Service) UpdateSettings(ctx context.Context, patientID uuid.UUID, req *UpdateSettingsRequest) (*EmergencyProfile, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	p, err := s.profileOrDefault(ctx, patientID)
	if err != nil {
		return nil, err
	}

	applyFlag := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	applyFlag(&p.SharePersonalInfo, req.SharePersonalInfo)
	applyFlag(&p.ShareBloodType, req.ShareBloodType)
	applyFlag(&p.ShareAllergies, req.ShareAllergies)
	applyFlag(&p.ShareMedicalConditions, req.ShareMedicalConditions)
	applyFlag(&p.ShareCurrentMedications, req.ShareCurrentMedications)
	applyFlag(&p.ShareEmergencyContacts, req.ShareEmergencyContacts)
	applyFlag(&p.ShareAdvanceDirectives, req.ShareAdvanceDirectives)

	applyStr := func(dst **string, src *string) {
		if src != nil {
			v := strings.TrimSpace(*src)
			if v == "" {
				*dst = nil
			} else {
				*dst = &v
			}
		}
	}
	applyStr(&p.BloodType, req.BloodType)
	applyStr(&p.Allergies, req.Allergies)
	applyStr(&p.MedicalConditions, req.MedicalConditions)
	applyStr(&p.CurrentMedications, req.CurrentMedications)
	applyStr(&p.EmergencyContactFullName, req.EmergencyContactFullName)
	applyStr(&p.EmergencyContactRelation, req.EmergencyContactRelation)
	applyStr(&p.EmergencyContactPhone, req.EmergencyContactPhone)
	applyStr(&p.DNRStatus, req.DNRStatus)
	applyStr(&p.LivingWill, req.LivingWill)

	return s.repo.UpsertProfile(ctx, p)
}

// IssueLink returns the patient's newest active link, minting one only when
// none exists. Revoked links are never resurrected.
func (s *Service) IssueLink(ctx context.Context, patientID uuid.UUID) (*IssuedLink, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	l, err := s.repo.NewestActiveLink(ctx, patientID)
	if errors.Is(err, pgx.ErrNoRows) {
		tok, err := token.New()
		if err != nil {
			return nil, err
		}
		l = &Link{PatientID: patientID, Token: tok}
		if err := s.repo.InsertLink(ctx, l); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &IssuedLink{Token: l.Token, URL: s.baseURL + "/e/" + l.Token}, nil
}

// RevokeLinks marks every active link for the patient revoked and returns
// how many were affected. A later IssueLink call mints a fresh token.
func (s *Service) RevokeLinks(ctx context.Context, patientID uuid.UUID) (int64, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return 0, err
	}
	return s.repo.RevokeActiveLinks(ctx, patientID)
}

// Redeem resolves a token to the consent-filtered snapshot. The token is the
// only credential; no session is involved.
func (s *Service) Redeem(ctx context.Context, tok string) (*Snapshot, error) {
	l, err := s.repo.GetLinkByToken(ctx, tok)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	if l.Revoked {
		return nil, ErrLinkRevoked
	}

	exists, err := s.repo.PatientExists(ctx, l.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrLinkNotFound
	}

	personal, err := s.personalOrNil(ctx, l.PatientID)
	if err != nil {
		return nil, err
	}

	p, err := s.profileOrDefault(ctx, l.PatientID)
	if err != nil {
		return nil, err
	}

	return Project(personal, p), nil
}

func (s *Service) requirePatient(ctx context.Context, patientID uuid.UUID) error {
	exists, err := s.repo.PatientExists(ctx, patientID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPatientNotFound
	}
	return nil
}

func (s *Service) personalOrNil(ctx context.Context, patientID uuid.UUID) (*PersonalInfo, error) {
	pi, err := s.repo.GetPersonalInfo(ctx, patientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pi, nil
}

func (s *Service) profileOrDefault(ctx context.Context, patientID uuid.UUID) (*EmergencyProfile, error) {
	p, err := s.repo.GetProfile(ctx, patientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultEmergencyProfile(patientID), nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
