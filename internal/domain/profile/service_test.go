package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	known    map[uuid.UUID]bool
	profiles map[uuid.UUID]*Profile
	overview map[uuid.UUID]*Overview
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		known:    make(map[uuid.UUID]bool),
		profiles: make(map[uuid.UUID]*Profile),
		overview: make(map[uuid.UUID]*Overview),
	}
}

func (m *mockRepo) PatientExists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.known[id], nil
}

func (m *mockRepo) Upsert(_ context.Context, p *Profile) (*Profile, error) {
	cp := *p
	m.profiles[p.PatientID] = &cp
	return &cp, nil
}

func (m *mockRepo) GetOverview(_ context.Context, id uuid.UUID) (*Overview, error) {
	o, ok := m.overview[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return o, nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpdate_UnknownPatient(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Update(context.Background(), uuid.New(), &UpdateProfileRequest{})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestUpdate_InvalidDOB(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.known[id] = true
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), id, &UpdateProfileRequest{DOB: strPtr("15-03-1988")})
	if !errors.Is(err, ErrInvalidDOB) {
		t.Fatalf("expected ErrInvalidDOB, got %v", err)
	}
}

func TestUpdate_NormalizesPostalAndProvince(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.known[id] = true
	svc := NewService(repo)

	p, err := svc.Update(context.Background(), id, &UpdateProfileRequest{
		HomeAddress: &AddressInput{
			Line1:      strPtr("12 King St W"),
			City:       strPtr("Toronto"),
			PostalCode: strPtr(" m5h 1a1 "),
		},
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if p.HomePostalCode == nil || *p.HomePostalCode != "M5H 1A1" {
		t.Errorf("expected postal code trimmed and uppercased, got %v", p.HomePostalCode)
	}
	if p.HomeProvince == nil || *p.HomeProvince != "ON" {
		t.Errorf("expected province default ON, got %v", p.HomeProvince)
	}
}

func TestUpdate_ExplicitProvinceKept(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.known[id] = true
	svc := NewService(repo)

	p, err := svc.Update(context.Background(), id, &UpdateProfileRequest{
		HomeAddress: &AddressInput{Line1: strPtr("800 Rue Sherbrooke"), Province: strPtr("QC")},
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if p.HomeProvince == nil || *p.HomeProvince != "QC" {
		t.Errorf("expected explicit province preserved, got %v", p.HomeProvince)
	}
}

func TestUpdate_MailingSameAsHomeDefaultsTrue(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.known[id] = true
	svc := NewService(repo)

	p, err := svc.Update(context.Background(), id, &UpdateProfileRequest{
		HomeAddress: &AddressInput{
			Line1:      strPtr("12 King St W"),
			City:       strPtr("Toronto"),
			PostalCode: strPtr("M5H 1A1"),
		},
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if !p.MailingSameAsHome {
		t.Error("expected mailing_same_as_home to default true")
	}
	if p.MailingLine1 == nil || *p.MailingLine1 != "12 King St W" {
		t.Errorf("expected home copied to mailing, got %v", p.MailingLine1)
	}
	if p.MailingCity == nil || *p.MailingCity != "Toronto" {
		t.Errorf("expected home city copied to mailing, got %v", p.MailingCity)
	}
}

func TestUpdate_SeparateMailingAddress(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.known[id] = true
	svc := NewService(repo)

	p, err := svc.Update(context.Background(), id, &UpdateProfileRequest{
		HomeAddress:       &AddressInput{Line1: strPtr("12 King St W"), City: strPtr("Toronto")},
		MailingSameAsHome: boolPtr(false),
		MailingAddress:    &AddressInput{Line1: strPtr("PO Box 99"), City: strPtr("Ottawa"), PostalCode: strPtr("k1a 0a6")},
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if p.MailingSameAsHome {
		t.Error("expected mailing_same_as_home false")
	}
	if p.MailingLine1 == nil || *p.MailingLine1 != "PO Box 99" {
		t.Errorf("expected separate mailing line1, got %v", p.MailingLine1)
	}
	if p.MailingPostalCode == nil || *p.MailingPostalCode != "K1A 0A6" {
		t.Errorf("expected mailing postal normalized, got %v", p.MailingPostalCode)
	}
}

func TestUpdate_MailingSnapshotNotLive(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.known[id] = true
	svc := NewService(repo)

	// First save: mailing copied from home.
	if _, err := svc.Update(context.Background(), id, &UpdateProfileRequest{
		HomeAddress: &AddressInput{Line1: strPtr("12 King St W"), City: strPtr("Toronto")},
	}); err != nil {
		t.Fatalf("first Update() error: %v", err)
	}

	// Second save with a new home still flagged same-as-home: the snapshot
	// moves with this write, because copying happens at write time.
	p, err := svc.Update(context.Background(), id, &UpdateProfileRequest{
		HomeAddress: &AddressInput{Line1: strPtr("99 Queen St E"), City: strPtr("Toronto")},
	})
	if err != nil {
		t.Fatalf("second Update() error: %v", err)
	}
	if p.MailingLine1 == nil || *p.MailingLine1 != "99 Queen St E" {
		t.Errorf("expected mailing re-copied on save, got %v", p.MailingLine1)
	}
}

func TestUpdate_ValidDOBStored(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.known[id] = true
	svc := NewService(repo)

	p, err := svc.Update(context.Background(), id, &UpdateProfileRequest{DOB: strPtr("1970-12-31")})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	want := time.Date(1970, 12, 31, 0, 0, 0, 0, time.UTC)
	if p.DOB == nil || !p.DOB.Equal(want) {
		t.Errorf("expected dob %v, got %v", want, p.DOB)
	}
}

func TestOverview_UnknownPatient(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Overview(context.Background(), uuid.New())
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestOverview_ReturnsJoinedRow(t *testing.T) {
	repo := newMockRepo()
	id := uuid.New()
	repo.known[id] = true
	repo.overview[id] = &Overview{
		PatientID: id,
		Email:     "a@b.com",
		FirstName: strPtr("Pat"),
		BloodType: strPtr("A+"),
	}
	svc := NewService(repo)

	o, err := svc.Overview(context.Background(), id)
	if err != nil {
		t.Fatalf("Overview() error: %v", err)
	}
	if o.Email != "a@b.com" {
		t.Errorf("expected email in overview, got %q", o.Email)
	}
	if o.BloodType == nil || *o.BloodType != "A+" {
		t.Errorf("expected clinical seed fields in overview, got %v", o.BloodType)
	}
}
