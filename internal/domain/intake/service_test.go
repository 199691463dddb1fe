package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	rows     map[string]*PendingIntake
	patients []*PatientSummary
}

func newMockRepo() *mockRepo {
	return &mockRepo{rows: make(map[string]*PendingIntake)}
}

func (m *mockRepo) Upsert(_ context.Context, p *PendingIntake) error {
	cp := *p
	m.rows[p.Email] = &cp
	return nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*PendingIntake, error) {
	p, ok := m.rows[email]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return p, nil
}

func (m *mockRepo) ListPatients(_ context.Context, limit, offset int) ([]*PatientSummary, int, error) {
	total := len(m.patients)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return m.patients[offset:end], total, nil
}

func strPtr(s string) *string { return &s }

func TestRecord_NormalizesEmail(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p, err := svc.Record(context.Background(), &IntakeRequest{
		Email:    "  Maria.Garcia@Example.COM ",
		FullName: strPtr("Maria Garcia"),
	})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if p.Email != "maria.garcia@example.com" {
		t.Errorf("expected lowercased trimmed email, got %q", p.Email)
	}
	if _, ok := repo.rows["maria.garcia@example.com"]; !ok {
		t.Error("expected row stored under normalized email")
	}
}

func TestRecord_MissingEmail(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Record(context.Background(), &IntakeRequest{Email: "   "})
	if !errors.Is(err, ErrMissingEmail) {
		t.Fatalf("expected ErrMissingEmail, got %v", err)
	}
}

func TestRecord_InvalidDOB(t *testing.T) {
	svc := NewService(newMockRepo())

	for _, bad := range []string{"03/15/1988", "1988-13-01", "not-a-date"} {
		_, err := svc.Record(context.Background(), &IntakeRequest{
			Email: "a@b.com",
			DOB:   strPtr(bad),
		})
		if !errors.Is(err, ErrInvalidDOB) {
			t.Errorf("dob %q: expected ErrInvalidDOB, got %v", bad, err)
		}
	}
}

func TestRecord_ValidDOB(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p, err := svc.Record(context.Background(), &IntakeRequest{
		Email: "a@b.com",
		DOB:   strPtr("1988-03-15"),
	})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	want := time.Date(1988, 3, 15, 0, 0, 0, 0, time.UTC)
	if p.DOB == nil || !p.DOB.Equal(want) {
		t.Errorf("expected dob %v, got %v", want, p.DOB)
	}
}

func TestRecord_EmptyDOBAllowed(t *testing.T) {
	svc := NewService(newMockRepo())

	p, err := svc.Record(context.Background(), &IntakeRequest{
		Email: "a@b.com",
		DOB:   strPtr(""),
	})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if p.DOB != nil {
		t.Errorf("expected nil dob for empty input, got %v", p.DOB)
	}
}

func TestRecord_BlankOptionalFieldsBecomeNil(t *testing.T) {
	svc := NewService(newMockRepo())

	p, err := svc.Record(context.Background(), &IntakeRequest{
		Email:     "a@b.com",
		FullName:  strPtr("  "),
		BloodType: strPtr(" O+ "),
	})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if p.FullName != nil {
		t.Errorf("expected blank full name to become nil, got %q", *p.FullName)
	}
	if p.BloodType == nil || *p.BloodType != "O+" {
		t.Errorf("expected blood type trimmed to O+, got %v", p.BloodType)
	}
}

func TestRecord_UpsertReplacesExisting(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	_, err := svc.Record(context.Background(), &IntakeRequest{
		Email:     "a@b.com",
		Allergies: strPtr("penicillin"),
	})
	if err != nil {
		t.Fatalf("first Record() error: %v", err)
	}

	_, err = svc.Record(context.Background(), &IntakeRequest{
		Email:     "A@B.com",
		Allergies: strPtr("penicillin, latex"),
	})
	if err != nil {
		t.Fatalf("second Record() error: %v", err)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("expected one staged row per email, got %d", len(repo.rows))
	}
	stored := repo.rows["a@b.com"]
	if stored.Allergies == nil || *stored.Allergies != "penicillin, latex" {
		t.Errorf("expected second submission to replace the first, got %v", stored.Allergies)
	}
}

func TestListPatients_Paginates(t *testing.T) {
	repo := newMockRepo()
	for i := 0; i < 5; i++ {
		repo.patients = append(repo.patients, &PatientSummary{ID: uuid.New(), Email: "p@x.com"})
	}
	svc := NewService(repo)

	items, total, err := svc.ListPatients(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("ListPatients() error: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}
