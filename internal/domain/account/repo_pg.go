package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carebridge/portal/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	if q, ok := db.QueryableFromContext(ctx); ok {
		return q
	}
	return r.pool
}

func (r *repoPG) InsertPatient(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, email, password_hash, terms_accepted_at)
		VALUES ($1, $2, $3, NOW())`,
		p.ID, p.Email, p.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	var p Patient
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, email, password_hash, terms_accepted_at, created_at
		FROM patients WHERE email = $1`, email).
		Scan(&p.ID, &p.Email, &p.PasswordHash, &p.TermsAcceptedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) GetStagedIntake(ctx context.Context, email string) (*StagedIntake, error) {
	var s StagedIntake
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT full_name, dob, phone_number, home_address, insurance,
			health_card, blood_type, allergies, medical_conditions
		FROM pending_patient_intake WHERE email = $1`, email).
		Scan(&s.FullName, &s.DOB, &s.PhoneNumber, &s.HomeAddress, &s.Insurance,
			&s.HealthCard, &s.BloodType, &s.Allergies, &s.MedicalConditions)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) SeedProfile(ctx context.Context, patientID uuid.UUID, firstName, lastName *string, staged *StagedIntake) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_profiles (patient_id, first_name, last_name, dob,
			health_card, phone_number, insurance, home_address)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (patient_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			dob = EXCLUDED.dob,
			health_card = EXCLUDED.health_card,
			phone_number = EXCLUDED.phone_number,
			insurance = EXCLUDED.insurance,
			home_address = EXCLUDED.home_address`,
		patientID, firstName, lastName, staged.DOB,
		staged.HealthCard, staged.PhoneNumber, staged.Insurance, staged.HomeAddress)
	return err
}

func (r *repoPG) SeedEmergencyProfile(ctx context.Context, patientID uuid.UUID, staged *StagedIntake) error {
	// Disclosure flags come from the column defaults.
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO emergency_profiles (id, patient_id, blood_type, allergies, medical_conditions)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (patient_id) DO UPDATE SET
			blood_type = EXCLUDED.blood_type,
			allergies = EXCLUDED.allergies,
			medical_conditions = EXCLUDED.medical_conditions,
			updated_at = NOW()`,
		uuid.New(), patientID, staged.BloodType, staged.Allergies, staged.MedicalConditions)
	return err
}

func (r *repoPG) DeleteStagedIntake(ctx context.Context, email string) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM pending_patient_intake WHERE email = $1`, email)
	return err
}
