package intake

import (
	"context"

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

func (r *repoPG) Upsert(ctx context.Context, p *PendingIntake) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pending_patient_intake (email, full_name, dob, phone_number, home_address,
			insurance, health_card, blood_type, allergies, medical_conditions)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (email) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			dob = EXCLUDED.dob,
			phone_number = EXCLUDED.phone_number,
			home_address = EXCLUDED.home_address,
			insurance = EXCLUDED.insurance,
			health_card = EXCLUDED.health_card,
			blood_type = EXCLUDED.blood_type,
			allergies = EXCLUDED.allergies,
			medical_conditions = EXCLUDED.medical_conditions`,
		p.Email, p.FullName, p.DOB, p.PhoneNumber, p.HomeAddress,
		p.Insurance, p.HealthCard, p.BloodType, p.Allergies, p.MedicalConditions)
	return err
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*PendingIntake, error) {
	var p PendingIntake
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT email, full_name, dob, phone_number, home_address,
			insurance, health_card, blood_type, allergies, medical_conditions, created_at
		FROM pending_patient_intake WHERE email = $1`, email).
		Scan(&p.Email, &p.FullName, &p.DOB, &p.PhoneNumber, &p.HomeAddress,
			&p.Insurance, &p.HealthCard, &p.BloodType, &p.Allergies, &p.MedicalConditions, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) ListPatients(ctx context.Context, limit, offset int) ([]*PatientSummary, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.id, p.email, pp.first_name, pp.last_name, pp.dob, pp.phone_number, p.created_at
		FROM patients p
		LEFT JOIN patient_profiles pp ON pp.patient_id = p.id
		ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*PatientSummary
	for rows.Next() {
		var s PatientSummary
		if err := rows.Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.DOB, &s.Phone, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &s)
	}
	return items, total, rows.Err()
}
