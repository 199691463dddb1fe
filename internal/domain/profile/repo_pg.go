package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

func (r *repoPG) PatientExists(ctx context.Context, patientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`, patientID).Scan(&exists)
	return exists, err
}

const profileCols = `patient_id, first_name, last_name, dob, health_card, phone_number, insurance,
	home_address, home_address_line1, home_address_line2, home_city, home_province, home_postal_code,
	mailing_same_as_home, mailing_address_line1, mailing_address_line2, mailing_city,
	mailing_province, mailing_postal_code, created_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.PatientID, &p.FirstName, &p.LastName, &p.DOB, &p.HealthCard, &p.PhoneNumber,
		&p.Insurance, &p.HomeAddress, &p.HomeLine1, &p.HomeLine2, &p.HomeCity, &p.HomeProvince,
		&p.HomePostalCode, &p.MailingSameAsHome, &p.MailingLine1, &p.MailingLine2, &p.MailingCity,
		&p.MailingProvince, &p.MailingPostalCode, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Upsert(ctx context.Context, p *Profile) (*Profile, error) {
	return scanProfile(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_profiles (patient_id, first_name, last_name, dob, health_card,
			phone_number, insurance, home_address, home_address_line1, home_address_line2,
			home_city, home_province, home_postal_code, mailing_same_as_home,
			mailing_address_line1, mailing_address_line2, mailing_city, mailing_province,
			mailing_postal_code)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (patient_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			dob = EXCLUDED.dob,
			health_card = EXCLUDED.health_card,
			phone_number = EXCLUDED.phone_number,
			insurance = EXCLUDED.insurance,
			home_address = EXCLUDED.home_address,
			home_address_line1 = EXCLUDED.home_address_line1,
			home_address_line2 = EXCLUDED.home_address_line2,
			home_city = EXCLUDED.home_city,
			home_province = EXCLUDED.home_province,
			home_postal_code = EXCLUDED.home_postal_code,
			mailing_same_as_home = EXCLUDED.mailing_same_as_home,
			mailing_address_line1 = EXCLUDED.mailing_address_line1,
			mailing_address_line2 = EXCLUDED.mailing_address_line2,
			mailing_city = EXCLUDED.mailing_city,
			mailing_province = EXCLUDED.mailing_province,
			mailing_postal_code = EXCLUDED.mailing_postal_code
		RETURNING `+profileCols,
		p.PatientID, p.FirstName, p.LastName, p.DOB, p.HealthCard,
		p.PhoneNumber, p.Insurance, p.HomeAddress, p.HomeLine1, p.HomeLine2,
		p.HomeCity, p.HomeProvince, p.HomePostalCode, p.MailingSameAsHome,
		p.MailingLine1, p.MailingLine2, p.MailingCity, p.MailingProvince,
		p.MailingPostalCode))
}

func (r *repoPG) GetOverview(ctx context.Context, patientID uuid.UUID) (*Overview, error) {
	var o Overview
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT p.id, p.email, pp.first_name, pp.last_name, pp.dob, pp.health_card,
			pp.phone_number, pp.insurance, pp.home_address,
			pp.home_address_line1, pp.home_address_line2, pp.home_city,
			pp.home_province, pp.home_postal_code, pp.mailing_same_as_home,
			pp.mailing_address_line1, pp.mailing_address_line2, pp.mailing_city,
			pp.mailing_province, pp.mailing_postal_code,
			ep.blood_type, ep.allergies, ep.medical_conditions, p.created_at
		FROM patients p
		LEFT JOIN patient_profiles pp ON pp.patient_id = p.id
		LEFT JOIN emergency_profiles ep ON ep.patient_id = p.id
		WHERE p.id = $1`, patientID).
		Scan(&o.PatientID, &o.Email, &o.FirstName, &o.LastName, &o.DOB, &o.HealthCard,
			&o.PhoneNumber, &o.Insurance, &o.HomeAddress,
			&o.HomeLine1, &o.HomeLine2, &o.HomeCity,
			&o.HomeProvince, &o.HomePostalCode, &o.MailingSameAsHome,
			&o.MailingLine1, &o.MailingLine2, &o.MailingCity,
			&o.MailingProvince, &o.MailingPostalCode,
			&o.BloodType, &o.Allergies, &o.MedicalConditions, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
