package emergency

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

const profileCols = `patient_id, share_personal_info, share_blood_type, share_allergies,
	share_medical_conditions, share_current_medications, share_emergency_contacts,
	share_advance_directives, blood_type, allergies, medical_conditions, current_medications,
	emergency_contact_full_name, emergency_contact_relationship, emergency_contact_phone,
	dnr_status, living_will, created_at, updated_at`

func scanProfile(row pgx.Row) (*EmergencyProfile, error) {
	var p EmergencyProfile
	err := row.Scan(&p.PatientID, &p.SharePersonalInfo, &p.ShareBloodType, &p.ShareAllergies,
		&p.ShareMedicalConditions, &p.ShareCurrentMedications, &p.ShareEmergencyContacts,
		&p.ShareAdvanceDirectives, &p.BloodType, &p.Allergies, &p.MedicalConditions, &p.CurrentMedications,
		&p.EmergencyContactFullName, &p.EmergencyContactRelation, &p.EmergencyContactPhone,
		&p.DNRStatus, &p.LivingWill, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) GetProfile(ctx context.Context, patientID uuid.UUID) (*EmergencyProfile, error) {
	return scanProfile(r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM emergency_profiles WHERE patient_id = $1`, patientID))
}

func (r *repoPG) UpsertProfile(ctx context.Context, p *EmergencyProfile) (*EmergencyProfile, error) {
	return scanProfile(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO emergency_profiles (id, patient_id, share_personal_info, share_blood_type,
			share_allergies, share_medical_conditions, share_current_medications,
			share_emergency_contacts, share_advance_directives, blood_type, allergies,
			medical_conditions, current_medications, emergency_contact_full_name,
			emergency_contact_relationship, emergency_contact_phone, dnr_status, living_will)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (patient_id) DO UPDATE SET
			share_personal_info = EXCLUDED.share_personal_info,
			share_blood_type = EXCLUDED.share_blood_type,
			share_allergies = EXCLUDED.share_allergies,
			share_medical_conditions = EXCLUDED.share_medical_conditions,
			share_current_medications = EXCLUDED.share_current_medications,
			share_emergency_contacts = EXCLUDED.share_emergency_contacts,
			share_advance_directives = EXCLUDED.share_advance_directives,
			blood_type = EXCLUDED.blood_type,
			allergies = EXCLUDED.allergies,
			medical_conditions = EXCLUDED.medical_conditions,
			current_medications = EXCLUDED.current_medications,
			emergency_contact_full_name = EXCLUDED.emergency_contact_full_name,
			emergency_contact_relationship = EXCLUDED.emergency_contact_relationship,
			emergency_contact_phone = EXCLUDED.emergency_contact_phone,
			dnr_status = EXCLUDED.dnr_status,
			living_will = EXCLUDED.living_will,
			updated_at = NOW()
		RETURNING `+profileCols,
		uuid.New(), p.PatientID, p.SharePersonalInfo, p.ShareBloodType,
		p.ShareAllergies, p.ShareMedicalConditions, p.ShareCurrentMedications,
		p.ShareEmergencyContacts, p.ShareAdvanceDirectives, p.BloodType, p.Allergies,
		p.MedicalConditions, p.CurrentMedications, p.EmergencyContactFullName,
		p.EmergencyContactRelation, p.EmergencyContactPhone, p.DNRStatus, p.LivingWill))
}

// GetPersonalInfo joins the account row so email is available even when the
// patient never saved demographics.
func (r *repoPG) GetPersonalInfo(ctx context.Context, patientID uuid.UUID) (*PersonalInfo, error) {
	var pi PersonalInfo
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT pp.first_name, pp.last_name, pp.dob, pp.health_card, p.email
		FROM patients p
		LEFT JOIN patient_profiles pp ON pp.patient_id = p.id
		WHERE p.id = $1`, patientID).
		Scan(&pi.FirstName, &pi.LastName, &pi.DOB, &pi.HealthCard, &pi.Email)
	if err != nil {
		return nil, err
	}
	return &pi, nil
}

const linkCols = `id, patient_id, token, revoked, created_at`

func scanLink(row pgx.Row) (*Link, error) {
	var l Link
	err := row.Scan(&l.ID, &l.PatientID, &l.Token, &l.Revoked, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repoPG) NewestActiveLink(ctx context.Context, patientID uuid.UUID) (*Link, error) {
	return scanLink(r.conn(ctx).QueryRow(ctx, `
		SELECT `+linkCols+` FROM emergency_links
		WHERE patient_id = $1 AND revoked = FALSE
		ORDER BY created_at DESC LIMIT 1`, patientID))
}

func (r *repoPG) InsertLink(ctx context.Context, l *Link) error {
	l.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO emergency_links (id, patient_id, token)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		l.ID, l.PatientID, l.Token).Scan(&l.CreatedAt)
}

func (r *repoPG) GetLinkByToken(ctx context.Context, token string) (*Link, error) {
	return scanLink(r.conn(ctx).QueryRow(ctx,
		`SELECT `+linkCols+` FROM emergency_links WHERE token = $1`, token))
}

func (r *repoPG) RevokeActiveLinks(ctx context.Context, patientID uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE emergency_links SET revoked = TRUE
		WHERE patient_id = $1 AND revoked = FALSE`, patientID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
