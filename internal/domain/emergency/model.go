package emergency

import (
	"time"

	"github.com/google/uuid"
)

// ShareFlags are the per-category disclosure consents a patient controls.
// Each flag gates one group of fields in the public snapshot.
type ShareFlags struct {
	SharePersonalInfo       bool `json:"share_personal_info"`
	ShareBloodType          bool `json:"share_blood_type"`
	ShareAllergies          bool `json:"share_allergies"`
	ShareMedicalConditions  bool `json:"share_medical_conditions"`
	ShareCurrentMedications bool `json:"share_current_medications"`
	ShareEmergencyContacts  bool `json:"share_emergency_contacts"`
	ShareAdvanceDirectives  bool `json:"share_advance_directives"`
}

// DefaultShareFlags returns the consent defaults for a profile that has
// never been saved: everything shared except advance directives.
func DefaultShareFlags() ShareFlags {
	return ShareFlags{
		SharePersonalInfo:       true,
		ShareBloodType:          true,
		ShareAllergies:          true,
		ShareMedicalConditions:  true,
		ShareCurrentMedications: true,
		ShareEmergencyContacts:  true,
		ShareAdvanceDirectives:  false,
	}
}

// EmergencyProfile is one patient's emergency data plus disclosure flags.
type EmergencyProfile struct {
	PatientID uuid.UUID `json:"patient_id"`
	ShareFlags
	BloodType                *string    `json:"blood_type"`
	Allergies                *string    `json:"allergies"`
	MedicalConditions        *string    `json:"medical_conditions"`
	CurrentMedications       *string    `json:"current_medications"`
	EmergencyContactFullName *string    `json:"emergency_contact_full_name"`
	EmergencyContactRelation *string    `json:"emergency_contact_relationship"`
	EmergencyContactPhone    *string    `json:"emergency_contact_phone"`
	DNRStatus                *string    `json:"dnr_status"`
	LivingWill               *string    `json:"living_will"`
	CreatedAt                *time.Time `json:"created_at"`
	UpdatedAt                *time.Time `json:"updated_at"`
}

// DefaultEmergencyProfile is the total view over a patient with no stored
// emergency row: default flags, no data, no timestamps.
func DefaultEmergencyProfile(patientID uuid.UUID) *EmergencyProfile {
	return &EmergencyProfile{
		PatientID:  patientID,
		ShareFlags: DefaultShareFlags(),
	}
}

// UpdateSettingsRequest is the patient-facing PUT body (camelCase). Absent
// fields keep their stored (or default) values.
type UpdateSettingsRequest struct {
	SharePersonalInfo       *bool `json:"sharePersonalInfo"`
	ShareBloodType          *bool `json:"shareBloodType"`
	ShareAllergies          *bool `json:"shareAllergies"`
	ShareMedicalConditions  *bool `json:"shareMedicalConditions"`
	ShareCurrentMedications *bool `json:"shareCurrentMedications"`
	ShareEmergencyContacts  *bool `json:"shareEmergencyContacts"`
	ShareAdvanceDirectives  *bool `json:"shareAdvanceDirectives"`

	BloodType                *string `json:"bloodType"`
	Allergies                *string `json:"allergies"`
	MedicalConditions        *string `json:"medicalConditions"`
	CurrentMedications       *string `json:"currentMedications"`
	EmergencyContactFullName *string `json:"emergencyContactFullName"`
	EmergencyContactRelation *string `json:"emergencyContactRelationship"`
	EmergencyContactPhone    *string `json:"emergencyContactPhone"`
	DNRStatus                *string `json:"dnrStatus"`
	LivingWill               *string `json:"livingWill"`
}

// Link is a capability token granting public read access to a patient's
// snapshot. Revocation is terminal: a revoked link never serves again.
type Link struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	Token     string    `json:"token"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// IssuedLink is the response to a link request: the raw token and the full
// shareable URL.
type IssuedLink struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// PersonalInfo is the identity slice of the account and profile rows that
// the snapshot may disclose: name, date of birth, health card and email.
type PersonalInfo struct {
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	DOB        *time.Time `json:"dob"`
	HealthCard *string    `json:"health_card"`
	Email      *string    `json:"email"`
}

// Settings is the GET settings view: the identity fields merged over the
// stored (or default) emergency profile, so one response feeds both the
// personal-info block and the sharing toggles.
type Settings struct {
	Email      *string    `json:"email"`
	FirstName  *string    `json:"first_name"`
	LastName   *string    `json:"last_name"`
	DOB        *time.Time `json:"dob"`
	HealthCard *string    `json:"health_card"`
	EmergencyProfile
}

// ContactCard is the emergency contact group in the snapshot.
type ContactCard struct {
	FullName     *string `json:"full_name"`
	Relationship *string `json:"relationship"`
	Phone        *string `json:"phone"`
}

// Directives is the advance-directives group in the snapshot.
type Directives struct {
	DNRStatus  *string `json:"dnr_status"`
	LivingWill *string `json:"living_will"`
}

// Snapshot is the consent-filtered public projection served to whoever holds
// a valid link. Identity fields are always present as keys but null when
// personal info is withheld; every other group is omitted entirely when its
// flag is off.
type Snapshot struct {
	PatientID          uuid.UUID    `json:"patient_id"`
	FirstName          *string      `json:"first_name"`
	LastName           *string      `json:"last_name"`
	DOB                *time.Time   `json:"dob"`
	HealthCard         *string      `json:"health_card"`
	Email              *string      `json:"email"`
	BloodType          *string      `json:"blood_type,omitempty"`
	Allergies          *string      `json:"allergies,omitempty"`
	MedicalConditions  *string      `json:"medical_conditions,omitempty"`
	CurrentMedications *string      `json:"current_medications,omitempty"`
	EmergencyContact   *ContactCard `json:"emergency_contact,omitempty"`
	AdvanceDirectives  *Directives  `json:"advance_directives,omitempty"`
	UpdatedAt          *time.Time   `json:"updated_at"`
}

// Project applies the profile's disclosure flags to produce the public
// snapshot. It is a pure function of its inputs; personal may be nil when
// the patient has no profile row.
func Project(personal *PersonalInfo, ep *EmergencyProfile) *Snapshot {
	s := &Snapshot{
		PatientID: ep.PatientID,
		UpdatedAt: ep.UpdatedAt,
	}

	if ep.SharePersonalInfo && personal != nil {
		s.FirstName = personal.FirstName
		s.LastName = personal.LastName
		s.DOB = personal.DOB
		s.HealthCard = personal.HealthCard
		s.Email = personal.Email
	}

	if ep.ShareBloodType {
		s.BloodType = ep.BloodType
	}
	if ep.ShareAllergies {
		s.Allergies = ep.Allergies
	}
	if ep.ShareMedicalConditions {
		s.MedicalConditions = ep.MedicalConditions
	}
	if ep.ShareCurrentMedications {
		s.CurrentMedications = ep.CurrentMedications
	}
	if ep.ShareEmergencyContacts {
		s.EmergencyContact = &ContactCard{
			FullName:     ep.EmergencyContactFullName,
			Relationship: ep.EmergencyContactRelation,
			Phone:        ep.EmergencyContactPhone,
		}
	}
	if ep.ShareAdvanceDirectives {
		s.AdvanceDirectives = &Directives{
			DNRStatus:  ep.DNRStatus,
			LivingWill: ep.LivingWill,
		}
	}

	return s
}
