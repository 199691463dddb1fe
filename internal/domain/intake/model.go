package intake

import (
	"time"

	"github.com/google/uuid"
)

// PendingIntake is a staff-entered staging record keyed by lowercase email.
// It holds demographic and clinical seed data until the patient signs up,
// at which point account provisioning consumes it.
type PendingIntake struct {
	Email             string     `json:"email"`
	FullName          *string    `json:"full_name"`
	DOB               *time.Time `json:"dob"`
	PhoneNumber       *string    `json:"phone_number"`
	HomeAddress       *string    `json:"home_address"`
	Insurance         *string    `json:"insurance"`
	HealthCard        *string    `json:"health_card"`
	BloodType         *string    `json:"blood_type"`
	Allergies         *string    `json:"allergies"`
	MedicalConditions *string    `json:"medical_conditions"`
	CreatedAt         time.Time  `json:"created_at"`
}

// IntakeRequest is the staff-facing request body. Dates travel as
// YYYY-MM-DD strings and are validated in the service.
type IntakeRequest struct {
	Email             string  `json:"email"`
	FullName          *string `json:"fullName"`
	DOB               *string `json:"dob"`
	PhoneNumber       *string `json:"phoneNumber"`
	HomeAddress       *string `json:"homeAddress"`
	Insurance         *string `json:"insurance"`
	HealthCard        *string `json:"healthCard"`
	BloodType         *string `json:"bloodType"`
	Allergies         *string `json:"allergies"`
	MedicalConditions *string `json:"medicalConditions"`
}

// PatientSummary is one row of the staff patient listing: the account joined
// with whatever profile data exists.
type PatientSummary struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	DOB       *time.Time `json:"dob"`
	Phone     *string    `json:"phone_number"`
	CreatedAt time.Time  `json:"created_at"`
}
