package account

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the account row: credentials and consent, no demographics.
type Patient struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	TermsAcceptedAt time.Time `json:"terms_accepted_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// Identity is what both auth endpoints return: who the caller now is.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type SignUpRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	AcceptedTerms bool   `json:"acceptedTerms"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StagedIntake is the slice of a pending intake row that provisioning copies
// into the new account's profile and emergency profile.
type StagedIntake struct {
	FullName          *string
	DOB               *time.Time
	PhoneNumber       *string
	HomeAddress       *string
	Insurance         *string
	HealthCard        *string
	BloodType         *string
	Allergies         *string
	MedicalConditions *string
}
