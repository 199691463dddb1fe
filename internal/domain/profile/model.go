package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the demographics row for one patient. Address fields exist
// twice: a structured home address and a mailing address that is a stored
// copy of home whenever MailingSameAsHome is set at write time.
type Profile struct {
	PatientID         uuid.UUID  `json:"patient_id"`
	FirstName         *string    `json:"first_name"`
	LastName          *string    `json:"last_name"`
	DOB               *time.Time `json:"dob"`
	HealthCard        *string    `json:"health_card"`
	PhoneNumber       *string    `json:"phone_number"`
	Insurance         *string    `json:"insurance"`
	HomeAddress       *string    `json:"home_address"`
	HomeLine1         *string    `json:"home_address_line1"`
	HomeLine2         *string    `json:"home_address_line2"`
	HomeCity          *string    `json:"home_city"`
	HomeProvince      *string    `json:"home_province"`
	HomePostalCode    *string    `json:"home_postal_code"`
	MailingSameAsHome bool       `json:"mailing_same_as_home"`
	MailingLine1      *string    `json:"mailing_address_line1"`
	MailingLine2      *string    `json:"mailing_address_line2"`
	MailingCity       *string    `json:"mailing_city"`
	MailingProvince   *string    `json:"mailing_province"`
	MailingPostalCode *string    `json:"mailing_postal_code"`
	CreatedAt         time.Time  `json:"created_at"`
}

// AddressInput is one structured address in the update request.
type AddressInput struct {
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postalCode"`
}

// UpdateProfileRequest is the patient-facing request body (camelCase).
// The date of birth travels as a YYYY-MM-DD string, and the addresses as
// structured objects. HomeAddressText carries the freeform address line the
// staff intake captures before a structured address exists.
type UpdateProfileRequest struct {
	FirstName         *string       `json:"firstName"`
	LastName          *string       `json:"lastName"`
	DOB               *string       `json:"dob"`
	HealthCard        *string       `json:"healthCard"`
	PhoneNumber       *string       `json:"phoneNumber"`
	Insurance         *string       `json:"insurance"`
	HomeAddressText   *string       `json:"homeAddressText"`
	HomeAddress       *AddressInput `json:"homeAddress"`
	MailingSameAsHome *bool         `json:"mailingSameAsHome"`
	MailingAddress    *AddressInput `json:"mailingAddress"`
}

// Overview is the joined read model for GET profile: the account row plus
// whatever demographics and clinical seed data exist.
type Overview struct {
	PatientID         uuid.UUID  `json:"patient_id"`
	Email             string     `json:"email"`
	FirstName         *string    `json:"first_name"`
	LastName          *string    `json:"last_name"`
	DOB               *time.Time `json:"dob"`
	HealthCard        *string    `json:"health_card"`
	PhoneNumber       *string    `json:"phone_number"`
	Insurance         *string    `json:"insurance"`
	HomeAddress       *string    `json:"home_address"`
	HomeLine1         *string    `json:"home_address_line1"`
	HomeLine2         *string    `json:"home_address_line2"`
	HomeCity          *string    `json:"home_city"`
	HomeProvince      *string    `json:"home_province"`
	HomePostalCode    *string    `json:"home_postal_code"`
	MailingSameAsHome *bool      `json:"mailing_same_as_home"`
	MailingLine1      *string    `json:"mailing_address_line1"`
	MailingLine2      *string    `json:"mailing_address_line2"`
	MailingCity       *string    `json:"mailing_city"`
	MailingProvince   *string    `json:"mailing_province"`
	MailingPostalCode *string    `json:"mailing_postal_code"`
	BloodType         *string    `json:"blood_type"`
	Allergies         *string    `json:"allergies"`
	MedicalConditions *string    `json:"medical_conditions"`
	CreatedAt         time.Time  `json:"created_at"`
}
