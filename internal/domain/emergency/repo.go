package emergency

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	PatientExists(ctx context.Context, patientID uuid.UUID) (bool, error)
	GetProfile(ctx context.Context, patientID uuid.UUID) (*EmergencyProfile, error)
	UpsertProfile(ctx context.Context, p *EmergencyProfile) (*EmergencyProfile, error)
	GetPersonalInfo(ctx context.Context, patientID uuid.UUID) (*PersonalInfo, error)

	NewestActiveLink(ctx context.Context, patientID uuid.UUID) (*Link, error)
	InsertLink(ctx context.Context, l *Link) error
	GetLinkByToken(ctx context.Context, token string) (*Link, error)
	RevokeActiveLinks(ctx context.Context, patientID uuid.UUID) (int64, error)
}
