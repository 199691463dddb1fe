package profile

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	PatientExists(ctx context.Context, patientID uuid.UUID) (bool, error)
	Upsert(ctx context.Context, p *Profile) (*Profile, error)
	GetOverview(ctx context.Context, patientID uuid.UUID) (*Overview, error)
}
