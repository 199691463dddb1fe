package account

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	InsertPatient(ctx context.Context, p *Patient) error
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	GetStagedIntake(ctx context.Context, email string) (*StagedIntake, error)
	SeedProfile(ctx context.Context, patientID uuid.UUID, firstName, lastName *string, staged *StagedIntake) error
	SeedEmergencyProfile(ctx context.Context, patientID uuid.UUID, staged *StagedIntake) error
	DeleteStagedIntake(ctx context.Context, email string) error
}

// TxRunner runs the provisioning sequence atomically. Satisfied by
// db.TxRunner in production and by a pass-through in tests.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
