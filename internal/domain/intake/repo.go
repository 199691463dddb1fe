package intake

import "context"

type Repository interface {
	Upsert(ctx context.Context, p *PendingIntake) error
	GetByEmail(ctx context.Context, email string) (*PendingIntake, error)
	ListPatients(ctx context.Context, limit, offset int) ([]*PatientSummary, int, error)
}
