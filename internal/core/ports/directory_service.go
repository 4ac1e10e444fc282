package ports

import (
	"context"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// DiagnosisInput carries a new clinical finding for a patient.
type DiagnosisInput struct {
	PatientID    string
	DoctorID     string
	Condition    string
	Notes        string
	Prescription string
}

// DirectoryService covers the user roster: lookup, partial updates,
// administrative freezing, diagnoses and seeding.
type DirectoryService interface {
	// Seed writes the default clinical roster once; it is a no-op when
	// any users already exist.
	Seed(ctx context.Context) error
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListDoctors(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	SetFrozen(ctx context.Context, id string, frozen bool) (*domain.User, error)
	AddDiagnosis(ctx context.Context, in DiagnosisInput) (*domain.Diagnosis, error)
	Transactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	// Heartbeat refreshes a doctor's presence marker.
	Heartbeat(ctx context.Context, userID string) error
}
