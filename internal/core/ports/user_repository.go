package ports

import (
	"context"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// UserUpdate carries the fields of a partial user update. Nil fields
// are left untouched (shallow merge semantics).
type UserUpdate struct {
	Name            *string
	Email           *string
	Avatar          *string
	PasswordHash    *string
	WalletBalance   *float64
	BonusBalance    *float64
	IsSubscribed    *bool
	IsFrozen        *bool
	IsOnline        *bool
	ConsultationFee *float64
	Specialization  *string
	Location        *string
	BankAccount     *domain.BankAccount
}

// UserRepository defines per-entity keyed persistence for users.
// Every write targets a single user document; there is no
// whole-collection read-modify-write.
type UserRepository interface {
	Insert(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentity matches email or display name, case-insensitively.
	FindByIdentity(ctx context.Context, identity string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	// Update applies a shallow merge and returns the updated user.
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	// PrependTransaction inserts tx at index 0 of the user's ledger.
	PrependTransaction(ctx context.Context, userID string, tx domain.Transaction) error
	// PrependDiagnosis inserts d at index 0 of the patient's record.
	// Fails with domain.ErrNoMedicalRecord when the patient has none.
	PrependDiagnosis(ctx context.Context, patientID string, d domain.Diagnosis) error
	// ReplaceAll overwrites the whole collection (snapshot import).
	ReplaceAll(ctx context.Context, users []domain.User) error
	DeleteAll(ctx context.Context) error
}
