package ports

import (
	"context"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// PaymentInput carries the parameters of a standard consultation
// payment. IncludeBonus additionally unlocks the subsidy bonus when
// the patient is not yet subscribed.
type PaymentInput struct {
	PatientID    string
	DoctorID     string
	IncludeBonus bool
}

// PaymentResult reports the outcome of a consultation payment.
type PaymentResult struct {
	TransactionID string
	Fee           float64
	// Subsidy is the amount moved from the bonus pool back into the
	// wallet within this payment (0 when no subsidy applied).
	Subsidy       float64
	WalletBalance float64
	BonusBalance  float64
	BonusUnlocked bool
}

// DepositInput carries a wallet top-up request.
type DepositInput struct {
	UserID string
	Amount float64
	Method string
}

// WalletService moves value between patient balances and doctor
// ledgers.
type WalletService interface {
	PayConsultation(ctx context.Context, in PaymentInput) (*PaymentResult, error)
	// PenalizeFalseSOS debits the doctor's fee from the patient with no
	// balance check; the wallet may go negative. No doctor-side credit
	// is recorded.
	PenalizeFalseSOS(ctx context.Context, patientID, doctorID string) (*domain.Transaction, error)
	Deposit(ctx context.Context, in DepositInput) (*domain.User, error)
	// ActivateBonus unlocks the subsidy pool outside of a payment:
	// wallet -10, bonus +100, subscribed.
	ActivateBonus(ctx context.Context, userID string) (*domain.User, error)
	// HasActiveSession reports whether the patient may re-enter a call
	// with the doctor without paying again: subscribed patients always
	// may; otherwise a payment to that doctor within the last 15
	// minutes covers the attempt.
	HasActiveSession(ctx context.Context, patientID, doctorID string) (bool, error)
}
