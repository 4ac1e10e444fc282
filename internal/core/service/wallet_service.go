package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

const (
	bonusUnlockCost = 10.0
	bonusPoolCredit = 100.0
	subsidyRate     = 0.4

	// SessionWindow is how long a consultation payment keeps covering
	// repeat call attempts to the same doctor.
	SessionWindow = 15 * time.Minute
)

// SessionStore abstracts the paid-session marker store (Redis).
type SessionStore interface {
	Mark(ctx context.Context, patientID, doctorID string) error
	IsActive(ctx context.Context, patientID, doctorID string) (bool, error)
}

// WalletService implements consultation payments, the subsidy bonus
// pool, deposits and the false-SOS penalty.
type WalletService struct {
	users    ports.UserRepository
	sessions SessionStore
	logger   zerolog.Logger
}

func NewWalletService(users ports.UserRepository, sessions SessionStore, logger zerolog.Logger) *WalletService {
	return &WalletService{users: users, sessions: sessions, logger: logger}
}

// PayConsultation charges a patient for a session with a doctor.
//
// Order of operations: the bonus unlock cost is debited first, then
// the fee; the subsidy applies whenever the patient is subscribed at
// that point — including a subscription unlocked within this same
// call — capped at 40% of the fee and at the remaining bonus pool.
// The pre-check covers fee plus unlock cost; on insufficient funds no
// stored field changes.
func (s *WalletService) PayConsultation(ctx context.Context, in ports.PaymentInput) (*ports.PaymentResult, error) {
	patient, err := s.users.FindByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.users.FindByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	fee := doctor.Fee()
	bonusCost := 0.0
	if in.IncludeBonus && !patient.IsSubscribed {
		bonusCost = bonusUnlockCost
	}

	if patient.WalletBalance < fee+bonusCost {
		return nil, domain.ErrInsufficientFunds
	}

	wallet := patient.WalletBalance
	bonus := patient.BonusBalance
	subscribed := patient.IsSubscribed
	unlocked := false

	wallet -= bonusCost
	if in.IncludeBonus && !subscribed {
		bonus += bonusPoolCredit
		subscribed = true
		unlocked = true
	}

	wallet -= fee
	subsidy := 0.0
	if subscribed && bonus > 0 {
		subsidy = min(bonus, fee*subsidyRate)
		bonus -= subsidy
		wallet += subsidy
	}

	if _, err := s.users.Update(ctx, patient.ID, ports.UserUpdate{
		WalletBalance: &wallet,
		BonusBalance:  &bonus,
		IsSubscribed:  &subscribed,
	}); err != nil {
		return nil, fmt.Errorf("pay consultation: %w", err)
	}

	txID := "tx-" + uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	patientTx := domain.Transaction{
		ID:          txID,
		Type:        domain.TxPayment,
		Amount:      fee,
		Status:      domain.TxCompleted,
		Date:        now,
		Method:      "WALLET",
		Description: fmt.Sprintf("Consultation - %s. Session verified.", doctor.Name),
		RecipientID: doctor.ID,
	}
	if err := s.users.PrependTransaction(ctx, patient.ID, patientTx); err != nil {
		return nil, fmt.Errorf("pay consultation: record patient entry: %w", err)
	}

	// The doctor-side credit shares the same id but is a separate,
	// non-atomic write. A failure here leaves the patient debit in
	// place; it is logged, not rolled back.
	doctorTx := domain.Transaction{
		ID:          txID,
		Type:        domain.TxConsultancyFee,
		Amount:      fee,
		Status:      domain.TxPaid,
		Date:        now,
		Method:      "PLATFORM",
		Description: fmt.Sprintf("Consultancy deposit - Patient: %s. Authorised.", patient.Name),
		SenderID:    patient.ID,
	}
	if err := s.users.PrependTransaction(ctx, doctor.ID, doctorTx); err != nil {
		s.logger.Error().Err(err).
			Str("transaction_id", txID).
			Str("doctor_id", doctor.ID).
			Msg("failed to record doctor-side credit")
	}

	if err := s.sessions.Mark(ctx, patient.ID, doctor.ID); err != nil {
		s.logger.Warn().Err(err).Str("patient_id", patient.ID).Msg("failed to mark paid session")
	}

	s.logger.Info().
		Str("transaction_id", txID).
		Str("patient_id", patient.ID).
		Str("doctor_id", doctor.ID).
		Float64("fee", fee).
		Float64("subsidy", subsidy).
		Bool("bonus_unlocked", unlocked).
		Msg("consultation paid")

	return &ports.PaymentResult{
		TransactionID: txID,
		Fee:           fee,
		Subsidy:       subsidy,
		WalletBalance: wallet,
		BonusBalance:  bonus,
		BonusUnlocked: unlocked,
	}, nil
}

// PenalizeFalseSOS debits the responding doctor's fee from the patient
// with no balance check; the wallet may go negative. The debit is the
// whole record of the event — no doctor-side credit is written.
func (s *WalletService) PenalizeFalseSOS(ctx context.Context, patientID, doctorID string) (*domain.Transaction, error) {
	patient, err := s.users.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.users.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	fee := doctor.Fee()
	wallet := patient.WalletBalance - fee
	if _, err := s.users.Update(ctx, patient.ID, ports.UserUpdate{WalletBalance: &wallet}); err != nil {
		return nil, fmt.Errorf("false sos penalty: %w", err)
	}

	tx := domain.Transaction{
		ID:          "tx-" + uuid.NewString(),
		Type:        domain.TxConsultancyFee,
		Amount:      fee,
		Status:      domain.TxPaid,
		Date:        time.Now().UTC().Format(time.RFC3339),
		Method:      "DEDUCTION",
		Description: fmt.Sprintf("False SOS Penalty - Session with %s", doctor.Name),
	}
	if err := s.users.PrependTransaction(ctx, patient.ID, tx); err != nil {
		return nil, fmt.Errorf("false sos penalty: record entry: %w", err)
	}

	s.logger.Warn().
		Str("patient_id", patient.ID).
		Str("doctor_id", doctor.ID).
		Float64("fee", fee).
		Float64("wallet_balance", wallet).
		Msg("false SOS penalty applied")

	return &tx, nil
}

// Deposit credits the wallet and records the top-up.
func (s *WalletService) Deposit(ctx context.Context, in ports.DepositInput) (*domain.User, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	method := in.Method
	if method == "" {
		method = "CARD"
	}

	wallet := user.WalletBalance + in.Amount
	updated, err := s.users.Update(ctx, user.ID, ports.UserUpdate{WalletBalance: &wallet})
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	tx := domain.Transaction{
		ID:          "tx-" + uuid.NewString(),
		Type:        domain.TxDeposit,
		Amount:      in.Amount,
		Status:      domain.TxCompleted,
		Date:        time.Now().UTC().Format(time.RFC3339),
		Method:      method,
		Description: "Wallet top-up",
	}
	if err := s.users.PrependTransaction(ctx, user.ID, tx); err != nil {
		return nil, fmt.Errorf("deposit: record entry: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Float64("amount", in.Amount).Msg("deposit credited")
	updated.Transactions = append([]domain.Transaction{tx}, updated.Transactions...)
	return updated, nil
}

// ActivateBonus unlocks the subsidy pool outside of a payment.
func (s *WalletService) ActivateBonus(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsSubscribed {
		return nil, domain.ErrAlreadySubscribed
	}
	if user.WalletBalance < bonusUnlockCost {
		return nil, domain.ErrInsufficientFunds
	}

	wallet := user.WalletBalance - bonusUnlockCost
	bonus := user.BonusBalance + bonusPoolCredit
	subscribed := true
	updated, err := s.users.Update(ctx, user.ID, ports.UserUpdate{
		WalletBalance: &wallet,
		BonusBalance:  &bonus,
		IsSubscribed:  &subscribed,
	})
	if err != nil {
		return nil, fmt.Errorf("activate bonus: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("subsidy bonus unlocked")
	return updated, nil
}

// HasActiveSession reports whether a prior payment still covers a new
// call attempt with the doctor. Subscribed patients always pass. The
// Redis marker is checked first; when it is unavailable the decision
// falls back to scanning the patient's ledger.
func (s *WalletService) HasActiveSession(ctx context.Context, patientID, doctorID string) (bool, error) {
	patient, err := s.users.FindByID(ctx, patientID)
	if err != nil {
		return false, err
	}
	if patient.IsSubscribed {
		return true, nil
	}

	active, err := s.sessions.IsActive(ctx, patientID, doctorID)
	if err != nil {
		s.logger.Warn().Err(err).Str("patient_id", patientID).Msg("session marker check failed, scanning ledger")
	} else if active {
		return true, nil
	}

	cutoff := time.Now().UTC().Add(-SessionWindow)
	for _, tx := range patient.Transactions {
		if tx.Type != domain.TxPayment || tx.RecipientID != doctorID {
			continue
		}
		paidAt, err := time.Parse(time.RFC3339, tx.Date)
		if err != nil {
			continue
		}
		if paidAt.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}
