package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// PresenceStore abstracts the doctor presence heartbeat store (Redis).
type PresenceStore interface {
	Heartbeat(ctx context.Context, userID string) error
	IsOnline(ctx context.Context, userID string) (bool, error)
}

// DirectoryService covers roster seeding, lookup, partial updates,
// freezing, diagnoses and ledger reads.
type DirectoryService struct {
	users    ports.UserRepository
	presence PresenceStore
	logger   zerolog.Logger
}

func NewDirectoryService(users ports.UserRepository, presence PresenceStore, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{users: users, presence: presence, logger: logger}
}

// Seed writes the default roster when the store is empty. Ids are
// index-derived so a reset followed by Seed reproduces the roster
// identically.
func (s *DirectoryService) Seed(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	for idx, rec := range seedRoster {
		role, ok := roleLabels[rec.Role]
		if !ok {
			role = domain.RolePatient
		}

		balance := rec.Balance
		if balance <= 0 {
			if role == domain.RolePatient {
				balance = defaultPatientBalance
			} else {
				balance = defaultStaffBalance
			}
		}

		user := domain.User{
			ID:            fmt.Sprintf("u-%02d", idx),
			Name:          strings.TrimSpace(rec.Name),
			Email:         strings.TrimSpace(rec.Email),
			Role:          role,
			Avatar:        avatarURL(rec.Name),
			PasswordHash:  string(hash),
			WalletBalance: balance,
			IsSubscribed:  false,
			IsOnline:      true,
			Transactions:  []domain.Transaction{},
			MedicalRecord: medicalRecordFor(rec, role),
		}
		if role == domain.RoleDoctor {
			fee := domain.DefaultConsultationFee
			user.ConsultationFee = &fee
		}
		user.Specialization = rec.Specialization
		user.Location = rec.Location

		if err := s.users.Insert(ctx, &user); err != nil {
			return fmt.Errorf("seed: insert %s: %w", user.ID, err)
		}
	}

	s.logger.Info().Int("users", len(seedRoster)).Msg("default roster seeded")
	return nil
}

func avatarURL(name string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name)
}

// medicalRecordFor builds the seeded record. Every patient gets a
// record — an empty one when the roster carries no clinical data — so
// diagnoses can always be attached later.
func medicalRecordFor(rec seedRecord, role domain.Role) *domain.PatientRecord {
	if role != domain.RolePatient {
		return nil
	}
	mr := &domain.PatientRecord{
		Age:        rec.Age,
		Ailments:   []string{},
		Conditions: []string{},
		Diagnoses:  []domain.Diagnosis{},
	}
	if rec.Age > 0 {
		mr.LastCheckup = time.Now().UTC().Format(time.RFC3339)
	}
	if rec.Ailments != nil {
		mr.Ailments = rec.Ailments
	}
	if rec.Conditions != nil {
		mr.Conditions = rec.Conditions
	}
	return mr
}

func (s *DirectoryService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *DirectoryService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// ListDoctors returns the doctor roster with presence merged in: a
// live heartbeat marker overrides the stored flag.
func (s *DirectoryService) ListDoctors(ctx context.Context) ([]*domain.User, error) {
	doctors, err := s.users.ListByRole(ctx, domain.RoleDoctor)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		online, err := s.presence.IsOnline(ctx, d.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("doctor_id", d.ID).Msg("presence check failed, using stored flag")
			continue
		}
		d.IsOnline = d.IsOnline || online
	}
	return doctors, nil
}

func (s *DirectoryService) Update(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	if upd == (ports.UserUpdate{}) {
		return s.users.FindByID(ctx, id)
	}
	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("user updated")
	return user, nil
}

func (s *DirectoryService) SetFrozen(ctx context.Context, id string, frozen bool) (*domain.User, error) {
	user, err := s.users.Update(ctx, id, ports.UserUpdate{IsFrozen: &frozen})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Bool("frozen", frozen).Msg("account freeze toggled")
	return user, nil
}

// AddDiagnosis prepends a clinical finding to the patient's record.
func (s *DirectoryService) AddDiagnosis(ctx context.Context, in ports.DiagnosisInput) (*domain.Diagnosis, error) {
	doctor, err := s.users.FindByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	d := domain.Diagnosis{
		ID:           "dx-" + uuid.NewString(),
		Date:         time.Now().UTC().Format(time.RFC3339),
		DoctorID:     doctor.ID,
		DoctorName:   doctor.Name,
		Condition:    in.Condition,
		Notes:        in.Notes,
		Prescription: in.Prescription,
	}
	if err := s.users.PrependDiagnosis(ctx, in.PatientID, d); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("patient_id", in.PatientID).
		Str("doctor_id", doctor.ID).
		Str("condition", in.Condition).
		Msg("diagnosis recorded")
	return &d, nil
}

func (s *DirectoryService) Transactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Transactions, nil
}

// Heartbeat refreshes the caller's presence marker.
func (s *DirectoryService) Heartbeat(ctx context.Context, userID string) error {
	return s.presence.Heartbeat(ctx, userID)
}
