package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	updateErr error            // if set, Update returns this error
	txErr     map[string]error // per-user PrependTransaction failures
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User), txErr: make(map[string]error)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByIdentity(_ context.Context, identity string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, identity) || strings.EqualFold(u.Name, identity) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	all, _ := r.List(context.Background())
	out := all[:0]
	for _, u := range all {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// Update mirrors the real Mongo repo: only non-nil fields are written.
func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.WalletBalance != nil {
		u.WalletBalance = *upd.WalletBalance
	}
	if upd.BonusBalance != nil {
		u.BonusBalance = *upd.BonusBalance
	}
	if upd.IsSubscribed != nil {
		u.IsSubscribed = *upd.IsSubscribed
	}
	if upd.IsFrozen != nil {
		u.IsFrozen = *upd.IsFrozen
	}
	if upd.IsOnline != nil {
		u.IsOnline = *upd.IsOnline
	}
	if upd.ConsultationFee != nil {
		u.ConsultationFee = upd.ConsultationFee
	}
	if upd.Specialization != nil {
		u.Specialization = *upd.Specialization
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}
	if upd.BankAccount != nil {
		u.BankAccount = upd.BankAccount
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) PrependTransaction(_ context.Context, userID string, tx domain.Transaction) error {
	if err := r.txErr[userID]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Transactions = append([]domain.Transaction{tx}, u.Transactions...)
	return nil
}

func (r *stubUserRepo) PrependDiagnosis(_ context.Context, patientID string, d domain.Diagnosis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[patientID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.MedicalRecord == nil {
		return domain.ErrNoMedicalRecord
	}
	u.MedicalRecord.Diagnoses = append([]domain.Diagnosis{d}, u.MedicalRecord.Diagnoses...)
	return nil
}

func (r *stubUserRepo) ReplaceAll(_ context.Context, users []domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]*domain.User, len(users))
	for i := range users {
		clone := users[i]
		r.users[clone.ID] = &clone
	}
	return nil
}

func (r *stubUserRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]*domain.User)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory stub chat repository
// ---------------------------------------------------------------------------

type stubChatRepo struct {
	mu      sync.Mutex
	threads map[string][]domain.Message
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{threads: make(map[string][]domain.Message)}
}

func (r *stubChatRepo) Append(_ context.Context, key string, msg domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads[key] = append(r.threads[key], msg)
	return nil
}

func (r *stubChatRepo) AppendBulk(_ context.Context, key string, msgs []domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads[key] = append(r.threads[key], msgs...)
	return nil
}

func (r *stubChatRepo) Thread(_ context.Context, key string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.threads[key]
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (r *stubChatRepo) All(_ context.Context) (map[string][]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]domain.Message, len(r.threads))
	for k, v := range r.threads {
		msgs := make([]domain.Message, len(v))
		copy(msgs, v)
		out[k] = msgs
	}
	return out, nil
}

func (r *stubChatRepo) ReplaceAll(_ context.Context, chats map[string][]domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads = make(map[string][]domain.Message, len(chats))
	for k, v := range chats {
		msgs := make([]domain.Message, len(v))
		copy(msgs, v)
		r.threads[k] = msgs
	}
	return nil
}

func (r *stubChatRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads = make(map[string][]domain.Message)
	return nil
}

// ---------------------------------------------------------------------------
// Stub session and presence stores
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	marked  map[string]bool
	markErr error
	isErr   error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{marked: make(map[string]bool)}
}

func (s *stubSessionStore) Mark(_ context.Context, patientID, doctorID string) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.marked[patientID+":"+doctorID] = true
	return nil
}

func (s *stubSessionStore) IsActive(_ context.Context, patientID, doctorID string) (bool, error) {
	if s.isErr != nil {
		return false, s.isErr
	}
	return s.marked[patientID+":"+doctorID], nil
}

type stubPresenceStore struct {
	online map[string]bool
}

func newStubPresenceStore() *stubPresenceStore {
	return &stubPresenceStore{online: make(map[string]bool)}
}

func (s *stubPresenceStore) Heartbeat(_ context.Context, userID string) error {
	s.online[userID] = true
	return nil
}

func (s *stubPresenceStore) IsOnline(_ context.Context, userID string) (bool, error) {
	return s.online[userID], nil
}
