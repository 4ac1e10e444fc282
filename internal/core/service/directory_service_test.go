package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Seed
// ---------------------------------------------------------------------------

func TestDirectoryService_Seed_WritesDefaultRoster(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewDirectoryService(repo, newStubPresenceStore(), discardLogger)

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	users, _ := repo.List(context.Background())
	if len(users) != len(seedRoster) {
		t.Fatalf("expected %d users, got %d", len(seedRoster), len(users))
	}

	first, _ := repo.FindByID(context.Background(), "u-00")
	if first == nil || first.Role != domain.RoleAdminCEO {
		t.Fatalf("u-00 should be the seeded CEO, got %+v", first)
	}
	if bcrypt.CompareHashAndPassword([]byte(first.PasswordHash), []byte(SeedPassword)) != nil {
		t.Fatalf("seeded password must verify against %q", SeedPassword)
	}
}

func TestDirectoryService_Seed_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewDirectoryService(repo, newStubPresenceStore(), discardLogger)

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	count, _ := repo.Count(context.Background())
	if count != int64(len(seedRoster)) {
		t.Fatalf("reseeding a populated store must be a no-op, got %d users", count)
	}
}

func TestDirectoryService_Seed_RoleDefaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewDirectoryService(repo, newStubPresenceStore(), discardLogger)

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	users, _ := repo.List(context.Background())
	for _, u := range users {
		switch {
		case u.Role == domain.RolePatient && u.WalletBalance != defaultPatientBalance:
			t.Fatalf("%s: patient balance expected %v, got %v", u.ID, defaultPatientBalance, u.WalletBalance)
		case u.Role != domain.RolePatient && u.WalletBalance != defaultStaffBalance:
			t.Fatalf("%s: staff balance expected %v, got %v", u.ID, defaultStaffBalance, u.WalletBalance)
		}

		if u.Role == domain.RoleDoctor {
			if u.ConsultationFee == nil || *u.ConsultationFee != domain.DefaultConsultationFee {
				t.Fatalf("%s: doctor must carry the default fee", u.ID)
			}
		}
		if u.Role == domain.RolePatient && u.MedicalRecord == nil {
			t.Fatalf("%s: every seeded patient needs a medical record", u.ID)
		}
		if u.Role != domain.RolePatient && u.MedicalRecord != nil {
			t.Fatalf("%s: staff must not carry a medical record", u.ID)
		}
	}
}

// ---------------------------------------------------------------------------
// Update / SetFrozen
// ---------------------------------------------------------------------------

func TestDirectoryService_Update_PartialMerge(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u-10", Name: "Old Name", Email: "old@x.com", WalletBalance: 50})
	svc := NewDirectoryService(repo, newStubPresenceStore(), discardLogger)

	name := "New Name"
	user, err := svc.Update(context.Background(), "u-10", ports.UserUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Name != "New Name" {
		t.Fatalf("name not updated")
	}
	if user.Email != "old@x.com" || user.WalletBalance != 50 {
		t.Fatalf("untouched fields must survive a partial update: %+v", user)
	}
}

func TestDirectoryService_Update_EmptyIsRead(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u-10", Name: "Someone"})
	repo.updateErr = errors.New("should not be called")
	svc := NewDirectoryService(repo, newStubPresenceStore(), discardLogger)

	user, err := svc.Update(context.Background(), "u-10", ports.UserUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if user.Name != "Someone" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestDirectoryService_SetFrozen(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u-10"})
	svc := NewDirectoryService(repo, newStubPresenceStore(), discardLogger)

	user, err := svc.SetFrozen(context.Background(), "u-10", true)
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if !user.IsFrozen {
		t.Fatalf("expected frozen account")
	}

	user, err = svc.SetFrozen(context.Background(), "u-10", false)
	if err != nil {
		t.Fatalf("unfreeze: %v", err)
	}
	if user.IsFrozen {
		t.Fatalf("expected unfrozen account")
	}
}

// ---------------------------------------------------------------------------
// AddDiagnosis
// ---------------------------------------------------------------------------

func TestDirectoryService_AddDiagnosis_Prepends(t *testing.T) {
	patient := &domain.User{
		ID:   "u-10",
		Role: domain.RolePatient,
		MedicalRecord: &domain.PatientRecord{
			Diagnoses: []domain.Diagnosis{{ID: "dx-old", Condition: "Malaria"}},
		},
	}
	doctor := &domain.User{ID: "u-02", Name: "Dr. Aisha Bello", Role: domain.RoleDoctor}
	repo := newStubUserRepo(patient, doctor)
	svc := NewDirectoryService(repo, newStubPresenceStore(), discardLogger)

	d, err := svc.AddDiagnosis(context.Background(), ports.DiagnosisInput{
		PatientID: "u-10",
		DoctorID:  "u-02",
		Condition: "Typhoid",
		Notes:     "Widal positive",
	})
	if err != nil {
		t.Fatalf("add diagnosis: %v", err)
	}
	if d.DoctorName != "Dr. Aisha Bello" {
		t.Fatalf("doctor name not resolved: %+v", d)
	}

	after, _ := repo.FindByID(context.Background(), "u-10")
	if len(after.MedicalRecord.Diagnoses) != 2 {
		t.Fatalf("expected 2 diagnoses, got %d", len(after.MedicalRecord.Diagnoses))
	}
	if after.MedicalRecord.Diagnoses[0].Condition != "Typhoid" {
		t.Fatalf("new diagnosis must be first, got %q", after.MedicalRecord.Diagnoses[0].Condition)
	}
}

func TestDirectoryService_AddDiagnosis_NoRecord(t *testing.T) {
	repo := newStubUserRepo(
		&domain.User{ID: "u-10", Role: domain.RolePatient},
		&domain.User{ID: "u-02", Role: domain.RoleDoctor},
	)
	svc := NewDirectoryService(repo, newStubPresenceStore(), discardLogger)

	_, err := svc.AddDiagnosis(context.Background(), ports.DiagnosisInput{PatientID: "u-10", DoctorID: "u-02", Condition: "X"})
	if !errors.Is(err, domain.ErrNoMedicalRecord) {
		t.Fatalf("expected ErrNoMedicalRecord, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListDoctors presence merge
// ---------------------------------------------------------------------------

func TestDirectoryService_ListDoctors_MergesPresence(t *testing.T) {
	repo := newStubUserRepo(
		&domain.User{ID: "u-02", Role: domain.RoleDoctor, IsOnline: false},
		&domain.User{ID: "u-03", Role: domain.RoleDoctor, IsOnline: false},
		&domain.User{ID: "u-10", Role: domain.RolePatient},
	)
	presence := newStubPresenceStore()
	svc := NewDirectoryService(repo, presence, discardLogger)

	if err := svc.Heartbeat(context.Background(), "u-02"); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}

	doctors, err := svc.ListDoctors(context.Background())
	if err != nil {
		t.Fatalf("list doctors: %v", err)
	}
	if len(doctors) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(doctors))
	}
	for _, d := range doctors {
		want := d.ID == "u-02"
		if d.IsOnline != want {
			t.Fatalf("%s: online=%v, want %v", d.ID, d.IsOnline, want)
		}
	}
}
