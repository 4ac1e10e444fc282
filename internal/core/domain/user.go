package domain

// Role identifies which surfaces and payment rules apply to a user.
type Role string

const (
	RolePatient      Role = "patient"
	RoleDoctor       Role = "doctor"
	RoleAdminCEO     Role = "admin_ceo"
	RoleAdminManager Role = "admin_manager"
	RoleAdminCSO     Role = "admin_cso"
	RoleAdminCMO     Role = "admin_cmo"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdminCEO, RoleAdminManager, RoleAdminCSO, RoleAdminCMO:
		return true
	}
	return false
}

// IsAdmin reports whether r grants administrative access.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdminCEO, RoleAdminManager, RoleAdminCSO, RoleAdminCMO:
		return true
	}
	return false
}

// CanDiagnose reports whether r may record diagnoses. The CMO is a
// practicing doctor and keeps clinical privileges.
func (r Role) CanDiagnose() bool {
	return r == RoleDoctor || r == RoleAdminCMO
}

// DefaultConsultationFee is applied when a doctor has not set a fee.
const DefaultConsultationFee = 25.0

// BankAccount holds a user's payout destination.
type BankAccount struct {
	BankName      string `json:"bank_name" bson:"bank_name"`
	AccountNumber string `json:"account_number" bson:"account_number"`
	AccountName   string `json:"account_name" bson:"account_name"`
}

// Diagnosis is a single clinical finding recorded against a patient.
// Diagnoses are prepend-only: never edited or removed once written.
type Diagnosis struct {
	ID           string `json:"id" bson:"id"`
	Date         string `json:"date" bson:"date"`
	DoctorID     string `json:"doctor_id" bson:"doctor_id"`
	DoctorName   string `json:"doctor_name" bson:"doctor_name"`
	Condition    string `json:"condition" bson:"condition"`
	Notes        string `json:"notes" bson:"notes"`
	Prescription string `json:"prescription,omitempty" bson:"prescription,omitempty"`
}

// PatientRecord is the medical record attached to patient accounts.
type PatientRecord struct {
	Age         int         `json:"age" bson:"age"`
	Ailments    []string    `json:"ailments" bson:"ailments"`
	Conditions  []string    `json:"conditions" bson:"conditions"`
	LastCheckup string      `json:"last_checkup" bson:"last_checkup"`
	Diagnoses   []Diagnosis `json:"diagnoses" bson:"diagnoses"`
}

// User is the central account record. ID is unique and immutable after
// creation. Wallet and bonus balances are plain decimals; only the
// standard payment path guards against overdraft (the false-SOS
// penalty deliberately does not).
type User struct {
	ID              string         `json:"id" bson:"_id"`
	Name            string         `json:"name" bson:"name"`
	Email           string         `json:"email" bson:"email"`
	Role            Role           `json:"role" bson:"role"`
	Avatar          string         `json:"avatar" bson:"avatar"`
	PasswordHash    string         `json:"-" bson:"password_hash"`
	WalletBalance   float64        `json:"wallet_balance" bson:"wallet_balance"`
	BonusBalance    float64        `json:"bonus_balance" bson:"bonus_balance"`
	IsSubscribed    bool           `json:"is_subscribed" bson:"is_subscribed"`
	IsFrozen        bool           `json:"is_frozen" bson:"is_frozen"`
	IsOnline        bool           `json:"is_online" bson:"is_online"`
	ConsultationFee *float64       `json:"consultation_fee,omitempty" bson:"consultation_fee,omitempty"`
	Specialization  string         `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Location        string         `json:"location,omitempty" bson:"location,omitempty"`
	BankAccount     *BankAccount   `json:"bank_account,omitempty" bson:"bank_account,omitempty"`
	MedicalRecord   *PatientRecord `json:"medical_record,omitempty" bson:"medical_record,omitempty"`
	Transactions    []Transaction  `json:"transactions" bson:"transactions"`
}

// Fee returns the doctor's consultation fee, falling back to the
// platform default when unset.
func (u *User) Fee() float64 {
	if u.ConsultationFee != nil {
		return *u.ConsultationFee
	}
	return DefaultConsultationFee
}
