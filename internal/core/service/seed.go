package service

import "github.com/hashdoctor/telehealth-api/internal/core/domain"

// SeedPassword is the default credential assigned to every seeded
// account; it is bcrypt-hashed before storage.
const SeedPassword = "password123"

const (
	defaultPatientBalance = 50.0
	defaultStaffBalance   = 150.0
)

// roleLabels maps roster labels to the closed role enum.
var roleLabels = map[string]domain.Role{
	"Doctor":  domain.RoleDoctor,
	"CEO":     domain.RoleAdminCEO,
	"CMO":     domain.RoleAdminCMO,
	"CFO":     domain.RoleAdminCSO,
	"Manager": domain.RoleAdminManager,
	"Owner":   domain.RoleAdminCEO,
	"Patient": domain.RolePatient,
}

// seedRecord is one entry of the fixed clinical roster.
type seedRecord struct {
	Name           string
	Email          string
	Role           string
	Balance        float64
	Specialization string
	Location       string
	Age            int
	Ailments       []string
	Conditions     []string
}

// seedRoster is the default clinical staff, administration and patient
// list written on first run. Order is significant: ids are derived
// from the index, so reseeding after a reset reproduces the roster
// identically.
var seedRoster = []seedRecord{
	{Name: "Colin Aoaeh", Email: "colinm.aoaeh@gmail.com", Role: "CEO"},
	{Name: "Colin Aoaeh", Email: "colinm.aoaeh@yahoo.com", Role: "CEO"},
	{Name: "Dr. Titus Ayerga", Email: "tyesio@yahoo.com", Role: "Doctor",
		Specialization: "General Practice & Family Medicine", Location: "Kano, Nigeria"},
	{Name: "Dr. Ukachi Ukachukwu", Email: "ukachukwuu@gmail.com", Role: "Doctor",
		Specialization: "Internal Medicine & Complex Care", Location: "Frankfurt, Germany"},
	{Name: "Dr. Amakom Nneka", Email: "amakomnneka@yahoo.com", Role: "Doctor",
		Specialization: "Pediatrics & Neonatal Health", Location: "Abuja, Nigeria"},
	{Name: "Ella Aoaeh", Email: "queenzylove94@gmail.com", Role: "CFO"},
	{Name: "Dr. Ukachi Ukachukwu", Email: "ukachukwuu@gmail.com", Role: "CMO",
		Specialization: "Internal Medicine", Location: "Frankfurt, Germany"},
	{Name: "Dr. Titus Ayerga", Email: "tyesio@yahoo.com", Role: "Manager",
		Specialization: "General Practice", Location: "Kano, Nigeria"},

	{Name: "Test Patient", Email: "test@test.com", Role: "Patient",
		Age: 25, Ailments: []string{"Sample Fever"}},
	{Name: "Colin Test (Hotmail)", Email: "colinm.aoaeh@hotmail.com", Role: "Patient",
		Age: 45, Ailments: []string{"General Wellness"}},
	{Name: "Guinevere Aoaeh", Email: "bulli55@gmail.com", Role: "Patient",
		Age: 65, Ailments: []string{"Joint Pain"}, Conditions: []string{"Hypertension"}},
	{Name: "Bernice Aoaeh", Email: "summitschoolstar@gmail.com", Role: "Patient",
		Age: 30, Ailments: []string{"Fatigue"}},
	{Name: "Chinedu Amakom", Email: "chanya", Role: "Patient"},
	{Name: "Maxim Okonghae", Email: "maxximovitch@yahoo.com", Role: "Patient"},
	{Name: "Paul Nkansar", Email: "pnbanks@yahoo.com", Role: "Patient"},
	{Name: "Brian Aoaeh", Email: "laun_bb@yahoo.com", Role: "Patient"},
	{Name: "Bukkie Allison", Email: "hadassahallie@yahoo.com", Role: "Patient"},
	{Name: "Nneka Amakom", Email: "amakomnneka@yahoo.com", Role: "Patient"},
}
