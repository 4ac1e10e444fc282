package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// InsightService derives wellness reports and feed content from a
// patient's record via the AI collaborator.
type InsightService struct {
	users  ports.UserRepository
	triage ports.TriageClient
	logger zerolog.Logger
}

func NewInsightService(users ports.UserRepository, triage ports.TriageClient, logger zerolog.Logger) *InsightService {
	return &InsightService{users: users, triage: triage, logger: logger}
}

// HealthInsights analyzes the patient's medical record.
func (s *InsightService) HealthInsights(ctx context.Context, patientID string) (*domain.HealthInsights, error) {
	patient, err := s.users.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient.MedicalRecord == nil {
		return nil, domain.ErrNoMedicalRecord
	}

	insights, err := s.triage.HealthInsights(ctx, *patient.MedicalRecord)
	if err != nil {
		s.logger.Error().Err(err).Str("patient_id", patientID).Msg("health insight generation failed")
		return nil, err
	}
	return insights, nil
}

// Feed generates location- and age-targeted health feed entries.
func (s *InsightService) Feed(ctx context.Context, patientID string) (*domain.FeedBundle, error) {
	patient, err := s.users.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	location := patient.Location
	if location == "" {
		location = "your area"
	}
	age := 0
	if patient.MedicalRecord != nil {
		age = patient.MedicalRecord.Age
	}

	feed, err := s.triage.FeedUpdates(ctx, location, age)
	if err != nil {
		s.logger.Error().Err(err).Str("patient_id", patientID).Msg("feed generation failed")
		return nil, err
	}
	return feed, nil
}
