package ports

import (
	"context"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// TriageMessage is one turn of a triage dialogue sent to the AI
// collaborator. Role is "user" or "assistant".
type TriageMessage struct {
	Role string
	Text string
}

// TriageClient is the narrow interface over the external generative-AI
// collaborator. Implementations must validate structured responses
// against the expected shape and fail with domain.ErrBadAIResponse
// instead of returning partial data.
type TriageClient interface {
	// Reply generates the assistant's next turn for a triage dialogue.
	Reply(ctx context.Context, history []TriageMessage) (string, error)
	// HealthInsights analyzes a medical record into a structured
	// wellness report.
	HealthInsights(ctx context.Context, record domain.PatientRecord) (*domain.HealthInsights, error)
	// FeedUpdates generates location- and age-targeted feed entries.
	FeedUpdates(ctx context.Context, location string, age int) (*domain.FeedBundle, error)
}

// InsightService exposes AI-derived content to the API layer.
type InsightService interface {
	HealthInsights(ctx context.Context, patientID string) (*domain.HealthInsights, error)
	Feed(ctx context.Context, patientID string) (*domain.FeedBundle, error)
}
