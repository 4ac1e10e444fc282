// Package ai implements the external generative-AI collaborator
// behind the ports.TriageClient interface. Responses to structured
// requests are validated against the expected shape before being
// returned; vendor output that does not match fails with
// domain.ErrBadAIResponse instead of propagating partial data.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// triageSystemPrompt is the clinical routing protocol the assistant
// operates under during free-text triage.
const triageSystemPrompt = `You are the HashDoctor clinical triage assistant.
- Never accept a single symptom at face value: ask follow-up questions until you have the full clinical picture.
- If the patient's input is vague or ambiguous, ask for clarification instead of guessing.
- Suggest home care for simple ailments (colds, mild fever, minor cuts, insect bites).
- For chest pain, difficulty breathing, high fever, severe trauma or confusion, refer the patient to a specialist from the platform directory and tell them to use the Call button.
- For life-threatening situations, tell the patient to press the SOS emergency button immediately.
- Close significant medical advice with: "This is for informational purposes and immediate guidance; please consult a qualified doctor if symptoms persist or for a formal diagnosis."`

// Client calls the OpenAI-compatible API for triage chat and
// structured extraction.
type Client struct {
	client *openai.Client
	model  string
}

// New constructs a collaborator client. Model falls back to a small
// default when empty.
func New(apiKey, model string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{client: openai.NewClient(apiKey), model: model}
}

// Reply generates the assistant's next turn for a triage dialogue.
func (c *Client) Reply(ctx context.Context, history []ports.TriageMessage) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: triageSystemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Text})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("triage reply: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrBadAIResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// HealthInsights analyzes a medical record into a wellness report.
func (c *Client) HealthInsights(ctx context.Context, record domain.PatientRecord) (*domain.HealthInsights, error) {
	prompt := fmt.Sprintf(
		"Analyze this patient record: Age: %d, Ailments: %s, Conditions: %s. "+
			"Respond with a JSON object containing exactly these keys: "+
			"wellnessScore (number 0-100), healthStatus (string), "+
			"lifestylePrescription (array of strings), nutritionGuide (array of strings), "+
			"redFlags (array of strings), nextSteps (string).",
		record.Age,
		strings.Join(record.Ailments, ", "),
		strings.Join(record.Conditions, ", "),
	)

	raw, err := c.structured(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseInsights(raw)
}

// FeedUpdates generates location- and age-targeted feed entries.
func (c *Client) FeedUpdates(ctx context.Context, location string, age int) (*domain.FeedBundle, error) {
	prompt := fmt.Sprintf(
		"Provide 3 location-based health recommendations for someone in %s and "+
			"3 age-specific health updates for a %d-year-old. "+
			"Respond with a JSON object with keys locationFeed and ageFeed. "+
			"locationFeed items have title, description and severity (low, medium or high); "+
			"ageFeed items have title, description and category (e.g. Screening, Nutrition, Fitness).",
		location, age,
	)

	raw, err := c.structured(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseFeed(raw)
}

// structured runs a JSON-mode completion and returns the raw payload.
func (c *Client) structured(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a clinical data service. Respond with a single JSON object and nothing else."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("structured request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.ErrBadAIResponse
	}
	return []byte(stripFences(resp.Choices[0].Message.Content)), nil
}

// stripFences removes a markdown code fence the model may wrap the
// JSON payload in despite JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// insightsPayload mirrors the vendor response shape for the wellness
// report.
type insightsPayload struct {
	WellnessScore         *float64 `json:"wellnessScore"`
	HealthStatus          string   `json:"healthStatus"`
	LifestylePrescription []string `json:"lifestylePrescription"`
	NutritionGuide        []string `json:"nutritionGuide"`
	RedFlags              []string `json:"redFlags"`
	NextSteps             string   `json:"nextSteps"`
}

func parseInsights(raw []byte) (*domain.HealthInsights, error) {
	var p insightsPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadAIResponse, err)
	}
	if p.WellnessScore == nil || p.HealthStatus == "" || p.NextSteps == "" ||
		p.LifestylePrescription == nil || p.NutritionGuide == nil || p.RedFlags == nil {
		return nil, fmt.Errorf("%w: missing required insight fields", domain.ErrBadAIResponse)
	}

	return &domain.HealthInsights{
		WellnessScore:         *p.WellnessScore,
		HealthStatus:          p.HealthStatus,
		LifestylePrescription: p.LifestylePrescription,
		NutritionGuide:        p.NutritionGuide,
		RedFlags:              p.RedFlags,
		NextSteps:             p.NextSteps,
	}, nil
}

// feedPayload mirrors the vendor response shape for feed generation.
type feedPayload struct {
	LocationFeed []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Severity    string `json:"severity"`
	} `json:"locationFeed"`
	AgeFeed []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	} `json:"ageFeed"`
}

func parseFeed(raw []byte) (*domain.FeedBundle, error) {
	var p feedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadAIResponse, err)
	}
	if p.LocationFeed == nil || p.AgeFeed == nil {
		return nil, fmt.Errorf("%w: missing feed collections", domain.ErrBadAIResponse)
	}

	bundle := &domain.FeedBundle{
		LocationFeed: make([]domain.FeedItem, 0, len(p.LocationFeed)),
		AgeFeed:      make([]domain.FeedItem, 0, len(p.AgeFeed)),
	}
	for _, it := range p.LocationFeed {
		if it.Title == "" || it.Description == "" {
			return nil, fmt.Errorf("%w: incomplete location feed item", domain.ErrBadAIResponse)
		}
		bundle.LocationFeed = append(bundle.LocationFeed, domain.FeedItem{
			Title: it.Title, Description: it.Description, Severity: it.Severity,
		})
	}
	for _, it := range p.AgeFeed {
		if it.Title == "" || it.Description == "" {
			return nil, fmt.Errorf("%w: incomplete age feed item", domain.ErrBadAIResponse)
		}
		bundle.AgeFeed = append(bundle.AgeFeed, domain.FeedItem{
			Title: it.Title, Description: it.Description, Category: it.Category,
		})
	}
	return bundle, nil
}
