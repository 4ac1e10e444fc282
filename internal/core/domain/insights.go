package domain

// HealthInsights is the validated shape of an AI health analysis.
type HealthInsights struct {
	WellnessScore         float64  `json:"wellness_score"`
	HealthStatus          string   `json:"health_status"`
	LifestylePrescription []string `json:"lifestyle_prescription"`
	NutritionGuide        []string `json:"nutrition_guide"`
	RedFlags              []string `json:"red_flags"`
	NextSteps             string   `json:"next_steps"`
}

// FeedItem is one entry of a generated health feed. Severity is set
// for location-based items, Category for age-based ones.
type FeedItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	Category    string `json:"category,omitempty"`
}

// FeedBundle groups the two generated feeds returned together.
type FeedBundle struct {
	LocationFeed []FeedItem `json:"location_feed"`
	AgeFeed      []FeedItem `json:"age_feed"`
}
