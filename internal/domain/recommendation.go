package domain

import "time"

// Recommendation represents a collaboration suggestion generated for a
// matched pair. The pair is stored in canonical order; regeneration
// overwrites the prior suggestion.
type Recommendation struct {
	ID      string `gorm:"type:text;primaryKey" json:"id"`
	UserAID string `gorm:"type:text;not null;uniqueIndex:idx_recommendations_pair" json:"user_a_id"`
	UserBID string `gorm:"type:text;not null;uniqueIndex:idx_recommendations_pair" json:"user_b_id"`

	MatchScore  float64 `json:"match_score"`
	Title       string  `gorm:"type:text;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"type:text" json:"category"`

	// Reasoning carries the generation breakdown, including the
	// ai_generated flag distinguishing model output from the
	// deterministic template catalog.
	Reasoning JSONMap `gorm:"type:text" json:"reasoning,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Recommendation.
func (Recommendation) TableName() string {
	return "recommendations"
}
