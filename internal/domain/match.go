package domain

import "time"

// Match represents a scored compatibility between two users. The pair is
// stored in canonical order (UserAID < UserBID) so each unordered pair
// maps to exactly one row.
type Match struct {
	ID      string `gorm:"type:text;primaryKey" json:"id"`
	UserAID string `gorm:"type:text;not null;uniqueIndex:idx_matches_pair" json:"user_a_id"`
	UserBID string `gorm:"type:text;not null;uniqueIndex:idx_matches_pair" json:"user_b_id"`

	VectorSimilarity   float64 `json:"vector_similarity"`
	AstroCompatibility float64 `json:"astro_compatibility"`
	OverallScore       float64 `gorm:"index:idx_matches_score" json:"overall_score"`

	Details JSONMap `gorm:"type:text" json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Match.
func (Match) TableName() string {
	return "matches"
}

// CanonicalPair orders two user ids so that the smaller id comes first.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// Other returns the counterpart user id for a match involving userID.
func (m *Match) Other(userID string) string {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}
