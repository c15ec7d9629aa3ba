package domain

import "time"

// AstroProfile represents a user's symbolic profile: birth data, the
// resolved natal chart, a derived embedding, and narrative enrichment.
// Each user has at most one profile; recalculation overwrites it.
type AstroProfile struct {
	ID     string `gorm:"type:text;primaryKey" json:"id"`
	UserID string `gorm:"type:text;not null;uniqueIndex:idx_astro_profiles_user" json:"user_id"`

	BirthDate  string `gorm:"type:text;not null" json:"birth_date"` // YYYY-MM-DD
	BirthTime  string `gorm:"type:text" json:"birth_time,omitempty"` // HH:MM
	BirthPlace string `gorm:"type:text;not null" json:"birth_place"`

	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `gorm:"type:text" json:"city,omitempty"`
	Country     string  `gorm:"type:text" json:"country,omitempty"`
	Timezone    string  `gorm:"type:text" json:"timezone,omitempty"`
	GeocodeMock bool    `json:"geocode_mock"`

	SunSign    string `gorm:"type:text" json:"sun_sign"`
	MoonSign   string `gorm:"type:text" json:"moon_sign"`
	RisingSign string `gorm:"type:text" json:"rising_sign"`

	Planets     JSONMap   `gorm:"type:text" json:"planets,omitempty"`
	Houses      JSONArray `gorm:"type:text" json:"houses,omitempty"`
	ChartMock   bool      `json:"chart_mock"`
	ChartSource string    `gorm:"type:text" json:"chart_source,omitempty"` // api, fallback

	Embedding     Vector `gorm:"type:text" json:"-"`
	EmbeddingMock bool   `json:"embedding_mock,omitempty"`

	// Narrative enrichment, filled asynchronously after chart calculation.
	Archetype     string `gorm:"type:text" json:"archetype,omitempty"`
	Phrase        string `gorm:"type:text" json:"phrase,omitempty"`
	ProfileText   string `gorm:"type:text" json:"profile_text,omitempty"`
	DominantColor string `gorm:"type:text" json:"dominant_color,omitempty"`

	CalculatedAt *time.Time `json:"calculated_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the database table name for AstroProfile.
func (AstroProfile) TableName() string {
	return "astro_profiles"
}

// HasEmbedding reports whether a profile embedding has been computed.
func (p *AstroProfile) HasEmbedding() bool {
	return len(p.Embedding) > 0
}

// HasCompleteBirthData reports whether the fields required for chart
// calculation are present. Birth time is optional; noon is assumed.
func (p *AstroProfile) HasCompleteBirthData() bool {
	return p.BirthDate != "" && p.BirthPlace != ""
}
