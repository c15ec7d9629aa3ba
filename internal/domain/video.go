package domain

import "time"

// Video represents an uploaded pitch video and the state accumulated by
// each pipeline stage: transcript, analysis, score, and embedding.
type Video struct {
	ID          string `gorm:"type:text;primaryKey" json:"id"`
	UserID      string `gorm:"type:text;not null;index:idx_videos_user" json:"user_id"`
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	StorageKey      string `gorm:"type:text" json:"storage_key"`
	FileName        string `gorm:"type:text" json:"file_name,omitempty"`
	FileSize        int64  `json:"file_size,omitempty"`
	MimeType        string `gorm:"type:text" json:"mime_type,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`

	Status       VideoStatus `gorm:"type:text;index:idx_videos_status;default:draft" json:"status"`
	ErrorMessage string      `gorm:"type:text" json:"error_message,omitempty"`

	TranscriptText string  `gorm:"type:text" json:"transcript_text,omitempty"`
	Analysis       JSONMap `gorm:"type:text" json:"analysis,omitempty"`
	AIScore        float64 `json:"ai_score,omitempty"`

	Embedding     Vector `gorm:"type:text" json:"-"`
	EmbeddingMock bool   `json:"embedding_mock,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Video.
func (Video) TableName() string {
	return "videos"
}

// HasEmbedding reports whether a content embedding has been computed.
func (v *Video) HasEmbedding() bool {
	return len(v.Embedding) > 0
}
