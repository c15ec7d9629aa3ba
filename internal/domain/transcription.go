package domain

import "time"

// TranscriptionStatus represents the status of a transcription record.
type TranscriptionStatus string

const (
	TranscriptionStatusPending    TranscriptionStatus = "pending"
	TranscriptionStatusProcessing TranscriptionStatus = "processing"
	TranscriptionStatusCompleted  TranscriptionStatus = "completed"
	TranscriptionStatusFailed     TranscriptionStatus = "failed"
)

// Transcription represents the speech-to-text result for a video.
// Each video has at most one transcription; re-running the stage
// replaces the existing record.
type Transcription struct {
	ID      string `gorm:"type:text;primaryKey" json:"id"`
	VideoID string `gorm:"type:text;not null;uniqueIndex:idx_transcriptions_video" json:"video_id"`

	Text       string    `gorm:"type:text" json:"text"`
	Segments   JSONArray `gorm:"type:text" json:"segments,omitempty"`
	Language   string    `gorm:"type:text" json:"language,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`

	Status   TranscriptionStatus `gorm:"type:text;default:pending" json:"status"`
	Provider string              `gorm:"type:text" json:"provider,omitempty"`

	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Transcription.
func (Transcription) TableName() string {
	return "transcriptions"
}
