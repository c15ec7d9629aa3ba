package domain

// VideoStatus represents the processing status of a video record.
// A video moves forward through the pipeline one status at a time;
// VideoStatusFailed and VideoStatusPublished are terminal.
type VideoStatus string

const (
	VideoStatusDraft        VideoStatus = "draft"
	VideoStatusUploaded     VideoStatus = "uploaded"
	VideoStatusProcessing   VideoStatus = "processing"
	VideoStatusTranscribing VideoStatus = "transcribing"
	VideoStatusTranscribed  VideoStatus = "transcribed"
	VideoStatusAnalyzing    VideoStatus = "analyzing"
	VideoStatusAnalyzed     VideoStatus = "analyzed"
	VideoStatusPublished    VideoStatus = "published"
	VideoStatusFailed       VideoStatus = "failed"
)

// videoTransitions is the set of allowed forward transitions.
// Any non-terminal status may additionally move to failed, and
// failed may be reset to draft by an operator.
var videoTransitions = map[VideoStatus][]VideoStatus{
	VideoStatusDraft:        {VideoStatusUploaded},
	VideoStatusUploaded:     {VideoStatusProcessing, VideoStatusTranscribing},
	VideoStatusProcessing:   {VideoStatusTranscribing},
	VideoStatusTranscribing: {VideoStatusTranscribed},
	VideoStatusTranscribed:  {VideoStatusAnalyzing},
	VideoStatusAnalyzing:    {VideoStatusAnalyzed},
	VideoStatusAnalyzed:     {VideoStatusPublished},
	VideoStatusFailed:       {VideoStatusDraft},
}

// IsTerminal reports whether no pipeline stage may move the video further.
// failed remains resettable to draft by an operator, but no stage
// transitions out of it.
func (s VideoStatus) IsTerminal() bool {
	return s == VideoStatusPublished || s == VideoStatusFailed
}

// CanTransition reports whether moving from s to target is allowed.
// Every non-terminal status may move to failed.
func (s VideoStatus) CanTransition(target VideoStatus) bool {
	if target == VideoStatusFailed {
		return !s.IsTerminal()
	}
	for _, t := range videoTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status value.
func (s VideoStatus) Valid() bool {
	switch s {
	case VideoStatusDraft, VideoStatusUploaded, VideoStatusProcessing,
		VideoStatusTranscribing, VideoStatusTranscribed, VideoStatusAnalyzing,
		VideoStatusAnalyzed, VideoStatusPublished, VideoStatusFailed:
		return true
	}
	return false
}
