package domain

import "testing"

func TestVideoStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    VideoStatus
		to      VideoStatus
		allowed bool
	}{
		{"draft to uploaded", VideoStatusDraft, VideoStatusUploaded, true},
		{"uploaded to transcribing", VideoStatusUploaded, VideoStatusTranscribing, true},
		{"uploaded to processing", VideoStatusUploaded, VideoStatusProcessing, true},
		{"processing to transcribing", VideoStatusProcessing, VideoStatusTranscribing, true},
		{"transcribing to transcribed", VideoStatusTranscribing, VideoStatusTranscribed, true},
		{"transcribed to analyzing", VideoStatusTranscribed, VideoStatusAnalyzing, true},
		{"analyzing to analyzed", VideoStatusAnalyzing, VideoStatusAnalyzed, true},
		{"analyzed to published", VideoStatusAnalyzed, VideoStatusPublished, true},
		{"no stage skipping", VideoStatusUploaded, VideoStatusAnalyzed, false},
		{"no backwards move", VideoStatusTranscribed, VideoStatusTranscribing, false},
		{"published is terminal", VideoStatusPublished, VideoStatusDraft, false},
		{"published cannot fail", VideoStatusPublished, VideoStatusFailed, false},
		{"any active state can fail", VideoStatusAnalyzing, VideoStatusFailed, true},
		{"draft can fail", VideoStatusDraft, VideoStatusFailed, true},
		{"failed cannot fail again", VideoStatusFailed, VideoStatusFailed, false},
		{"failed resets to draft", VideoStatusFailed, VideoStatusDraft, true},
		{"failed cannot resume mid-pipeline", VideoStatusFailed, VideoStatusTranscribing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestVideoStatus_IsTerminal(t *testing.T) {
	for _, s := range []VideoStatus{VideoStatusPublished, VideoStatusFailed} {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []VideoStatus{VideoStatusDraft, VideoStatusUploaded, VideoStatusTranscribing, VideoStatusAnalyzing} {
		if s.IsTerminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair("user-b", "user-a")
	if a != "user-a" || b != "user-b" {
		t.Errorf("expected ordered pair (user-a, user-b), got (%s, %s)", a, b)
	}

	a, b = CanonicalPair("user-a", "user-b")
	if a != "user-a" || b != "user-b" {
		t.Errorf("expected stable order, got (%s, %s)", a, b)
	}
}

func TestMatch_Other(t *testing.T) {
	m := Match{UserAID: "alice", UserBID: "bob"}
	if got := m.Other("alice"); got != "bob" {
		t.Errorf("Other(alice) = %s, want bob", got)
	}
	if got := m.Other("bob"); got != "alice" {
		t.Errorf("Other(bob) = %s, want alice", got)
	}
}

func TestElementOf(t *testing.T) {
	tests := []struct {
		sign    string
		element string
	}{
		{"Bélier", "Feu"},
		{"Taureau", "Terre"},
		{"Gémeaux", "Air"},
		{"Cancer", "Eau"},
		{"Poissons", "Eau"},
	}
	for _, tt := range tests {
		if got := ElementOf(tt.sign); got != tt.element {
			t.Errorf("ElementOf(%s) = %s, want %s", tt.sign, got, tt.element)
		}
	}
	if got := ElementOf("Ophiuchus"); got != "" {
		t.Errorf("expected empty element for unknown sign, got %s", got)
	}
}

func TestModalityOf(t *testing.T) {
	tests := []struct {
		sign     string
		modality string
	}{
		{"Bélier", "Cardinal"},
		{"Taureau", "Fixé"},
		{"Gémeaux", "Mutable"},
		{"Capricorne", "Cardinal"},
	}
	for _, tt := range tests {
		if got := ModalityOf(tt.sign); got != tt.modality {
			t.Errorf("ModalityOf(%s) = %s, want %s", tt.sign, got, tt.modality)
		}
	}
	if got := ModalityOf("Ophiuchus"); got != "" {
		t.Errorf("expected empty modality for unknown sign, got %s", got)
	}
}
