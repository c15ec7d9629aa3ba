package service

import (
	"strings"
	"testing"

	"github.com/spotbulle/pitchmatch/internal/domain"
)

func TestComputeScore(t *testing.T) {
	longSummary := strings.Repeat("a", 60)

	tests := []struct {
		name     string
		analysis domain.JSONMap
		want     float64
	}{
		{
			name:     "empty analysis keeps baseline",
			analysis: domain.JSONMap{},
			want:     7.0,
		},
		{
			name:     "short summary does not count",
			analysis: domain.JSONMap{"summary": "bref"},
			want:     7.0,
		},
		{
			name:     "long summary",
			analysis: domain.JSONMap{"summary": longSummary},
			want:     7.5,
		},
		{
			name:     "two topics are not enough",
			analysis: domain.JSONMap{"key_topics": []interface{}{"a", "b"}},
			want:     7.0,
		},
		{
			name:     "three topics count",
			analysis: domain.JSONMap{"key_topics": []interface{}{"a", "b", "c"}},
			want:     7.5,
		},
		{
			name: "every signal present",
			analysis: domain.JSONMap{
				"summary":      longSummary,
				"key_topics":   []interface{}{"a", "b", "c"},
				"entities":     []interface{}{"Acme"},
				"action_items": []interface{}{"appeler"},
				"insights":     []interface{}{"ton posé"},
			},
			want: 9.5,
		},
		{
			name: "empty arrays do not count",
			analysis: domain.JSONMap{
				"entities":     []interface{}{},
				"action_items": []interface{}{},
				"insights":     []interface{}{},
			},
			want: 7.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeScore(tt.analysis); !almostEqual(got, tt.want) {
				t.Errorf("ComputeScore = %v, want %v", got, tt.want)
			}
		})
	}
}
