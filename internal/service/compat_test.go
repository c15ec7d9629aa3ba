package service

import (
	"math"
	"testing"

	"github.com/spotbulle/pitchmatch/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSignCompatibility(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"same sign", "Lion", "Lion", 0.8},
		{"strong aspect", "Bélier", "Balance", 0.9},
		{"aspect table is directional per entry", "Cancer", "Capricorne", 0.9},
		{"neutral pair", "Bélier", "Taureau", 0.6},
		{"unknown sign", "Bélier", "Inconnu", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignCompatibility(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("SignCompatibility(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestElementBonus(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"fire and air", "Bélier", "Balance", 0.2},
		{"air and fire", "Verseau", "Lion", 0.2},
		{"earth and water", "Taureau", "Cancer", 0.2},
		{"same element", "Lion", "Sagittaire", 0.2},
		{"fire and earth", "Bélier", "Taureau", 0},
		{"air and water", "Gémeaux", "Poissons", 0},
		{"unknown sign", "Bélier", "Inconnu", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElementBonus(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("ElementBonus(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAstroCompatibility(t *testing.T) {
	// All three sign pairs neutral, no element bonus:
	// 0.5 + 0.3*0.6 + 0.3*0.6 + 0.2*0.6 = 0.98
	a := &domain.AstroProfile{SunSign: "Bélier", MoonSign: "Taureau", RisingSign: "Gémeaux"}
	b := &domain.AstroProfile{SunSign: "Vierge", MoonSign: "Verseau", RisingSign: "Scorpion"}

	score, details := AstroCompatibility(a, b)
	if !almostEqual(score, 0.98) {
		t.Errorf("expected neutral score 0.98, got %v", score)
	}
	if !almostEqual(details["element_bonus"].(float64), 0) {
		t.Errorf("expected no element bonus, got %v", details["element_bonus"])
	}

	// Strong aspects everywhere push past 1.0 and clamp.
	c := &domain.AstroProfile{SunSign: "Bélier", MoonSign: "Cancer", RisingSign: "Lion"}
	d := &domain.AstroProfile{SunSign: "Balance", MoonSign: "Capricorne", RisingSign: "Verseau"}

	score, details = AstroCompatibility(c, d)
	if !almostEqual(score, 1.0) {
		t.Errorf("expected clamped score 1.0, got %v", score)
	}
	if !almostEqual(details["sun_compatibility"].(float64), 0.9) {
		t.Errorf("expected sun compatibility 0.9, got %v", details["sun_compatibility"])
	}
}

func TestVectorSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    domain.Vector
		b    domain.Vector
		want float64
	}{
		{"identical vectors", domain.Vector{1, 2, 3}, domain.Vector{1, 2, 3}, 1.0},
		{"opposite vectors", domain.Vector{1, 0}, domain.Vector{-1, 0}, 0.0},
		{"orthogonal vectors", domain.Vector{1, 0}, domain.Vector{0, 1}, 0.5},
		{"zero norm", domain.Vector{0, 0}, domain.Vector{1, 1}, 0.5},
		{"length mismatch", domain.Vector{1, 2}, domain.Vector{1, 2, 3}, 0.5},
		{"both empty", domain.Vector{}, domain.Vector{}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VectorSimilarity(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("VectorSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverallScore(t *testing.T) {
	if got := OverallScore(1.0, 1.0); !almostEqual(got, 1.0) {
		t.Errorf("OverallScore(1, 1) = %v, want 1.0", got)
	}
	// 0.6*0.5 + 0.4*0.98 = 0.692
	if got := OverallScore(0.5, 0.98); !almostEqual(got, 0.692) {
		t.Errorf("OverallScore(0.5, 0.98) = %v, want 0.692", got)
	}
}
