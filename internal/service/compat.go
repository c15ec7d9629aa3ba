package service

import (
	"math"

	"github.com/spotbulle/pitchmatch/internal/domain"
)

// compatibleSigns lists, per sign, the signs in strong aspect with it.
// A pair appearing here scores 0.9; same sign 0.8; anything else 0.6.
var compatibleSigns = map[string][]string{
	"Bélier":     {"Balance", "Lion", "Sagittaire"},
	"Taureau":    {"Scorpion", "Vierge", "Capricorne"},
	"Gémeaux":    {"Sagittaire", "Balance", "Verseau"},
	"Cancer":     {"Capricorne", "Scorpion", "Poissons"},
	"Lion":       {"Verseau", "Balance", "Sagittaire"},
	"Vierge":     {"Poissons", "Capricorne", "Taureau"},
	"Balance":    {"Bélier", "Lion", "Gémeaux"},
	"Scorpion":   {"Taureau", "Cancer", "Poissons"},
	"Sagittaire": {"Gémeaux", "Bélier", "Lion"},
	"Capricorne": {"Cancer", "Taureau", "Vierge"},
	"Verseau":    {"Lion", "Gémeaux", "Balance"},
	"Poissons":   {"Vierge", "Cancer", "Scorpion"},
}

// complementaryElements maps each element to the element it amplifies.
// Feu feeds Air and vice versa; Terre and Eau nourish each other.
var complementaryElements = map[string]string{
	"Feu":   "Air",
	"Air":   "Feu",
	"Terre": "Eau",
	"Eau":   "Terre",
}

// SignCompatibility scores two zodiac signs: 0.8 for the same sign,
// 0.9 for a listed strong aspect, 0.6 otherwise.
func SignCompatibility(a, b string) float64 {
	if a == b {
		return 0.8
	}
	for _, s := range compatibleSigns[a] {
		if s == b {
			return 0.9
		}
	}
	return 0.6
}

// ElementBonus returns 0.2 when the two signs' elements reinforce each
// other (same element or a complementary pair), 0 otherwise.
func ElementBonus(signA, signB string) float64 {
	ea := domain.ElementOf(signA)
	eb := domain.ElementOf(signB)
	if ea == "" || eb == "" {
		return 0
	}
	if ea == eb || complementaryElements[ea] == eb {
		return 0.2
	}
	return 0
}

// AstroCompatibility combines sun, moon and rising sign affinities with
// the sun-sign element bonus:
//
//	0.5 + 0.3*sun + 0.3*moon + 0.2*rising + elementBonus
//
// clamped to 1.0. The returned details map breaks the score down per
// component for match persistence.
func AstroCompatibility(a, b *domain.AstroProfile) (float64, map[string]interface{}) {
	sun := SignCompatibility(a.SunSign, b.SunSign)
	moon := SignCompatibility(a.MoonSign, b.MoonSign)
	rising := SignCompatibility(a.RisingSign, b.RisingSign)
	bonus := ElementBonus(a.SunSign, b.SunSign)

	score := 0.5 + 0.3*sun + 0.3*moon + 0.2*rising + bonus
	if score > 1.0 {
		score = 1.0
	}

	details := map[string]interface{}{
		"sun_compatibility":    sun,
		"moon_compatibility":   moon,
		"rising_compatibility": rising,
		"element_bonus":        bonus,
		"sun_signs":            []string{a.SunSign, b.SunSign},
		"moon_signs":           []string{a.MoonSign, b.MoonSign},
		"rising_signs":         []string{a.RisingSign, b.RisingSign},
	}
	return score, details
}

// VectorSimilarity computes cosine similarity rescaled to [0,1]:
// (cos+1)/2. Mismatched lengths or a zero-norm vector score the
// neutral 0.5.
func VectorSimilarity(a, b domain.Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.5
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.5
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cos + 1) / 2
}

// OverallScore blends vector similarity and astrological compatibility
// with a 60/40 weighting.
func OverallScore(vectorSim, astroCompat float64) float64 {
	return 0.6*vectorSim + 0.4*astroCompat
}
