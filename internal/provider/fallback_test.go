package provider

import (
	"math"
	"testing"
	"time"

	"github.com/spotbulle/pitchmatch/internal/domain"
)

func TestFallbackChart_Deterministic(t *testing.T) {
	birthDate := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	a := FallbackChart(birthDate)
	b := FallbackChart(birthDate)

	if a.Sun.Sign != b.Sun.Sign || a.Moon.Sign != b.Moon.Sign || a.Ascendant.Sign != b.Ascendant.Sign {
		t.Error("expected identical charts for identical birth dates")
	}
	if !a.Mock || a.Source != "fallback" {
		t.Errorf("expected mock fallback chart, got mock=%v source=%q", a.Mock, a.Source)
	}
}

func TestFallbackChart_Structure(t *testing.T) {
	chart := FallbackChart(time.Date(1985, 3, 1, 0, 0, 0, 0, time.UTC))

	if len(chart.Houses) != 12 {
		t.Fatalf("expected 12 houses, got %d", len(chart.Houses))
	}
	for _, house := range chart.Houses {
		if house.Sign == "" {
			t.Errorf("house %d has no sign", house.Number)
		}
	}

	for _, planet := range []string{"mercure", "venus", "mars", "jupiter", "saturne"} {
		if _, ok := chart.Planets[planet]; !ok {
			t.Errorf("missing planet %s", planet)
		}
	}

	if chart.Sun.House != 1 {
		t.Errorf("expected sun in house 1, got %d", chart.Sun.House)
	}
	if chart.Moon.House != 4 {
		t.Errorf("expected moon in house 4, got %d", chart.Moon.House)
	}

	// Sun, moon, and ascendant are offset by four signs each.
	sunIdx := signIndex(t, chart.Sun.Sign)
	if moonIdx := signIndex(t, chart.Moon.Sign); moonIdx != (sunIdx+4)%12 {
		t.Errorf("expected moon offset 4 from sun, got sun=%d moon=%d", sunIdx, moonIdx)
	}
	if ascIdx := signIndex(t, chart.Ascendant.Sign); ascIdx != (sunIdx+8)%12 {
		t.Errorf("expected ascendant offset 8 from sun, got sun=%d asc=%d", sunIdx, ascIdx)
	}
}

func signIndex(t *testing.T, sign string) int {
	t.Helper()
	for i, s := range domain.ZodiacSigns {
		if s == sign {
			return i
		}
	}
	t.Fatalf("unknown sign %q", sign)
	return -1
}

func TestFallbackVector(t *testing.T) {
	a := FallbackVector("bonjour", 1536)
	b := FallbackVector("bonjour", 1536)

	if len(a) != 1536 {
		t.Fatalf("expected 1536 dimensions, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected deterministic vector, differs at %d", i)
		}
	}

	// Seed depends on text length only.
	c := FallbackVector("zonjour", 1536)
	if a[0] != c[0] {
		t.Error("expected equal-length inputs to share a seed")
	}

	for i, v := range a[:10] {
		if math.Abs(v) > 1 {
			t.Errorf("component %d out of sine range: %v", i, v)
		}
	}
}

func TestParisFallback(t *testing.T) {
	loc := ParisFallback()
	if loc.Latitude != 48.8566 || loc.Longitude != 2.3522 {
		t.Errorf("unexpected coordinates: %v, %v", loc.Latitude, loc.Longitude)
	}
	if loc.City != "Paris" || loc.Country != "FR" {
		t.Errorf("unexpected place: %s, %s", loc.City, loc.Country)
	}
	if !loc.Mock {
		t.Error("expected fallback location to be flagged mock")
	}
}

func TestValidateKeys(t *testing.T) {
	payload := map[string]interface{}{
		"title":    "x",
		"category": "y",
	}

	if err := ValidateKeys(payload, []string{"title", "category"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateKeys(payload, []string{"title", "description"}); err == nil {
		t.Error("expected error for missing key")
	}
	if err := ValidateKeys(payload, nil); err != nil {
		t.Errorf("unexpected error for empty key list: %v", err)
	}
}
