package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/logger"
	"github.com/spotbulle/pitchmatch/internal/prompts"
	"github.com/spotbulle/pitchmatch/internal/provider"
)

// defaultTimezone is assumed for all birth places until per-location
// timezone resolution is wired to the geocoder.
const defaultTimezone = "Europe/Paris"

// elementArchetypes seeds the profile archetype before the narrative
// enrichment overwrites it with a generated one.
var elementArchetypes = map[string]string{
	"Feu":   "Le Pionnier",
	"Terre": "Le Bâtisseur",
	"Air":   "Le Messager",
	"Eau":   "Le Visionnaire",
}

// AstroProfileStore is the persistence surface for astro profiles.
type AstroProfileStore interface {
	Upsert(ctx context.Context, p *domain.AstroProfile) error
	GetByUserID(ctx context.Context, userID string) (*domain.AstroProfile, error)
	SaveNarrative(ctx context.Context, userID, archetype, phrase, profileText, color string) error
}

// ProfileEmbedder is the embedding follow-up the astro stage triggers.
type ProfileEmbedder interface {
	EmbedProfile(ctx context.Context, userID string) error
}

// AstroService calculates natal charts from birth data and enriches
// profiles with embeddings and symbolic narrative.
type AstroService struct {
	profiles  AstroProfileStore
	geocoder  *provider.NominatimGeocoder
	astrology *provider.AstrologyClient
	chat      *provider.ChatClient
	embedder  ProfileEmbedder
	model     string
}

// NewAstroService creates the astro profile stage.
func NewAstroService(profiles AstroProfileStore, geocoder *provider.NominatimGeocoder, astrology *provider.AstrologyClient, chat *provider.ChatClient, embedder ProfileEmbedder, model string) *AstroService {
	return &AstroService{
		profiles:  profiles,
		geocoder:  geocoder,
		astrology: astrology,
		chat:      chat,
		embedder:  embedder,
		model:     model,
	}
}

// CalculateInput carries the birth data for profile calculation.
type CalculateInput struct {
	UserID     string
	BirthDate  string // YYYY-MM-DD
	BirthTime  string // HH:MM, optional; noon assumed when empty
	BirthPlace string
}

// Calculate resolves the user's natal chart and upserts the profile.
// Geocoding and chart calculation both degrade to deterministic
// fallbacks rather than failing, so a profile always comes back for
// valid birth data. Embedding and narrative enrichment run in the
// background after the profile is persisted; their failures are logged
// but never surfaced.
func (s *AstroService) Calculate(ctx context.Context, input CalculateInput) (*domain.AstroProfile, error) {
	ctx = logger.SetStage(ctx, "astro")

	if input.BirthDate == "" || input.BirthPlace == "" {
		return nil, domain.ErrIncompleteBirthData
	}
	birthDate, err := time.Parse("2006-01-02", input.BirthDate)
	if err != nil {
		return nil, &ValidationError{Field: "birth_date", Msg: "must be YYYY-MM-DD"}
	}
	hour, minute := 12, 0
	if input.BirthTime != "" {
		t, err := time.Parse("15:04", input.BirthTime)
		if err != nil {
			return nil, &ValidationError{Field: "birth_time", Msg: "must be HH:MM"}
		}
		hour, minute = t.Hour(), t.Minute()
	}

	location, err := s.geocoder.Geocode(ctx, input.BirthPlace)
	if err != nil {
		logger.CtxWarn(ctx, "Geocoding failed, using fallback location: %v", err)
		location = provider.ParisFallback()
	}

	chart := s.resolveChart(ctx, provider.BirthInput{
		Date:      birthDate,
		Hour:      hour,
		Minute:    minute,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		City:      location.City,
		Country:   location.Country,
		Timezone:  defaultTimezone,
	})

	now := time.Now()
	profile := &domain.AstroProfile{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		BirthDate:    input.BirthDate,
		BirthTime:    input.BirthTime,
		BirthPlace:   input.BirthPlace,
		Latitude:     location.Latitude,
		Longitude:    location.Longitude,
		City:         location.City,
		Country:      location.Country,
		Timezone:     defaultTimezone,
		GeocodeMock:  location.Mock,
		SunSign:      chart.Sun.Sign,
		MoonSign:     chart.Moon.Sign,
		RisingSign:   chart.Ascendant.Sign,
		Planets:      planetsToJSON(chart),
		Houses:       housesToJSON(chart.Houses),
		ChartMock:    chart.Mock,
		ChartSource:  chart.Source,
		Archetype:    elementArchetypes[domain.ElementOf(chart.Sun.Sign)],
		CalculatedAt: &now,
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	logger.With(logger.Fields{
		logger.FieldUserID: input.UserID,
		"chart_source":     chart.Source,
	}).Info(ctx, "Astro profile calculated")

	go s.enrich(logger.SetUserID(context.Background(), input.UserID), profile)

	return profile, nil
}

// Get returns the user's profile.
func (s *AstroService) Get(ctx context.Context, userID string) (*domain.AstroProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *AstroService) resolveChart(ctx context.Context, input provider.BirthInput) *provider.Chart {
	if s.astrology.Configured() {
		chart, err := s.astrology.CalculateChart(ctx, input)
		if err == nil {
			return chart
		}
		logger.CtxWarn(ctx, "Chart calculation failed, using fallback chart: %v", err)
	}
	return provider.FallbackChart(input.Date)
}

// enrich runs the embedding and narrative follow-ups concurrently and
// waits for both so each gets its own failure log.
func (s *AstroService) enrich(ctx context.Context, profile *domain.AstroProfile) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := s.embedder.EmbedProfile(ctx, profile.UserID); err != nil {
			logger.CtxWarn(ctx, "Profile embedding failed: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.EnrichNarrative(ctx, profile); err != nil {
			logger.CtxWarn(ctx, "Narrative enrichment failed: %v", err)
		}
	}()

	wg.Wait()
}

// EnrichNarrative generates the symbolic portrait for the profile and
// persists it. Requires a configured chat client.
func (s *AstroService) EnrichNarrative(ctx context.Context, profile *domain.AstroProfile) error {
	if !s.chat.Configured() {
		return &ProviderError{Provider: "narrative", Err: fmt.Errorf("llm not configured")}
	}

	user := fmt.Sprintf(prompts.NarrativeUserPrompt,
		profile.SunSign, profile.MoonSign, profile.RisingSign,
		domain.ElementOf(profile.SunSign),
		domain.ModalityOf(profile.SunSign))

	payload, err := s.chat.CompleteJSON(ctx, s.model,
		prompts.NarrativeSystemPrompt, user, prompts.NarrativeRequiredKeys)
	if err != nil {
		return &ProviderError{Provider: "narrative", Err: err}
	}

	return s.profiles.SaveNarrative(ctx, profile.UserID,
		stringField(payload, "archetype"),
		stringField(payload, "phrase_synchronie"),
		stringField(payload, "profile_text"),
		stringField(payload, "couleur_dominante"))
}

func stringField(payload map[string]interface{}, key string) string {
	s, _ := payload[key].(string)
	return s
}

func planetsToJSON(chart *provider.Chart) domain.JSONMap {
	out := domain.JSONMap{}
	for name, p := range chart.Planets {
		out[name] = map[string]interface{}{
			"sign":   p.Sign,
			"house":  p.House,
			"degree": p.Degree,
		}
	}
	return out
}

func housesToJSON(houses []provider.HousePosition) domain.JSONArray {
	out := make(domain.JSONArray, 0, len(houses))
	for _, h := range houses {
		out = append(out, map[string]interface{}{
			"number": h.Number,
			"sign":   h.Sign,
			"degree": h.Degree,
		})
	}
	return out
}
