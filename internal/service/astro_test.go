package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spotbulle/pitchmatch/internal/config"
	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/provider"
	"gorm.io/gorm"
)

type fakeAstroStore struct {
	mu   sync.Mutex
	rows map[string]*domain.AstroProfile
}

func newFakeAstroStore() *fakeAstroStore {
	return &fakeAstroStore{rows: map[string]*domain.AstroProfile{}}
}

func (f *fakeAstroStore) Upsert(_ context.Context, p *domain.AstroProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.rows[p.UserID]; ok {
		p.ID = existing.ID
	}
	f.rows[p.UserID] = p
	return nil
}

func (f *fakeAstroStore) GetByUserID(_ context.Context, userID string) (*domain.AstroProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeAstroStore) SaveNarrative(context.Context, string, string, string, string, string) error {
	return nil
}

type fakeProfileEmbedder struct{}

func (fakeProfileEmbedder) EmbedProfile(context.Context, string) error { return nil }

func newTestAstroService(t *testing.T, store *fakeAstroStore) *AstroService {
	t.Helper()

	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"lat":"45.7578","lon":"4.8320","name":"Lyon","display_name":"Lyon, France"}]`)
	}))
	t.Cleanup(geoSrv.Close)

	geocoder := provider.NewNominatimGeocoder(&config.GeocodingConfig{
		BaseURL:   geoSrv.URL,
		UserAgent: "pitchmatch-test",
	})
	// No API keys: the chart degrades to the deterministic fallback and
	// narrative enrichment is skipped.
	astrology := provider.NewAstrologyClient(&config.AstrologyConfig{})
	chat := provider.NewChatClient(&config.LLMConfig{})

	return NewAstroService(store, geocoder, astrology, chat, fakeProfileEmbedder{}, "gpt-4o-mini")
}

func TestAstroService_Calculate(t *testing.T) {
	store := newFakeAstroStore()
	svc := newTestAstroService(t, store)

	profile, err := svc.Calculate(context.Background(), CalculateInput{
		UserID:     "u1",
		BirthDate:  "1990-06-15",
		BirthTime:  "08:30",
		BirthPlace: "Lyon",
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if profile.City != "Lyon" {
		t.Errorf("expected geocoded city Lyon, got %s", profile.City)
	}
	if !profile.ChartMock || profile.ChartSource != "fallback" {
		t.Errorf("expected fallback chart, got mock=%v source=%s", profile.ChartMock, profile.ChartSource)
	}
	if profile.SunSign == "" || profile.MoonSign == "" || profile.RisingSign == "" {
		t.Errorf("expected a full sign triple, got %s/%s/%s", profile.SunSign, profile.MoonSign, profile.RisingSign)
	}
	if profile.Archetype == "" {
		t.Error("expected an element archetype")
	}
}

func TestAstroService_Calculate_Recalculate(t *testing.T) {
	store := newFakeAstroStore()
	svc := newTestAstroService(t, store)
	input := CalculateInput{
		UserID:     "u1",
		BirthDate:  "1990-06-15",
		BirthTime:  "08:30",
		BirthPlace: "Lyon",
	}

	first, err := svc.Calculate(context.Background(), input)
	if err != nil {
		t.Fatalf("first Calculate: %v", err)
	}
	second, err := svc.Calculate(context.Background(), input)
	if err != nil {
		t.Fatalf("second Calculate: %v", err)
	}

	// Recalculating with identical birth data updates the user's single
	// profile row and reproduces the same chart.
	store.mu.Lock()
	rows := len(store.rows)
	store.mu.Unlock()
	if rows != 1 {
		t.Fatalf("expected 1 profile row after recalculation, got %d", rows)
	}
	if second.SunSign != first.SunSign || second.MoonSign != first.MoonSign || second.RisingSign != first.RisingSign {
		t.Errorf("expected identical chart on recalculation, got %s/%s/%s then %s/%s/%s",
			first.SunSign, first.MoonSign, first.RisingSign,
			second.SunSign, second.MoonSign, second.RisingSign)
	}
}
