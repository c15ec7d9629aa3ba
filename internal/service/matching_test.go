package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spotbulle/pitchmatch/internal/domain"
	"gorm.io/gorm"
)

type fakeProfileStore struct {
	profiles map[string]*domain.AstroProfile
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID string) (*domain.AstroProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProfileStore) ListCandidates(_ context.Context, excludeUserID string, limit int) ([]domain.AstroProfile, error) {
	var out []domain.AstroProfile
	for id, p := range f.profiles {
		if id == excludeUserID || !p.HasEmbedding() {
			continue
		}
		out = append(out, *p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeMatchStore struct {
	upserts []domain.Match
}

func (f *fakeMatchStore) Upsert(_ context.Context, m *domain.Match) error {
	for i := range f.upserts {
		if f.upserts[i].UserAID == m.UserAID && f.upserts[i].UserBID == m.UserBID {
			f.upserts[i] = *m
			return nil
		}
	}
	f.upserts = append(f.upserts, *m)
	return nil
}

func (f *fakeMatchStore) ListForUser(_ context.Context, userID string) ([]domain.Match, error) {
	var out []domain.Match
	for _, m := range f.upserts {
		if m.UserAID == userID || m.UserBID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func profileWithVector(userID string, vector domain.Vector) *domain.AstroProfile {
	return &domain.AstroProfile{
		UserID:     userID,
		SunSign:    "Bélier",
		MoonSign:   "Cancer",
		RisingSign: "Lion",
		Embedding:  vector,
	}
}

func TestMatchService_Run(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*domain.AstroProfile{
		"alice": profileWithVector("alice", domain.Vector{1, 0, 0}),
		"bob":   profileWithVector("bob", domain.Vector{1, 0, 0}),
	}}
	matches := &fakeMatchStore{}
	svc := NewMatchService(profiles, matches, 20, 0.6)

	results, err := svc.Run(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	// Identical sign triples and identical vectors: vectorSim 1.0,
	// astro 0.5 + 0.3*0.8 + 0.3*0.8 + 0.2*0.8 + 0.2 = 1.0 (clamped),
	// overall 1.0.
	m := results[0]
	if !almostEqual(m.OverallScore, 1.0) {
		t.Errorf("expected overall score 1.0, got %v", m.OverallScore)
	}
	if len(matches.upserts) != 1 {
		t.Fatalf("expected 1 persisted match, got %d", len(matches.upserts))
	}
	if m.UserAID != "alice" || m.UserBID != "bob" {
		t.Errorf("expected canonical pair (alice, bob), got (%s, %s)", m.UserAID, m.UserBID)
	}
}

func TestMatchService_Run_Rerun(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*domain.AstroProfile{
		"alice": profileWithVector("alice", domain.Vector{1, 0, 0}),
		"bob":   profileWithVector("bob", domain.Vector{1, 0, 0}),
	}}
	matches := &fakeMatchStore{}
	svc := NewMatchService(profiles, matches, 20, 0.6)

	if _, err := svc.Run(context.Background(), "alice"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := svc.Run(context.Background(), "alice"); err != nil {
		t.Fatalf("second run: %v", err)
	}

	// Rescoring the same pool upserts on the canonical pair: the pair
	// row is updated, never duplicated.
	if len(matches.upserts) != 1 {
		t.Fatalf("expected 1 match row after rerun, got %d", len(matches.upserts))
	}

	if _, err := svc.Run(context.Background(), "bob"); err != nil {
		t.Fatalf("reverse run: %v", err)
	}
	if len(matches.upserts) != 1 {
		t.Fatalf("expected 1 match row after reverse run, got %d", len(matches.upserts))
	}
}

func TestMatchService_Run_BelowThresholdNotPersisted(t *testing.T) {
	// Orthogonal vectors give vectorSim 0.5 and the previous astro
	// score 1.0: overall 0.6*0.5 + 0.4*1.0 = 0.7, above threshold.
	// Force a lower astro score with neutral signs instead.
	subject := profileWithVector("alice", domain.Vector{1, 0, 0})
	candidate := &domain.AstroProfile{
		UserID:     "bob",
		SunSign:    "Taureau",
		MoonSign:   "Vierge",
		RisingSign: "Capricorne",
		Embedding:  domain.Vector{0, 1, 0},
	}
	// vectorSim 0.5; astro 0.5 + 0.3*0.6 + 0.3*0.6 + 0.2*0.6 = 0.98;
	// Bélier/Taureau elements do not combine. overall = 0.692.
	profiles := &fakeProfileStore{profiles: map[string]*domain.AstroProfile{
		"alice": subject,
		"bob":   candidate,
	}}
	matches := &fakeMatchStore{}
	svc := NewMatchService(profiles, matches, 20, 0.7)

	results, err := svc.Run(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no admitted matches, got %d", len(results))
	}
	if len(matches.upserts) != 0 {
		t.Errorf("expected no persisted matches, got %d", len(matches.upserts))
	}
}

func TestMatchService_Run_RequiresEmbedding(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*domain.AstroProfile{
		"alice": {UserID: "alice", SunSign: "Bélier"},
	}}
	svc := NewMatchService(profiles, &fakeMatchStore{}, 20, 0.6)

	_, err := svc.Run(context.Background(), "alice")
	if !errors.Is(err, domain.ErrNoEmbedding) {
		t.Errorf("expected ErrNoEmbedding, got %v", err)
	}
}

func TestMatchService_Run_UnknownUser(t *testing.T) {
	svc := NewMatchService(&fakeProfileStore{profiles: map[string]*domain.AstroProfile{}}, &fakeMatchStore{}, 20, 0.6)

	_, err := svc.Run(context.Background(), "ghost")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected record not found, got %v", err)
	}
}

func TestMatchService_Run_SortsByScore(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]*domain.AstroProfile{
		"alice": profileWithVector("alice", domain.Vector{1, 0, 0}),
		// Same signs, aligned vector: overall 1.0.
		"bob": profileWithVector("bob", domain.Vector{1, 0, 0}),
		// Same signs, orthogonal vector: overall 0.6*0.5 + 0.4*1.0 = 0.7.
		"carol": profileWithVector("carol", domain.Vector{0, 1, 0}),
	}}
	matches := &fakeMatchStore{}
	svc := NewMatchService(profiles, matches, 20, 0.6)

	results, err := svc.Run(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].OverallScore < results[1].OverallScore {
		t.Error("expected results sorted by score, best first")
	}
	if results[0].Other("alice") != "bob" {
		t.Errorf("expected bob first, got %s", results[0].Other("alice"))
	}
}
