package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Database.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("expected conn max lifetime 30m, got %v", cfg.Database.ConnMaxLifetime)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("expected auto migrate enabled by default")
	}
	if cfg.Qdrant.Enabled {
		t.Error("expected qdrant disabled by default")
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("expected 1536 embedding dimensions, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.LLM.AnalysisModel != "gpt-4o" || cfg.LLM.GenerationModel != "gpt-4o-mini" {
		t.Errorf("unexpected default models: %s, %s", cfg.LLM.AnalysisModel, cfg.LLM.GenerationModel)
	}
	if cfg.Matching.CandidateLimit != 20 {
		t.Errorf("expected candidate limit 20, got %d", cfg.Matching.CandidateLimit)
	}
	if cfg.Matching.MinScore != 0.6 {
		t.Errorf("expected min score 0.6, got %v", cfg.Matching.MinScore)
	}
	if cfg.Recommendation.TopMatches != 5 {
		t.Errorf("expected top matches 5, got %d", cfg.Recommendation.TopMatches)
	}
	if len(cfg.Transcription.Providers) != 2 || cfg.Transcription.Providers[0] != "whisper" {
		t.Errorf("unexpected default transcription providers: %v", cfg.Transcription.Providers)
	}
	if cfg.Scheduler.RematchCron != "0 3 * * *" {
		t.Errorf("unexpected rematch cron: %q", cfg.Scheduler.RematchCron)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	sqlite := DatabaseConfig{Driver: "sqlite", Path: "./data/test.db"}
	if got := sqlite.DSN(); got != "./data/test.db" {
		t.Errorf("unexpected sqlite DSN: %q", got)
	}

	pg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "secret",
		Name:     "pitchmatch",
		SSLMode:  "disable",
	}
	want := "host=db port=5432 user=app password=secret dbname=pitchmatch sslmode=disable"
	if got := pg.DSN(); got != want {
		t.Errorf("unexpected postgres DSN:\n got %q\nwant %q", got, want)
	}
}
