package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Qdrant         QdrantConfig         `mapstructure:"qdrant"`
	Storage        StorageConfig        `mapstructure:"storage"`
	Auth           AuthConfig           `mapstructure:"auth"`
	Transcription  TranscriptionConfig  `mapstructure:"transcription"`
	LLM            LLMConfig            `mapstructure:"llm"`
	Embedding      EmbeddingConfig      `mapstructure:"embedding"`
	Geocoding      GeocodingConfig      `mapstructure:"geocoding"`
	Astrology      AstrologyConfig      `mapstructure:"astrology"`
	Matching       MatchingConfig       `mapstructure:"matching"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Scheduler      SchedulerConfig      `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // postgres, sqlite
	Path     string `mapstructure:"path"`   // sqlite only
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type QdrantConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	APIKey     string `mapstructure:"api_key"`
	UseTLS     bool   `mapstructure:"use_tls"`
	Collection string `mapstructure:"collection"`
}

type StorageConfig struct {
	Provider  string `mapstructure:"provider"` // s3, r2, minio
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
}

// AuthConfig points at the external identity service that issued the
// bearer tokens this API receives.
type AuthConfig struct {
	VerifyURL      string `mapstructure:"verify_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type TranscriptionConfig struct {
	// Providers is the fallback order; the first configured provider
	// is tried first.
	Providers []string       `mapstructure:"providers"`
	Whisper   WhisperConfig  `mapstructure:"whisper"`
	Deepgram  DeepgramConfig `mapstructure:"deepgram"`
}

type WhisperConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type DeepgramConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type LLMConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	AnalysisModel   string `mapstructure:"analysis_model"`
	GenerationModel string `mapstructure:"generation_model"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
}

type EmbeddingConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	Dimensions     int    `mapstructure:"dimensions"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type GeocodingConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type AstrologyConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Host           string `mapstructure:"host"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type MatchingConfig struct {
	CandidateLimit int     `mapstructure:"candidate_limit"`
	MinScore       float64 `mapstructure:"min_score"`
}

type RecommendationConfig struct {
	TopMatches int `mapstructure:"top_matches"`
}

type SchedulerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	RematchCron string `mapstructure:"rematch_cron"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/pitchmatch.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("qdrant.enabled", false)
	v.SetDefault("qdrant.host", "localhost")
	v.SetDefault("qdrant.port", 6334)
	v.SetDefault("qdrant.collection", "videos")
	v.SetDefault("storage.provider", "s3")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.bucket", "videos")
	v.SetDefault("auth.timeout_seconds", 10)
	v.SetDefault("transcription.providers", []string{"whisper", "deepgram"})
	v.SetDefault("transcription.whisper.base_url", "https://api.openai.com/v1")
	v.SetDefault("transcription.whisper.model", "whisper-1")
	v.SetDefault("transcription.whisper.timeout_seconds", 120)
	v.SetDefault("transcription.deepgram.base_url", "https://api.deepgram.com/v1")
	v.SetDefault("transcription.deepgram.model", "nova-2")
	v.SetDefault("transcription.deepgram.timeout_seconds", 120)
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.analysis_model", "gpt-4o")
	v.SetDefault("llm.generation_model", "gpt-4o-mini")
	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("embedding.base_url", "https://api.openai.com/v1")
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("embedding.dimensions", 1536)
	v.SetDefault("embedding.timeout_seconds", 15)
	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.user_agent", "pitchmatch/1.0")
	v.SetDefault("geocoding.timeout_seconds", 15)
	v.SetDefault("astrology.base_url", "https://astrologer.p.rapidapi.com/api/v4")
	v.SetDefault("astrology.host", "astrologer.p.rapidapi.com")
	v.SetDefault("astrology.timeout_seconds", 30)
	v.SetDefault("matching.candidate_limit", 20)
	v.SetDefault("matching.min_score", 0.6)
	v.SetDefault("recommendation.top_matches", 5)
	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.rematch_cron", "0 3 * * *")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("qdrant.host", "QDRANT_HOST")
	v.BindEnv("qdrant.port", "QDRANT_PORT")
	v.BindEnv("qdrant.api_key", "QDRANT_API_KEY")
	v.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	v.BindEnv("storage.access_key", "STORAGE_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "STORAGE_SECRET_KEY")
	v.BindEnv("auth.verify_url", "AUTH_VERIFY_URL")
	v.BindEnv("transcription.whisper.api_key", "OPENAI_API_KEY")
	v.BindEnv("transcription.deepgram.api_key", "DEEPGRAM_API_KEY")
	v.BindEnv("llm.api_key", "OPENAI_API_KEY")
	v.BindEnv("embedding.api_key", "OPENAI_API_KEY")
	v.BindEnv("astrology.api_key", "RAPIDAPI_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
