package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	LLM      LLMConfig
	UrbanAPI UrbanAPIConfig
	RAG      RAGConfig
	Pipeline PipelineConfig
	OTel     OTelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
	AuditTopic         string
}

type DatabaseConfig struct {
	Connection string
}

// ModelEndpoint is one model used by the service
type ModelEndpoint struct {
	Provider string // "openai", "ollama", "llama_template"
	BaseURL  string
	Model    string
	APIKey   string
}

type LLMConfig struct {
	Selector    ModelEndpoint
	Verifier    ModelEndpoint
	Answer      ModelEndpoint
	Timeout     time.Duration
	MaxRetries  int
	Temperature float64
	TopP        float64
	TokenLimit  int
}

type UrbanAPIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	CacheTTL     time.Duration
	CacheBackend string // "memory", "redis", "none"
}

type RAGConfig struct {
	Collection        string
	ChunkNum          int
	EmbeddingProvider string // "ollama" or "openai"
	EmbeddingURL      string
	EmbeddingModel    string
	EmbeddingAPIKey   string
}

type PipelineConfig struct {
	VerifyPipeline  bool
	VerifyFunctions bool
	ParallelFetch   bool
	MaxParallel     int
}

type OTelConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			AuditTopic:         getEnv("AUDIT_TOPIC_NAME", "QUESTION_ANSWERED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		LLM: LLMConfig{
			Selector: ModelEndpoint{
				Provider: getEnv("SELECTOR_LLM_PROVIDER", "openai"),
				BaseURL:  getEnv("SELECTOR_LLM_URL", "http://localhost:8080/v1"),
				Model:    getEnv("SELECTOR_LLM_MODEL", "meta-llama-3-8b-instruct-function-calling"),
				APIKey:   getEnv("SELECTOR_LLM_API_KEY", ""),
			},
			Verifier: ModelEndpoint{
				Provider: getEnv("VERIFIER_LLM_PROVIDER", "ollama"),
				BaseURL:  getEnv("VERIFIER_LLM_URL", "http://localhost:11434"),
				Model:    getEnv("VERIFIER_LLM_MODEL", "llama3"),
				APIKey:   getEnv("VERIFIER_LLM_API_KEY", ""),
			},
			Answer: ModelEndpoint{
				Provider: getEnv("ANSWER_LLM_PROVIDER", "llama_template"),
				BaseURL:  getEnv("ANSWER_LLM_URL", ""),
				Model:    getEnv("ANSWER_LLM_MODEL", "llama3"),
				APIKey:   getEnv("ANSWER_LLM_API_KEY", ""),
			},
			Timeout:     getEnvAsSeconds("LLM_TIMEOUT_SECONDS", 120),
			MaxRetries:  getEnvAsInt("LLM_MAX_RETRIES", 1),
			Temperature: getEnvAsFloat("LLM_TEMPERATURE", 0.15),
			TopP:        getEnvAsFloat("LLM_TOP_P", 0.15),
			TokenLimit:  getEnvAsInt("LLM_TOKEN_LIMIT", 8000),
		},
		UrbanAPI: UrbanAPIConfig{
			BaseURL:      getEnv("URBAN_API_URL", "http://localhost:8001"),
			Timeout:      getEnvAsSeconds("URBAN_API_TIMEOUT_SECONDS", 30),
			CacheTTL:     getEnvAsSeconds("URBAN_API_CACHE_TTL_SECONDS", 600),
			CacheBackend: getEnv("URBAN_API_CACHE_BACKEND", "memory"),
		},
		RAG: RAGConfig{
			Collection:        getEnv("RAG_COLLECTION", "strategy-spb"),
			ChunkNum:          getEnvAsInt("RAG_CHUNK_NUM", 4),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingURL:      getEnv("EMBEDDING_URL", "http://localhost:11434"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingAPIKey:   getEnv("EMBEDDING_API_KEY", ""),
		},
		Pipeline: PipelineConfig{
			VerifyPipeline:  getEnvAsBool("VERIFY_PIPELINE_CHOICE", false),
			VerifyFunctions: getEnvAsBool("VERIFY_FUNCTION_CHOICE", false),
			ParallelFetch:   getEnvAsBool("PARALLEL_FETCH", true),
			MaxParallel:     getEnvAsInt("PARALLEL_FETCH_LIMIT", 4),
		},
		OTel: OTelConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}
