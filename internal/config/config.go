package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	Routing    RoutingConfig
	Escalation EscalationConfig
	SLA        SLAConfig
	Learning   LearningConfig
	Knowledge  KnowledgeConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	PatternTopic       string // Watermill topic for pattern record writes
	JWTSecretKey       string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	OpsEmail   string // Recipient for operational alerts
}

type RoutingConfig struct {
	Threshold       float64 // Minimum normalized confidence to commit to a domain
	AmbiguityMargin float64 // Minimum gap between top two candidates
	ContinuityBonus float64 // Raw score bonus for the previously routed domain
}

type EscalationConfig struct {
	FailedAttemptLimit   int // failed_attempt_count that forces escalation
	InteractionCeiling   int // interaction_count that fires TIMEOUT
	NotifyMaxRetries     int
	NotifyInitialBackoff time.Duration
}

type SLAConfig struct {
	Critical time.Duration
	High     time.Duration
	Medium   time.Duration
	Low      time.Duration
}

type LearningConfig struct {
	MinSamples      int     // Records required before a recommendation is emitted
	OverrideMinimum float64 // Learner confidence needed to override the static handler map
}

type KnowledgeConfig struct {
	OllamaBaseURL  string
	EmbeddingModel string
	SearchTimeout  time.Duration
	TopK           int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			PatternTopic:       getEnv("PATTERN_RECORD_TOPIC_NAME", "PATTERN_RECORDED"),
			JWTSecretKey:       getEnv("JWT_SECRET_KEY", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "SupportCore"),
			OpsEmail:   getEnv("OPS_ALERT_EMAIL", ""),
		},
		Routing: RoutingConfig{
			Threshold:       getEnvAsFloat("ROUTING_THRESHOLD", 0.35),
			AmbiguityMargin: getEnvAsFloat("ROUTING_AMBIGUITY_MARGIN", 0.15),
			ContinuityBonus: getEnvAsFloat("ROUTING_CONTINUITY_BONUS", 1.0),
		},
		Escalation: EscalationConfig{
			FailedAttemptLimit:   getEnvAsInt("ESCALATION_FAILED_ATTEMPT_LIMIT", 3),
			InteractionCeiling:   getEnvAsInt("ESCALATION_INTERACTION_CEILING", 12),
			NotifyMaxRetries:     getEnvAsInt("ESCALATION_NOTIFY_MAX_RETRIES", 5),
			NotifyInitialBackoff: getEnvAsDuration("ESCALATION_NOTIFY_INITIAL_BACKOFF", 500*time.Millisecond),
		},
		SLA: SLAConfig{
			Critical: getEnvAsDuration("SLA_CRITICAL", 1*time.Hour),
			High:     getEnvAsDuration("SLA_HIGH", 4*time.Hour),
			Medium:   getEnvAsDuration("SLA_MEDIUM", 24*time.Hour),
			Low:      getEnvAsDuration("SLA_LOW", 72*time.Hour),
		},
		Learning: LearningConfig{
			MinSamples:      getEnvAsInt("LEARNING_MIN_SAMPLES", 3),
			OverrideMinimum: getEnvAsFloat("LEARNING_OVERRIDE_MINIMUM", 0.75),
		},
		Knowledge: KnowledgeConfig{
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			SearchTimeout:  getEnvAsDuration("KNOWLEDGE_SEARCH_TIMEOUT", 3*time.Second),
			TopK:           getEnvAsInt("KNOWLEDGE_TOP_K", 5),
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
