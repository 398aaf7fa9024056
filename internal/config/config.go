package config

import (
	"fmt"
	"log"
	"time"

	"mentor-server/internal/utils"

	"github.com/kelseyhightower/envconfig"
)

// RateLimit describes one endpoint class limit.
type RateLimit struct {
	MaxRequests int
	Window      time.Duration
}

// Config holds the mentor-server configuration.
type Config struct {
	// Server settings
	Port        string `envconfig:"SERVER_PORT" default:"8084"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// PostgreSQL settings
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	DBMigrate     bool          `envconfig:"DB_MIGRATE" default:"true"`
	// Secret field WITHOUT an envconfig tag
	DBPassword string

	// Redis settings (token revocation checks; disabled when addr is empty)
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	// Secret field WITHOUT an envconfig tag
	RedisPassword string

	// Chat-completion provider (OpenAI-compatible endpoint)
	ChatBaseURL string `envconfig:"AI_CHAT_BASE_URL" default:"https://openrouter.ai/api/v1"`
	ChatModel   string `envconfig:"AI_CHAT_MODEL" default:"deepseek/deepseek-chat-v3-0324:free"`
	ChatTimeout time.Duration `envconfig:"AI_CHAT_TIMEOUT" default:"120s"`
	// Secret field WITHOUT an envconfig tag
	ChatAPIKey string

	// Message provider (messages-shape endpoint, used for renewal plans)
	MessageBaseURL string        `envconfig:"AI_MESSAGE_BASE_URL" default:"https://api.anthropic.com"`
	MessageModel   string        `envconfig:"AI_MESSAGE_MODEL" default:"claude-3-5-haiku-latest"`
	MessageTimeout time.Duration `envconfig:"AI_MESSAGE_TIMEOUT" default:"120s"`
	// Secret field WITHOUT an envconfig tag
	MessageAPIKey string

	// Rate limits per endpoint class (requests per window)
	ChatLimit      int           `envconfig:"RATE_LIMIT_CHAT" default:"10"`
	QuestionsLimit int           `envconfig:"RATE_LIMIT_QUESTIONS" default:"5"`
	RenewalLimit   int           `envconfig:"RATE_LIMIT_RENEWAL" default:"3"`
	SummaryLimit   int           `envconfig:"RATE_LIMIT_SUMMARY" default:"5"`
	LimitWindow    time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`

	// CORS settings
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// JWT (verification of user tokens issued by the auth service)
	// Secret field WITHOUT an envconfig tag
	JWTSecret string
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// ChatRateLimit returns the limit for the chat endpoint class.
func (c *Config) ChatRateLimit() RateLimit {
	return RateLimit{MaxRequests: c.ChatLimit, Window: c.LimitWindow}
}

// QuestionsRateLimit returns the limit for the provocative-questions class.
func (c *Config) QuestionsRateLimit() RateLimit {
	return RateLimit{MaxRequests: c.QuestionsLimit, Window: c.LimitWindow}
}

// RenewalRateLimit returns the limit for the renewal-plan class.
func (c *Config) RenewalRateLimit() RateLimit {
	return RateLimit{MaxRequests: c.RenewalLimit, Window: c.LimitWindow}
}

// SummaryRateLimit returns the limit for the session-summary class.
func (c *Config) SummaryRateLimit() RateLimit {
	return RateLimit{MaxRequests: c.SummaryLimit, Window: c.LimitWindow}
}

// LoadConfig loads configuration from environment variables and secret files.
func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor-server configuration: %w", err)
	}

	var loadErr error
	cfg.DBPassword, loadErr = utils.ReadSecret("db_password")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.JWTSecret, loadErr = utils.ReadSecret("jwt_secret")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.ChatAPIKey, loadErr = utils.ReadSecret("ai_chat_api_key")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.MessageAPIKey, loadErr = utils.ReadSecret("ai_message_api_key")
	if loadErr != nil {
		return nil, loadErr
	}

	// Redis is optional; its password only matters when an addr is set.
	if cfg.RedisAddr != "" {
		cfg.RedisPassword = utils.ReadOptionalSecret("redis_password")
	}

	log.Printf("Mentor Server configuration loaded (secrets from files):")
	log.Printf("  Port: %s", cfg.Port)
	log.Printf("  LogLevel: %s", cfg.LogLevel)
	log.Printf("  DB DSN: postgres://%s:***@%s:%s/%s?sslmode=%s", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	log.Printf("  DB Max Conns: %d", cfg.DBMaxConns)
	log.Printf("  Redis Addr: %s", cfg.RedisAddr)
	log.Printf("  Chat Provider: %s (%s)", cfg.ChatBaseURL, cfg.ChatModel)
	log.Printf("  Message Provider: %s (%s)", cfg.MessageBaseURL, cfg.MessageModel)
	log.Printf("  Rate Limits: chat=%d questions=%d renewal=%d summary=%d per %v",
		cfg.ChatLimit, cfg.QuestionsLimit, cfg.RenewalLimit, cfg.SummaryLimit, cfg.LimitWindow)
	log.Println("  JWT Secret: [LOADED]")

	return &cfg, nil
}
