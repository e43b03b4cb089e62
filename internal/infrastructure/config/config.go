package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Panel sources.
const (
	PanelSourceBuiltin  = "builtin"
	PanelSourceFile     = "file"
	PanelSourcePostgres = "postgres"
)

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Port     int
	MaxConns int
}

type KafkaConfig struct {
	AdvisoryTopic string
	EventsTopic   string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	Brokers       []string
	TLS           bool
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type PanelConfig struct {
	Source         string
	File           string
	ReloadInterval time.Duration
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether both certificate and key are configured.
func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

// AdminAuthConfig holds the key material for operator tokens on the admin
// endpoints. A public key takes precedence over the shared secret.
type AdminAuthConfig struct {
	Secret        string
	PublicKeyFile string
	Issuer        string
}

// Enabled reports whether operator tokens can be validated.
func (a AdminAuthConfig) Enabled() bool { return a.Secret != "" || a.PublicKeyFile != "" }

type Config struct {
	Panel            PanelConfig
	DB               DatabaseConfig
	Kafka            KafkaConfig
	Redis            RedisConfig
	GRPCTLS          TLSConfig
	AdminAuth        AdminAuthConfig
	ServiceName      string
	LogLevel         string
	LogFormat        string
	OTLPEndpoint     string
	Currency         string
	ScheduleCacheTTL time.Duration
	GRPCPort         int
	HTTPPort         int
	GRPCReflection   bool
}

// Load reads configuration from the environment. A .env file in the
// working directory, when present, is loaded first without overriding
// variables that are already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		Panel: PanelConfig{
			Source:         strings.ToLower(getEnv("PANEL_SOURCE", PanelSourceBuiltin)),
			File:           getEnv("PANEL_FILE", "configs/panel.yaml"),
			ReloadInterval: getEnvDuration("PANEL_RELOAD_INTERVAL", 0),
		},
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loanmatch"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "loanmatch"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 4),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			AdvisoryTopic: getEnv("KAFKA_ADVISORY_TOPIC", "loanmatch.advisories"),
			EventsTopic:   getEnv("KAFKA_EVENTS_TOPIC", "loanmatch.events"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		GRPCTLS: TLSConfig{
			CertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
			KeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
		},
		AdminAuth: AdminAuthConfig{
			Secret:        getEnv("ADMIN_JWT_SECRET", ""),
			PublicKeyFile: getEnv("ADMIN_JWT_PUBLIC_KEY_FILE", ""),
			Issuer:        getEnv("ADMIN_JWT_ISSUER", "loanmatch"),
		},
		ServiceName:      getEnv("SERVICE_NAME", "loanmatchd"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Currency:         strings.ToUpper(getEnv("CURRENCY", "VND")),
		ScheduleCacheTTL: getEnvDuration("SCHEDULE_CACHE_TTL", 15*time.Minute),
		GRPCReflection:   getEnvBool("GRPC_REFLECTION", false),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	var errs []error
	switch c.Panel.Source {
	case PanelSourceBuiltin:
	case PanelSourceFile:
		if c.Panel.File == "" {
			errs = append(errs, errors.New("PANEL_FILE is required when PANEL_SOURCE=file"))
		}
	case PanelSourcePostgres:
		if c.DB.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required when PANEL_SOURCE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown PANEL_SOURCE %q", c.Panel.Source))
	}
	if c.Panel.ReloadInterval < 0 {
		errs = append(errs, errors.New("PANEL_RELOAD_INTERVAL must not be negative"))
	}
	if (c.GRPCTLS.CertFile == "") != (c.GRPCTLS.KeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
