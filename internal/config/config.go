package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the connection string for pgx.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores order-events consumer settings. Empty brokers or topic
// disables the consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Engine stores assignment engine settings.
type Engine struct {
	PassInterval     time.Duration
	OperationTimeout time.Duration
}

// RateLimit stores HTTP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores the guarded pprof listener settings.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Config stores service settings.
type Config struct {
	Port      int
	DB        DB
	Kafka     Kafka
	Engine    Engine
	RateLimit RateLimit
	Pprof     Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Kafka:     DefaultKafka(),
		Engine:    DefaultEngine(),
		RateLimit: DefaultRateLimit(),
		Pprof:     DefaultPprof(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}

	readEnvStr("POSTGRES_HOST", &cfg.DB.Host)
	readEnvStr("POSTGRES_USER", &cfg.DB.User)
	readEnvStr("POSTGRES_PASSWORD", &cfg.DB.Pass)
	readEnvStr("POSTGRES_DB", &cfg.DB.Name)
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid POSTGRES_PORT %q", v)
		}
		cfg.DB.Port = v
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitCSV(v)
	}
	readEnvStr("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	readEnvStr("KAFKA_ORDERS_TOPIC", &cfg.Kafka.Topic)

	if err := readEnvDuration("ENGINE_PASS_INTERVAL", &cfg.Engine.PassInterval); err != nil {
		return nil, err
	}
	if err := readEnvDuration("ENGINE_OPERATION_TIMEOUT", &cfg.Engine.OperationTimeout); err != nil {
		return nil, err
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_ENABLED %q", v)
		}
		cfg.RateLimit.Enabled = b
	}

	readEnvStr("PPROF_ADDR", &cfg.Pprof.Addr)
	readEnvStr("PPROF_USER", &cfg.Pprof.User)
	readEnvStr("PPROF_PASSWORD", &cfg.Pprof.Pass)

	// A fresh flag set keeps Load safe to call more than once and
	// tolerant of flags owned by other packages (go test injects its own).
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.DurationVar(&cfg.Engine.PassInterval, "pass-interval", cfg.Engine.PassInterval,
		"how often the worker runs an assignment pass")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Engine.PassInterval <= 0 {
		return nil, fmt.Errorf("invalid pass interval: %s", cfg.Engine.PassInterval)
	}
	if cfg.Engine.OperationTimeout <= 0 {
		return nil, fmt.Errorf("invalid operation timeout: %s", cfg.Engine.OperationTimeout)
	}
	return cfg, nil
}

func readEnvStr(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func readEnvDuration(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	*dst = d
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
