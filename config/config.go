package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Deals    DealsConfig    `yaml:"deals"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

// DatabaseConfig configures the optional deal snapshot archive. An empty DSN disables it.
// With RestoreLatest the service serves the last archived catalog instead of a new one.
type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	RestoreLatest bool   `yaml:"restore_latest"`
}

func (d DatabaseConfig) Enabled() bool {
	return d.DSN != ""
}

// RedisConfig configures the list cache. An empty address disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers         []string `yaml:"brokers"`
	DealEventsTopic string   `yaml:"deal_events_topic"`
	GroupID         string   `yaml:"group_id"`
}

type DealsConfig struct {
	ListDelayMs     int    `yaml:"list_delay_ms"`
	GetDelayMs      int    `yaml:"get_delay_ms"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	Seed            uint64 `yaml:"seed"`
}

func (d DealsConfig) ListDelay() time.Duration {
	return time.Duration(d.ListDelayMs) * time.Millisecond
}

func (d DealsConfig) GetDelay() time.Duration {
	return time.Duration(d.GetDelayMs) * time.Millisecond
}

func (d DealsConfig) CacheTTL() time.Duration {
	return time.Duration(d.CacheTTLSeconds) * time.Second
}

type WorkerConfig struct {
	ReportIntervalSeconds int    `yaml:"report_interval_seconds"`
	TopN                  int    `yaml:"top_n"`
	MetricsAddress        string `yaml:"metrics_address"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used for anything the file leaves out.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{Address: ":8080"},
		GRPC: GRPCConfig{Address: ":9090"},
		Kafka: KafkaConfig{
			DealEventsTopic: "deal_events",
			GroupID:         "flightdeals-worker",
		},
		Deals: DealsConfig{
			ListDelayMs:     300,
			GetDelayMs:      200,
			CacheTTLSeconds: 60,
		},
		Worker: WorkerConfig{
			ReportIntervalSeconds: 60,
			TopN:                  5,
			MetricsAddress:        ":9100",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads the YAML file at path on top of Default and applies environment overrides.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("GRPC_ADDRESS"); v != "" {
		cfg.GRPC.Address = v
	}
	if v := os.Getenv("WORKER_METRICS_ADDRESS"); v != "" {
		cfg.Worker.MetricsAddress = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DEALS_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DEALS_SEED: %w", err)
		}
		cfg.Deals.Seed = seed
	}
	return nil
}
