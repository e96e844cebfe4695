package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type SettlementConfig struct {
	Env           string `yaml:"env" env:"ENV" env-default:"local"`
	GRPCServer    `yaml:"grpc_server"`
	HTTPServer    `yaml:"http_server"`
	SettlementDB  `yaml:"settlement_db"`
	Storage       `yaml:"storage"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka-service"`
	Redis         `yaml:"redis"`
	Settlement    `yaml:"settlement"`
	Advertisement `yaml:"advertisement"`
	Notifier      `yaml:"notifier"`
	Idempotency   `yaml:"idempotency"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50061"`
}

type HTTPServer struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

type SettlementDB struct {
	Dsn            string `yaml:"dsn" env:"SETTLEMENT_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"SETTLEMENT_MIGRATIONS_PATH"`
	MaxOpenConns   int    `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns   int    `yaml:"max_idle_conns" env-default:"5"`
}

// Storage selects the repository backend: "postgres" or "memory".
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Host        string `yaml:"host" env:"KAFKA_HOST"`
	Port        string `yaml:"port" env:"KAFKA_PORT" env-default:"9092"`
	Username    string `yaml:"username" env:"KAFKA_USERNAME"`
	Password    string `yaml:"password" env:"KAFKA_PASSWORD"`
	Mechanism   string `yaml:"mechanism" env:"KAFKA_MECHANISM" env-default:"PLAIN"`
	TLSEnabled  bool   `yaml:"tls_enabled" env:"KAFKA_TLS_ENABLED"`
	EventsTopic string `yaml:"events_topic" env-default:"settlement-events"`
	OrderTopic  string `yaml:"order_topic" env-default:"order-events"`
	GroupID     string `yaml:"group_id" env-default:"settlement-service"`
}

type Redis struct {
	URL string `yaml:"url" env:"REDIS_URL"`
}

type Settlement struct {
	DefaultCommissionRate float64       `yaml:"default_commission_rate" env-default:"0.10"`
	MinimumWithdrawal     float64       `yaml:"minimum_withdrawal" env-default:"50"`
	ClearingDelay         time.Duration `yaml:"clearing_delay" env-default:"168h"`
	SettleInterval        time.Duration `yaml:"settle_interval" env-default:"1m"`
	SettleBatchSize       int           `yaml:"settle_batch_size" env-default:"500"`
	IBANCountry           string        `yaml:"iban_country" env-default:"TR"`
	IBANLength            int           `yaml:"iban_length" env-default:"26"`
}

type Advertisement struct {
	Packages []AdPackage `yaml:"packages"`
}

type AdPackage struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	DurationDays int      `yaml:"duration_days"`
	Price        string   `yaml:"price"`
	Features     []string `yaml:"features"`
	Type         string   `yaml:"type"`
}

type Notifier struct {
	WithdrawalCallbackURL string        `yaml:"withdrawal_callback_url" env:"WITHDRAWAL_CALLBACK_URL"`
	Timeout               time.Duration `yaml:"timeout" env-default:"5s"`
}

type Idempotency struct {
	TTL time.Duration `yaml:"ttl" env-default:"24h"`
}

func Load(configPath string) (*SettlementConfig, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg SettlementConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch cfg.Storage.Driver {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Driver == "postgres" && cfg.SettlementDB.Dsn == "" {
		return nil, fmt.Errorf("settlement_db.dsn is required for postgres storage")
	}
	return &cfg, nil
}

func MustLoad() *SettlementConfig {
	configPath := os.Getenv("SETTLEMENT_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("SETTLEMENT_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v\n", err)
	}
	return cfg
}
