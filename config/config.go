package config

import (
	"os"

	postgres_wrapper "github.com/futuresdesk/matching-engine/pkg/infra/postgres"
	redis_wrapper "github.com/futuresdesk/matching-engine/pkg/infra/redis"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type NatsConfig struct {
	URL     string `yaml:"url"`
	Stream  string `yaml:"stream"`
	Subject string `yaml:"subject"`
	Durable string `yaml:"durable"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	TradeTopic string   `yaml:"trade_topic"`
	GroupID    string   `yaml:"group_id"`
}

type FixConfig struct {
	ConfigFilepath string `yaml:"config_filepath"`
}

// InstrumentConfig declares one tradable future in the catalog.
type InstrumentConfig struct {
	Kind       string          `yaml:"kind"` // currency | commodity
	Symbol     string          `yaml:"symbol"`
	Settlement string          `yaml:"settlement"`
	Unit       string          `yaml:"unit"`
	Spot       decimal.Decimal `yaml:"spot"`
	Premium    decimal.Decimal `yaml:"premium"`
	MinSize    int64           `yaml:"min_size"`
}

type DepthCacheConfig struct {
	IntervalMilliseconds int64 `yaml:"interval_ms"`
	TTLSeconds           int64 `yaml:"ttl_seconds"`
}

// PriceBandConfig bounds limit prices for one symbol.
type PriceBandConfig struct {
	Floor decimal.Decimal `yaml:"floor"`
	Ceil  decimal.Decimal `yaml:"ceil"`
}

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	ExchangeDB  *postgres_wrapper.PostgresConfig `yaml:"exchange_db"`
	Redis       *redis_wrapper.RedisConfig       `yaml:"redis"`
	Nats        *NatsConfig                      `yaml:"nats"`
	Kafka       *KafkaConfig                     `yaml:"kafka"`
	Fix         *FixConfig                       `yaml:"fix"`
	DepthCache  *DepthCacheConfig                `yaml:"depth_cache"`
	Instruments []InstrumentConfig               `yaml:"instruments"`

	PriceBands   map[string]PriceBandConfig `yaml:"price_bands"`
	TickSizeFile string                     `yaml:"tick_size_file"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
