package config

import (
	"os"

	postgres_wrapper "github.com/joripage/multimatch/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/multimatch/pkg/infra/redis"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type NatsConfig struct {
	URL     string `yaml:"url"`
	Stream  string `yaml:"stream"`
	Subject string `yaml:"subject"`
	Durable string `yaml:"durable"`
}

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	JournalDB   *postgres_wrapper.PostgresConfig `yaml:"journal_db"`
	QuoteCache  *redis_wrapper.RedisConfig       `yaml:"quote_cache"`
	TradeFeed   *KafkaConfig                     `yaml:"trade_feed"`
	TradeStream *NatsConfig                      `yaml:"trade_stream"`
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
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

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
