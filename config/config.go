package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
}

type ServerConfig struct {
	AppEnv         string   `envconfig:"APP_ENV" default:"dev"`
	HTTPPort       string   `envconfig:"HTTP_PORT" default:":8080"`
	GRPCPort       string   `envconfig:"GRPC_PORT" default:":8082"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

type LoggerConfig struct {
	Level             string `envconfig:"LOGGER_LEVEL" default:"debug"`
	Encoding          string `envconfig:"LOGGER_ENCODING" default:"console"`
	DisableCaller     bool   `envconfig:"LOGGER_DISABLE_CALLER" default:"false"`
	DisableStacktrace bool   `envconfig:"LOGGER_DISABLE_STACKTRACE" default:"true"`
}

type PostgresConfig struct {
	Host            string        `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port            string        `envconfig:"POSTGRES_PORT" default:"5432"`
	User            string        `envconfig:"POSTGRES_USER" default:"metalmarket"`
	Password        string        `envconfig:"POSTGRES_PASSWORD" default:"metalmarket"`
	DBName          string        `envconfig:"POSTGRES_DB" default:"metalmarket"`
	SSLMode         string        `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime time.Duration `envconfig:"POSTGRES_CONN_MAX_IDLE_TIME" default:"1m"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	ListTTL  time.Duration `envconfig:"REDIS_LIST_TTL" default:"5m"`
}

type KafkaConfig struct {
	Enabled    bool     `envconfig:"KAFKA_ENABLED" default:"true"`
	Brokers    []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	ViewsTopic string   `envconfig:"KAFKA_TOPIC_PRODUCT_VIEWS" default:"catalog.product-views"`
	LeadsTopic string   `envconfig:"KAFKA_TOPIC_LEADS" default:"catalog.leads"`
	GroupID    string   `envconfig:"KAFKA_GROUP_VIEWS" default:"catalog-views"`
}

type ElasticsearchConfig struct {
	Addresses []string `envconfig:"ELASTICSEARCH_ADDRESSES" default:"http://localhost:9200"`
	Username  string   `envconfig:"ELASTICSEARCH_USERNAME" default:""`
	Password  string   `envconfig:"ELASTICSEARCH_PASSWORD" default:""`
	Index     string   `envconfig:"ELASTICSEARCH_INDEX" default:"products"`
}

// LoadEnv reads an optional .env file and then the process environment.
// Nested fields fall back to their unprefixed tag, so POSTGRES_HOST works as-is.
func LoadEnv() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}
