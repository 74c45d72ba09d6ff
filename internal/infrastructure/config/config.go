package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/prestamos/loan-service/pkg/kafka"
	"github.com/prestamos/loan-service/pkg/observability"
	"github.com/prestamos/loan-service/pkg/postgres"
)

// EnvPrefix is prepended to every environment variable, so db.password is
// read from LOANS_DB_PASSWORD.
const EnvPrefix = "LOANS"

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type KafkaConfig struct {
	// Brokers is empty when events should only be logged.
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
	TLS           bool     `mapstructure:"tls"`
	SASLMechanism string   `mapstructure:"sasl_mechanism"`
	SASLUsername  string   `mapstructure:"sasl_username"`
	SASLPassword  string   `mapstructure:"sasl_password"`
}

type RedisConfig struct {
	// Addr is empty when flash messages should be kept in memory.
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	FlashTTL time.Duration `mapstructure:"flash_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	GRPCPort      int            `mapstructure:"grpc_port"`
	HTTPPort      int            `mapstructure:"http_port"`
	DB            DatabaseConfig `mapstructure:"db"`
	Kafka         KafkaConfig    `mapstructure:"kafka"`
	Redis         RedisConfig    `mapstructure:"redis"`
	Log           LogConfig      `mapstructure:"log"`
	Timezone      string         `mapstructure:"timezone"`
	UpcomingLimit int            `mapstructure:"upcoming_limit"`
	ServiceName   string         `mapstructure:"service_name"`

	location *time.Location
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grpc_port", 9090)
	v.SetDefault("http_port", 8080)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "loans")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "loans")
	v.SetDefault("db.sslmode", "require")
	v.SetDefault("db.max_conns", 10)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "loans.events")
	v.SetDefault("kafka.consumer_group", "loans-tail")
	v.SetDefault("kafka.tls", false)
	v.SetDefault("kafka.sasl_mechanism", "")
	v.SetDefault("kafka.sasl_username", "")
	v.SetDefault("kafka.sasl_password", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.flash_ttl", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("timezone", "America/Lima")
	v.SetDefault("upcoming_limit", 10)
	v.SetDefault("service_name", "loan-service")
}

// Load reads defaults, then the optional config file at path, then LOANS_*
// environment variables. Later sources win.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	// A comma-separated LOANS_KAFKA_BROKERS arrives as one element.
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return cfg, nil
}

// Validate reports every missing or out-of-range setting needed to serve.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Password == "" {
		errs = append(errs, errors.New("db.password (LOANS_DB_PASSWORD) is required"))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("http_port %d out of range", c.HTTPPort))
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("grpc_port %d out of range", c.GRPCPort))
	}
	if c.UpcomingLimit <= 0 {
		errs = append(errs, fmt.Errorf("upcoming_limit must be positive, got %d", c.UpcomingLimit))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
	}
	return errors.Join(errs...)
}

// Location is the business time zone. Due dates and penalties are judged on
// calendar days in this zone.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// Postgres maps the database section onto the pool config.
func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:            c.DB.Host,
		Port:            c.DB.Port,
		User:            c.DB.User,
		Password:        c.DB.Password,
		Database:        c.DB.Name,
		SSLMode:         c.DB.SSLMode,
		ApplicationName: c.ServiceName,
		MaxConns:        c.DB.MaxConns,
	}
}

// KafkaClient maps the kafka section onto the client config.
func (c Config) KafkaClient() kafka.Config {
	return kafka.Config{
		Brokers:       c.Kafka.Brokers,
		ConsumerGroup: c.Kafka.ConsumerGroup,
		TLS:           c.Kafka.TLS,
		SASLEnabled:   c.Kafka.SASLMechanism != "",
		SASLMechanism: c.Kafka.SASLMechanism,
		SASLUsername:  c.Kafka.SASLUsername,
		SASLPassword:  c.Kafka.SASLPassword,
	}
}

// Logging maps the log section onto the logger config.
func (c Config) Logging() observability.LogConfig {
	return observability.LogConfig{Level: c.Log.Level, Format: c.Log.Format}
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
