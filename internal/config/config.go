package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Source describes the upstream products endpoint.
type Source struct {
	BaseURL string        `yaml:"SOURCE_BASE_URL" env:"SOURCE_BASE_URL" env-default:"https://dummyjson.com"`
	Limit   int           `yaml:"SOURCE_LIMIT" env:"SOURCE_LIMIT" env-default:"10"`
	Timeout time.Duration `yaml:"SOURCE_TIMEOUT" env:"SOURCE_TIMEOUT" env-default:"10s"`
}

type Catalog struct {
	ItemsPerPage   int           `yaml:"ITEMS_PER_PAGE" env:"ITEMS_PER_PAGE" env-default:"8"`
	SearchDebounce time.Duration `yaml:"SEARCH_DEBOUNCE" env:"SEARCH_DEBOUNCE" env-default:"0s"`
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Session struct {
	TTL        time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"30m"`
	Store      string        `yaml:"SESSION_STORE" env:"SESSION_STORE" env-default:"memory"`
	CookieName string        `yaml:"SESSION_COOKIE" env:"SESSION_COOKIE" env-default:"catalog_session"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"catalog-browser"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Source       Source       `yaml:"source"`
	Catalog      Catalog      `yaml:"catalog"`
	Session      Session      `yaml:"session"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cache        CacheConfig  `yaml:"cache"`
	Otel         Otel         `yaml:"otel"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg

}

// LoadConfigFromPath reads the YAML file at configPath and applies environment overrides.
func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the catalog cannot run with.
func (c *Config) Validate() error {
	if c.Source.Limit <= 0 {
		return fmt.Errorf("source limit must be positive, got %d", c.Source.Limit)
	}

	if c.Catalog.ItemsPerPage <= 0 {
		return fmt.Errorf("items per page must be positive, got %d", c.Catalog.ItemsPerPage)
	}

	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}

	return nil
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

// ProductsURL is the upstream endpoint including the batch size parameter.
func (s *Source) ProductsURL() string {
	return fmt.Sprintf("%s/products?limit=%d", strings.TrimRight(s.BaseURL, "/"), s.Limit)
}
