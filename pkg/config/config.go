package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Google   GoogleConfig
	Cache    CacheConfig
	Cart     CartConfig
	WhatsApp WhatsAppConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CHOCOVILLA_APP_ENV" default:"development"`
	Port         string `envconfig:"CHOCOVILLA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CHOCOVILLA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHOCOVILLA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"CHOCOVILLA_REDIS_URL"`
	Address      string        `envconfig:"CHOCOVILLA_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"CHOCOVILLA_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHOCOVILLA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHOCOVILLA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHOCOVILLA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHOCOVILLA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHOCOVILLA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHOCOVILLA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// GoogleConfig locates the content spreadsheet. Both values are mandatory for
// every sheet fetch; pkg/sheets refuses to construct a client without them.
type GoogleConfig struct {
	APIKey  string `envconfig:"GOOGLE_API_KEY"`
	SheetID string `envconfig:"GOOGLE_SHEET_ID"`
}

type CacheConfig struct {
	SheetTTL time.Duration `envconfig:"CHOCOVILLA_SHEET_CACHE_TTL" default:"60s"`
}

type CartConfig struct {
	SnapshotTTL time.Duration `envconfig:"CHOCOVILLA_CART_TTL" default:"720h"`
}

type WhatsAppConfig struct {
	Phone string `envconfig:"CHOCOVILLA_WHATSAPP_PHONE" default:"919825947680"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CHOCOVILLA_CORS_ORIGINS" default:"http://localhost:3000"`
}
