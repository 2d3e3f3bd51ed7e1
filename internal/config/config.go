package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Trace exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// DefaultJWTSecret signs admin tokens when nothing else is configured.
// Only the memory backend may run with it.
const DefaultJWTSecret = "dev-secret-please-change"

// Config is the complete server configuration.
type Config struct {
	Port         string          `yaml:"port" json:"port"`
	AllowOrigins []string        `yaml:"allowOrigins" json:"allowOrigins"`
	Store        StoreConfig     `yaml:"store" json:"store"`
	Admin        AdminConfig     `yaml:"admin" json:"admin"`
	Shop         ShopConfig      `yaml:"shop" json:"shop"`
	Delivery     DeliveryConfig  `yaml:"delivery" json:"delivery"`
	HeroPeriod   time.Duration   `yaml:"heroPeriod" json:"heroPeriod"`
	Resend       ResendConfig    `yaml:"resend" json:"resend"`
	Telemetry    TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

type StoreConfig struct {
	Backend     string `yaml:"backend" json:"backend"`
	RedisURL    string `yaml:"redisUrl" json:"redisUrl"`
	RedisPrefix string `yaml:"redisPrefix" json:"redisPrefix"`
	DatabaseURL string `yaml:"databaseUrl" json:"databaseUrl"`
}

type AdminConfig struct {
	Passphrase string        `yaml:"passphrase" json:"passphrase"`
	JWTSecret  string        `yaml:"jwtSecret" json:"jwtSecret"`
	TokenTTL   time.Duration `yaml:"tokenTtl" json:"tokenTtl"`
}

type ShopConfig struct {
	Name          string `yaml:"name" json:"name"`
	WhatsApp      string `yaml:"whatsapp" json:"whatsapp"`
	OfficialEmail string `yaml:"officialEmail" json:"officialEmail"`
	BKashNumber   string `yaml:"bkashNumber" json:"bkashNumber"`
	FacebookPage  string `yaml:"facebookPage" json:"facebookPage"`
	DefaultLogo   string `yaml:"defaultLogo" json:"defaultLogo"`
}

type DeliveryConfig struct {
	Inside  float64 `yaml:"inside" json:"inside"`
	Outside float64 `yaml:"outside" json:"outside"`
}

type ResendConfig struct {
	APIKey string `yaml:"apiKey" json:"apiKey"`
	From   string `yaml:"from" json:"from"`
}

type TelemetryConfig struct {
	Exporter    string `yaml:"exporter" json:"exporter"`
	Endpoint    string `yaml:"endpoint" json:"endpoint"`
	ServiceName string `yaml:"serviceName" json:"serviceName"`
}

// New returns the configuration defaults.
func New() *Config {
	return &Config{
		Port:         "8080",
		AllowOrigins: []string{"*"},
		Store: StoreConfig{
			Backend:     BackendMemory,
			RedisPrefix: "mela:",
		},
		Admin: AdminConfig{
			JWTSecret: DefaultJWTSecret,
			TokenTTL:  12 * time.Hour,
		},
		Shop: ShopConfig{
			Name:          "Mela Shop",
			WhatsApp:      "8801981500986",
			OfficialEmail: "melashop247@gmail.com",
			BKashNumber:   "01798712944",
			FacebookPage:  "https://www.facebook.com/share/1GWTkXuE4m/",
			DefaultLogo:   "https://i.ibb.co/vzR0yFp/mela-logo.png",
		},
		Delivery: DeliveryConfig{
			Inside:  70,
			Outside: 130,
		},
		HeroPeriod: 5 * time.Second,
		Resend: ResendConfig{
			From: "Mela Shop <onboarding@resend.dev>",
		},
		Telemetry: TelemetryConfig{
			Exporter:    ExporterNone,
			ServiceName: "mela-shop",
		},
	}
}

// Load builds the configuration from defaults, an optional file and the
// environment, in that order.
func Load(path string) (*Config, error) {
	c := New()
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// NaN marks a fee the file leaves out, so an explicit 0 still applies.
	loaded := Config{Delivery: DeliveryConfig{Inside: math.NaN(), Outside: math.NaN()}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	}

	c.merge(&loaded)
	return nil
}

// merge copies every value set in loaded over c.
func (c *Config) merge(loaded *Config) {
	setString(&c.Port, loaded.Port)
	if origins := cleanList(loaded.AllowOrigins); len(origins) > 0 {
		c.AllowOrigins = origins
	}

	setString(&c.Store.Backend, loaded.Store.Backend)
	setString(&c.Store.RedisURL, loaded.Store.RedisURL)
	setString(&c.Store.RedisPrefix, loaded.Store.RedisPrefix)
	setString(&c.Store.DatabaseURL, loaded.Store.DatabaseURL)

	setString(&c.Admin.Passphrase, loaded.Admin.Passphrase)
	setString(&c.Admin.JWTSecret, loaded.Admin.JWTSecret)
	if loaded.Admin.TokenTTL > 0 {
		c.Admin.TokenTTL = loaded.Admin.TokenTTL
	}

	setString(&c.Shop.Name, loaded.Shop.Name)
	setString(&c.Shop.WhatsApp, loaded.Shop.WhatsApp)
	setString(&c.Shop.OfficialEmail, loaded.Shop.OfficialEmail)
	setString(&c.Shop.BKashNumber, loaded.Shop.BKashNumber)
	setString(&c.Shop.FacebookPage, loaded.Shop.FacebookPage)
	setString(&c.Shop.DefaultLogo, loaded.Shop.DefaultLogo)

	if !math.IsNaN(loaded.Delivery.Inside) {
		c.Delivery.Inside = loaded.Delivery.Inside
	}
	if !math.IsNaN(loaded.Delivery.Outside) {
		c.Delivery.Outside = loaded.Delivery.Outside
	}
	if loaded.HeroPeriod > 0 {
		c.HeroPeriod = loaded.HeroPeriod
	}

	setString(&c.Resend.APIKey, loaded.Resend.APIKey)
	setString(&c.Resend.From, loaded.Resend.From)

	setString(&c.Telemetry.Exporter, loaded.Telemetry.Exporter)
	setString(&c.Telemetry.Endpoint, loaded.Telemetry.Endpoint)
	setString(&c.Telemetry.ServiceName, loaded.Telemetry.ServiceName)
}

// cleanList trims every entry and drops the empty ones.
func cleanList(list []string) []string {
	var out []string
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ApplyEnv overrides values from environment variables.
func (c *Config) ApplyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	if origins := cleanList(strings.Split(os.Getenv("ALLOW_ORIGINS"), ",")); len(origins) > 0 {
		c.AllowOrigins = origins
	}

	c.Store.Backend = getEnv("MELA_STORE", c.Store.Backend)
	c.Store.RedisURL = getEnv("REDIS_URL", c.Store.RedisURL)
	c.Store.RedisPrefix = getEnv("REDIS_PREFIX", c.Store.RedisPrefix)
	c.Store.DatabaseURL = getEnv("DATABASE_URL", c.Store.DatabaseURL)

	c.Admin.Passphrase = getEnv("ADMIN_PASSPHRASE", c.Admin.Passphrase)
	c.Admin.JWTSecret = getEnv("JWT_SECRET", c.Admin.JWTSecret)

	c.Shop.Name = getEnv("STORE_NAME", c.Shop.Name)
	c.Shop.WhatsApp = getEnv("WHATSAPP_NUMBER", c.Shop.WhatsApp)
	c.Shop.OfficialEmail = getEnv("OFFICIAL_EMAIL", c.Shop.OfficialEmail)
	c.Shop.BKashNumber = getEnv("BKASH_NUMBER", c.Shop.BKashNumber)
	c.Shop.FacebookPage = getEnv("FACEBOOK_PAGE", c.Shop.FacebookPage)
	c.Shop.DefaultLogo = getEnv("DEFAULT_LOGO", c.Shop.DefaultLogo)

	c.Resend.APIKey = getEnv("RESEND_API_KEY", c.Resend.APIKey)
	c.Resend.From = getEnv("RESEND_FROM", c.Resend.From)

	c.Telemetry.Exporter = getEnv("OTEL_EXPORTER", c.Telemetry.Exporter)
	c.Telemetry.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Telemetry.Endpoint)
	c.Telemetry.ServiceName = getEnv("OTEL_SERVICE_NAME", c.Telemetry.ServiceName)

	var errs []error
	var err error
	if c.Admin.TokenTTL, err = envDuration("JWT_TTL", c.Admin.TokenTTL); err != nil {
		errs = append(errs, err)
	}
	if c.HeroPeriod, err = envDuration("HERO_PERIOD", c.HeroPeriod); err != nil {
		errs = append(errs, err)
	}
	if c.Delivery.Inside, err = envFloat("DELIVERY_FEE_INSIDE", c.Delivery.Inside); err != nil {
		errs = append(errs, err)
	}
	if c.Delivery.Outside, err = envFloat("DELIVERY_FEE_OUTSIDE", c.Delivery.Outside); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Store.RedisURL == "" {
			errs = append(errs, errors.New("store: redis backend needs REDIS_URL"))
		}
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("store: postgres backend needs DATABASE_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("store: unknown backend %q", c.Store.Backend))
	}
	if c.Admin.Passphrase == "" {
		errs = append(errs, errors.New("admin: ADMIN_PASSPHRASE is required"))
	}
	if c.Store.Backend != BackendMemory && (c.Admin.JWTSecret == "" || c.Admin.JWTSecret == DefaultJWTSecret) {
		errs = append(errs, errors.New("admin: set JWT_SECRET when using a persistent store"))
	}
	if c.Admin.TokenTTL <= 0 {
		errs = append(errs, errors.New("admin: token ttl must be positive"))
	}
	if c.Delivery.Inside < 0 || c.Delivery.Outside < 0 || math.IsNaN(c.Delivery.Inside) || math.IsNaN(c.Delivery.Outside) {
		errs = append(errs, errors.New("delivery: fees cannot be negative"))
	}
	switch c.Telemetry.Exporter {
	case ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.Telemetry.Endpoint == "" {
			errs = append(errs, errors.New("telemetry: otlp exporter needs OTEL_EXPORTER_OTLP_ENDPOINT"))
		}
	default:
		errs = append(errs, fmt.Errorf("telemetry: unknown exporter %q", c.Telemetry.Exporter))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
