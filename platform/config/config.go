// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// RaynetConfig provides settings for the Raynet CRM API client.
type RaynetConfig interface {
	GetRaynetBaseURL() string
	GetRaynetInstance() string
	GetRaynetUsername() string
	GetRaynetAPIKey() string
	GetRaynetTimeout() time.Duration
	GetRaynetMaxConcurrency() int
	GetRaynetRPS() float64
	GetRaynetMaxRetries() int
}

// RendererConfig provides settings for the external document renderer.
type RendererConfig interface {
	GetRendererURL() string
	GetRendererTimeout() time.Duration
	IsRendererEnabled() bool
}

// CacheConfig provides settings for the offer summary cache.
type CacheConfig interface {
	GetRedisURL() string
	GetSummaryCacheTTL() time.Duration
	GetSummaryCacheSize() int
}

// SummaryConfig provides presentation defaults and the supplier organization defaults.
type SummaryConfig interface {
	GetDefaultGroupBy() string
	GetDefaultTemplate() string
	GetPriceRounding() string
	GetSupplierDefaults() SupplierDefaults
}

// SupplierDefaults is the home organization used as the last fallback tier
// for the supplier party block.
type SupplierDefaults struct {
	CompanyName  string
	Street       string
	CityZip      string
	Country      string
	RegNumber    string
	VatNumber    string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Website      string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	RateLimitRPS        float64
	RateLimitBurst      int
	RaynetBaseURL       string
	RaynetInstance      string
	RaynetUsername      string
	RaynetAPIKey        string
	RaynetTimeout       time.Duration
	RaynetMaxConcurrent int
	RaynetRPS           float64
	RaynetMaxRetries    int
	RendererURL         string
	RendererTimeout     time.Duration
	RedisURL            string
	SummaryCacheTTL     time.Duration
	SummaryCacheSize    int
	DefaultGroupBy      string
	DefaultTemplate     string
	PriceRounding       string
	Supplier            SupplierDefaults
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// RaynetConfig implementation
func (c *Config) GetRaynetBaseURL() string        { return c.RaynetBaseURL }
func (c *Config) GetRaynetInstance() string       { return c.RaynetInstance }
func (c *Config) GetRaynetUsername() string       { return c.RaynetUsername }
func (c *Config) GetRaynetAPIKey() string         { return c.RaynetAPIKey }
func (c *Config) GetRaynetTimeout() time.Duration { return c.RaynetTimeout }
func (c *Config) GetRaynetMaxConcurrency() int    { return c.RaynetMaxConcurrent }
func (c *Config) GetRaynetRPS() float64           { return c.RaynetRPS }
func (c *Config) GetRaynetMaxRetries() int        { return c.RaynetMaxRetries }

// RendererConfig implementation
func (c *Config) GetRendererURL() string            { return c.RendererURL }
func (c *Config) GetRendererTimeout() time.Duration { return c.RendererTimeout }
func (c *Config) IsRendererEnabled() bool           { return c.RendererURL != "" }

// CacheConfig implementation
func (c *Config) GetRedisURL() string               { return c.RedisURL }
func (c *Config) GetSummaryCacheTTL() time.Duration { return c.SummaryCacheTTL }
func (c *Config) GetSummaryCacheSize() int          { return c.SummaryCacheSize }

// SummaryConfig implementation
func (c *Config) GetDefaultGroupBy() string             { return c.DefaultGroupBy }
func (c *Config) GetDefaultTemplate() string            { return c.DefaultTemplate }
func (c *Config) GetPriceRounding() string              { return c.PriceRounding }
func (c *Config) GetSupplierDefaults() SupplierDefaults { return c.Supplier }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":3001"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		RateLimitRPS:        mustFloat(getEnv("RATE_LIMIT_RPS", "10")),
		RateLimitBurst:      mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		RaynetBaseURL:       strings.TrimRight(getEnv("RAYNET_BASE_URL", ""), "/"),
		RaynetInstance:      getEnv("RAYNET_INSTANCE", ""),
		RaynetUsername:      getEnv("RAYNET_USERNAME", ""),
		RaynetAPIKey:        getEnv("RAYNET_API_KEY", ""),
		RaynetTimeout:       mustDuration(getEnv("RAYNET_TIMEOUT", "15s")),
		RaynetMaxConcurrent: mustInt(getEnv("RAYNET_MAX_CONCURRENCY", "8")),
		RaynetRPS:           mustFloat(getEnv("RAYNET_RPS", "5")),
		RaynetMaxRetries:    mustInt(getEnv("RAYNET_MAX_RETRIES", "3")),
		RendererURL:         strings.TrimRight(getEnv("RENDERER_URL", ""), "/"),
		RendererTimeout:     mustDuration(getEnv("RENDERER_TIMEOUT", "60s")),
		RedisURL:            getEnv("REDIS_URL", ""),
		SummaryCacheTTL:     mustDuration(getEnv("SUMMARY_CACHE_TTL", "10m")),
		SummaryCacheSize:    mustInt(getEnv("SUMMARY_CACHE_SIZE", "256")),
		DefaultGroupBy:      getEnv("DEFAULT_GROUP_BY", "Naprava_fe9fa"),
		DefaultTemplate:     getEnv("DEFAULT_TEMPLATE", "withQuantity"),
		PriceRounding:       getEnv("PRICE_ROUNDING", "cents"),
		Supplier: SupplierDefaults{
			CompanyName:  getEnv("SUPPLIER_COMPANY_NAME", "CZECH STYLE, spol. s r.o."),
			Street:       getEnv("SUPPLIER_STREET", "Tečovská 1239"),
			CityZip:      getEnv("SUPPLIER_CITY_ZIP", "763 02 Zlín-Malenovice"),
			Country:      getEnv("SUPPLIER_COUNTRY", "Česká republika"),
			RegNumber:    getEnv("SUPPLIER_REG_NUMBER", "25560174"),
			VatNumber:    getEnv("SUPPLIER_VAT_NUMBER", "CZ25560174"),
			ContactName:  getEnv("SUPPLIER_CONTACT_NAME", "Zákaznický servis"),
			ContactEmail: getEnv("SUPPLIER_CONTACT_EMAIL", "info@czstyle.cz"),
			ContactPhone: getEnv("SUPPLIER_CONTACT_PHONE", "+420 571 120 100"),
			Website:      getEnv("SUPPLIER_WEBSITE", "https://www.czstyle.cz/"),
		},
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.PriceRounding != "cents" && cfg.PriceRounding != "whole" {
		return nil, fmt.Errorf("PRICE_ROUNDING must be cents or whole, got %q", cfg.PriceRounding)
	}
	if cfg.RaynetMaxConcurrent < 1 {
		cfg.RaynetMaxConcurrent = 1
	}

	return cfg, nil
}

// RequireRaynet reports an error when the CRM connection is not configured.
func (c *Config) RequireRaynet() error {
	if c.RaynetBaseURL == "" {
		return fmt.Errorf("RAYNET_BASE_URL is required")
	}
	if c.RaynetUsername == "" || c.RaynetAPIKey == "" {
		return fmt.Errorf("RAYNET_USERNAME and RAYNET_API_KEY are required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
