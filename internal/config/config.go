package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabasePath string
	Port         string

	// PollInterval is the reminder sweep interval.
	PollInterval time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// CarrierGateways maps a mobile carrier name to the email domain of its
	// SMS gateway.
	CarrierGateways map[string]string
}

// defaultCarrierGateways covers the common US carriers. Additional carriers
// are merged in from CARRIER_GATEWAYS ("Name=domain" pairs, comma-separated).
var defaultCarrierGateways = map[string]string{
	"AT&T":     "txt.att.net",
	"Verizon":  "vtext.com",
	"T-Mobile": "tmomail.net",
	"Sprint":   "messaging.sprintpcs.com",
}

func Load() *Config {
	cfg := &Config{
		DatabasePath:    getEnv("DATABASE_PATH", "./medminder.db"),
		Port:            getEnv("PORT", "3000"),
		PollInterval:    getEnvDuration("POLL_INTERVAL", time.Minute),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		CarrierGateways: loadCarrierGateways(getEnv("CARRIER_GATEWAYS", "")),
	}
	cfg.SMTPFrom = getEnv("SMTP_FROM", cfg.SMTPUsername)

	return cfg
}

// loadCarrierGateways merges user-provided mappings over the defaults, so a
// deployment can add carriers or override a gateway domain without a rebuild.
func loadCarrierGateways(raw string) map[string]string {
	gateways := make(map[string]string, len(defaultCarrierGateways))
	for carrier, domain := range defaultCarrierGateways {
		gateways[carrier] = domain
	}

	if raw == "" {
		return gateways
	}

	for _, pair := range strings.Split(raw, ",") {
		carrier, domain, ok := strings.Cut(pair, "=")
		carrier = strings.TrimSpace(carrier)
		domain = strings.TrimSpace(domain)
		if !ok || carrier == "" || domain == "" {
			log.Printf("Warning: ignoring malformed carrier gateway entry %q", pair)
			continue
		}
		gateways[carrier] = domain
	}

	return gateways
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using default", key, value)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		log.Printf("Warning: invalid %s value %q, using default", key, value)
		return defaultValue
	}
	return parsed
}
