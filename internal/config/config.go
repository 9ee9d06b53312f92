// Package config loads service settings. Values come from an optional YAML
// file (CONFIG_FILE), then the environment (including a .env file), then
// defaults.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	MongoURI      string `yaml:"mongodb_uri"`
	MongoDatabase string `yaml:"mongodb_database"`

	JWTSecret    string            `yaml:"jwt_secret"`
	JWTKeys      map[string]string `yaml:"jwt_keys"`
	JWTActiveKid string            `yaml:"jwt_active_kid"`
	TokenTTL     time.Duration     `yaml:"token_ttl"`

	Port           string   `yaml:"port"`
	HTTPAddr       string   `yaml:"http_addr"`
	RateLimitRPM   int      `yaml:"rate_limit_rpm"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	TLSCert    string `yaml:"tls_cert"`
	TLSKey     string `yaml:"tls_key"`
	RequireTLS bool   `yaml:"require_tls"`

	ScoringURL     string        `yaml:"scoring_url"`
	ScoringTimeout time.Duration `yaml:"scoring_timeout"`
	ScoreInterval  time.Duration `yaml:"score_interval"`
	StorageHosts   []string      `yaml:"storage_hosts"`

	SearchDebounce time.Duration `yaml:"search_debounce"`
	ChangeStreams  bool          `yaml:"change_streams"`
}

// Load reads .env, the YAML file named by CONFIG_FILE (if any) and the
// environment, applies defaults and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: could not read .env: %v", err)
	}

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.MongoURI, "MONGODB_URI")
	setString(&c.MongoDatabase, "MONGODB_DATABASE")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.JWTActiveKid, "JWT_ACTIVE_KID")
	setString(&c.Port, "PORT")
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.TLSCert, "TLS_CERT")
	setString(&c.TLSKey, "TLS_KEY")
	setString(&c.ScoringURL, "SCORING_URL")

	if v := os.Getenv("JWT_KEYS"); v != "" {
		keys, err := ParseKeys(v)
		if err != nil {
			return err
		}
		c.JWTKeys = keys
	}
	setList(&c.StorageHosts, "STORAGE_HOSTS")
	setList(&c.AllowedOrigins, "ALLOWED_ORIGINS")
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPM: %w", err)
		}
		c.RateLimitRPM = n
	}
	if v := os.Getenv("REQUIRE_TLS"); v != "" {
		c.RequireTLS = v == "true"
	}
	if v := os.Getenv("CHANGE_STREAMS"); v != "" {
		c.ChangeStreams = v == "true"
	}

	for key, dst := range map[string]*time.Duration{
		"TOKEN_TTL":       &c.TokenTTL,
		"SCORING_TIMEOUT": &c.ScoringTimeout,
		"SCORE_INTERVAL":  &c.ScoreInterval,
		"SEARCH_DEBOUNCE": &c.SearchDebounce,
	} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.MongoDatabase == "" {
		c.MongoDatabase = "jobboard"
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.Port == "" {
		c.Port = "50051"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.RateLimitRPM <= 0 {
		c.RateLimitRPM = 10
	}
	if c.ScoringURL == "" {
		c.ScoringURL = "http://localhost:5000"
	}
	if c.ScoringTimeout == 0 {
		c.ScoringTimeout = 120 * time.Second
	}
	if c.ScoreInterval == 0 {
		c.ScoreInterval = time.Second
	}
	if c.SearchDebounce == 0 {
		c.SearchDebounce = 300 * time.Millisecond
	}
	if len(c.StorageHosts) == 0 {
		c.StorageHosts = []string{"firebasestorage.googleapis.com", "storage.googleapis.com"}
	}
}

// Validate reports missing or inconsistent settings.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGODB_URI must be set")
	}
	if c.JWTSecret == "" && len(c.JWTKeys) == 0 {
		return errors.New("either JWT_SECRET or JWT_KEYS must be set")
	}
	if len(c.JWTKeys) > 0 {
		if c.JWTActiveKid == "" {
			return errors.New("JWT_ACTIVE_KID must be set when JWT_KEYS is used")
		}
		if _, ok := c.JWTKeys[c.JWTActiveKid]; !ok {
			return fmt.Errorf("JWT_ACTIVE_KID %q is not in JWT_KEYS", c.JWTActiveKid)
		}
	}
	if c.RequireTLS && (c.TLSCert == "" || c.TLSKey == "") {
		return errors.New("REQUIRE_TLS is true but TLS_CERT/TLS_KEY are not configured")
	}
	return nil
}

// ParseKeys parses "kid:secret,kid2:secret2".
func ParseKeys(s string) (map[string]string, error) {
	keys := map[string]string{}
	for _, p := range strings.Split(s, ",") {
		if p == "" {
			continue
		}
		parts := strings.SplitN(p, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid JWT_KEYS entry: %s", p)
		}
		keys[parts[0]] = parts[1]
	}
	return keys, nil
}

// setList reads a comma separated list, skipping blank entries.
func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
