package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the PDU simulator.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	PDU      PDUConfig      `yaml:"pdu"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	API      APIConfig      `yaml:"api"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
}

// PDUConfig describes the simulated power distribution unit.
type PDUConfig struct {
	ID           string `yaml:"id"`
	Model        string `yaml:"model"`
	Manufacturer string `yaml:"manufacturer"`
	SerialNumber string `yaml:"serial_number"`
	ServiceUUID  string `yaml:"service_uuid"`

	Outlets  int `yaml:"outlets"`
	Branches int `yaml:"branches"`
	Phases   int `yaml:"phases"`
	Segments int `yaml:"segments"`

	NominalVoltage   float64 `yaml:"nominal_voltage"`
	NominalFrequency float64 `yaml:"nominal_frequency"`

	// Loads maps outlet index to its base load in watts. Outlets absent
	// from the map are treated as unconnected and draw nothing.
	Loads map[int]float64 `yaml:"loads"`
}

// DatabaseConfig contains SQLite database settings.
// The default path ":memory:" keeps accounts, sessions and subscriptions
// in process memory only, so state is reset on every restart.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// InfluxDBConfig contains InfluxDB connection settings for the optional
// reading recorder.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SecurityConfig contains security settings.
type SecurityConfig struct {
	JWT   JWTConfig   `yaml:"jwt"`
	Admin AdminConfig `yaml:"admin"`
}

// JWTConfig contains session token signing settings.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// AdminConfig contains the built-in administrator credentials seeded at
// startup. The account cannot be deleted through the API.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: PDUSIM_SECTION_KEY
// For example: PDUSIM_DATABASE_PATH, PDUSIM_API_PORT
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadDefaults builds a configuration from built-in defaults and
// environment variable overrides, without reading any file.
//
// Returns:
//   - *Config: Validated configuration
//   - error: If validation fails
func LoadDefaults() (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config describing the stock 48-outlet mock unit.
// It is valid as-is apart from the JWT secret, which must be supplied
// via file or environment.
func Default() *Config {
	return &Config{
		PDU: PDUConfig{
			ID:           "2",
			Model:        "Schneider Electric SmartPDU (Mock) 48-outlet",
			Manufacturer: "Schneider Electric (Mock)",
			SerialNumber: "MOCK-SN-0001",
			ServiceUUID:  "b2a6f2b7-5c4a-4ab3-a8df-51c6c5f3db66",

			Outlets:  48,
			Branches: 3,
			Phases:   3,
			Segments: 3,

			NominalVoltage:   230.0,
			NominalFrequency: 50.0,

			Loads: map[int]float64{
				1:  140,
				2:  45,
				3:  90,
				10: 220,
				12: 75,
				20: 180,
				44: 260,
			},
		},
		Database: DatabaseConfig{
			Path:        ":memory:",
			WALMode:     false,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Enabled: false,
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "pdusim",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8000,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Security: SecurityConfig{
			Admin: AdminConfig{
				Username: "admin",
				Password: "123456789",
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: PDUSIM_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// PDU identity
	if v := os.Getenv("PDUSIM_PDU_ID"); v != "" {
		cfg.PDU.ID = v
	}

	// Database
	if v := os.Getenv("PDUSIM_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("PDUSIM_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("PDUSIM_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("PDUSIM_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// API
	if v := os.Getenv("PDUSIM_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("PDUSIM_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// InfluxDB
	if v := os.Getenv("PDUSIM_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Security - JWT secret (IMPORTANT: always override in production)
	if v := os.Getenv("PDUSIM_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}
	if v := os.Getenv("PDUSIM_ADMIN_PASSWORD"); v != "" {
		cfg.Security.Admin.Password = v
	}
}

// Validate checks the configuration for errors and security issues.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// PDU validation
	if c.PDU.ID == "" {
		errs = append(errs, "pdu.id is required")
	}
	if c.PDU.Outlets < 1 {
		errs = append(errs, "pdu.outlets must be at least 1")
	}
	if c.PDU.Phases < 1 {
		errs = append(errs, "pdu.phases must be at least 1")
	}
	if c.PDU.Segments < 1 {
		errs = append(errs, "pdu.segments must be at least 1")
	} else if c.PDU.Outlets%c.PDU.Segments != 0 {
		errs = append(errs, "pdu.segments must divide pdu.outlets evenly")
	}
	if c.PDU.NominalVoltage <= 0 {
		errs = append(errs, "pdu.nominal_voltage must be positive")
	}
	if c.PDU.NominalFrequency <= 0 {
		errs = append(errs, "pdu.nominal_frequency must be positive")
	}
	for idx, load := range c.PDU.Loads {
		if idx < 1 || idx > c.PDU.Outlets {
			errs = append(errs, fmt.Sprintf("pdu.loads: outlet %d outside 1..%d", idx, c.PDU.Outlets))
		}
		if load < 0 {
			errs = append(errs, fmt.Sprintf("pdu.loads: outlet %d has negative load", idx))
		}
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// Security validation - JWT secret is REQUIRED
	// Session tokens are signed with this secret. Empty or weak secrets
	// would allow forged tokens against the management API.
	const minJWTSecretLength = 32
	if c.Security.JWT.Secret == "" {
		errs = append(errs, "security.jwt.secret is required (set PDUSIM_JWT_SECRET environment variable)")
	} else if len(c.Security.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "security.jwt.secret must be at least 32 characters for adequate security")
	}
	if c.Security.Admin.Username == "" {
		errs = append(errs, "security.admin.username is required")
	}
	if c.Security.Admin.Password == "" {
		errs = append(errs, "security.admin.password is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
