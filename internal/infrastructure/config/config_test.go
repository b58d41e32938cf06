package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create a temporary config file
	content := `
pdu:
  id: "7"
  outlets: 24
  segments: 3
database:
  path: ":memory:"
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
api:
  host: "0.0.0.0"
  port: 8000
security:
  jwt:
    secret: "test-secret-key-at-least-32-chars!"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.PDU.ID != "7" {
		t.Errorf("PDU.ID = %q, want %q", cfg.PDU.ID, "7")
	}

	if cfg.PDU.Outlets != 24 {
		t.Errorf("PDU.Outlets = %d, want 24", cfg.PDU.Outlets)
	}

	// Defaults survive partial files
	if cfg.PDU.NominalVoltage != 230.0 {
		t.Errorf("PDU.NominalVoltage = %v, want 230", cfg.PDU.NominalVoltage)
	}

	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, ":memory:")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	// validJWTSecret is a secret that meets the 32-character minimum requirement
	validJWTSecret := "test-secret-key-at-least-32-chars!"

	valid := func() *Config {
		cfg := Default()
		cfg.Security.JWT.Secret = validJWTSecret
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing pdu ID",
			mutate:  func(c *Config) { c.PDU.ID = "" },
			wantErr: true,
		},
		{
			name:    "zero outlets",
			mutate:  func(c *Config) { c.PDU.Outlets = 0 },
			wantErr: true,
		},
		{
			name:    "segments do not divide outlets",
			mutate:  func(c *Config) { c.PDU.Segments = 5 },
			wantErr: true,
		},
		{
			name:    "load outside outlet range",
			mutate:  func(c *Config) { c.PDU.Loads[99] = 100 },
			wantErr: true,
		},
		{
			name:    "negative load",
			mutate:  func(c *Config) { c.PDU.Loads[1] = -5 },
			wantErr: true,
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "invalid QoS",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: true,
		},
		{
			name:    "invalid port low",
			mutate:  func(c *Config) { c.API.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port high",
			mutate:  func(c *Config) { c.API.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing JWT secret",
			mutate:  func(c *Config) { c.Security.JWT.Secret = "" },
			wantErr: true,
		},
		{
			name:    "JWT secret too short",
			mutate:  func(c *Config) { c.Security.JWT.Secret = "short" },
			wantErr: true,
		},
		{
			name:    "missing admin username",
			mutate:  func(c *Config) { c.Security.Admin.Username = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetTimeouts(t *testing.T) {
	cfg := &Config{
		API: APIConfig{
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 45,
				Idle:  60,
			},
		},
	}

	if got := cfg.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %v, want 30", got)
	}

	if got := cfg.GetWriteTimeout().Seconds(); got != 45 {
		t.Errorf("GetWriteTimeout() = %v, want 45", got)
	}

	if got := cfg.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %v, want 60", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := Default()

	// Set environment variables
	t.Setenv("PDUSIM_PDU_ID", "9")
	t.Setenv("PDUSIM_DATABASE_PATH", "/custom/path.db")
	t.Setenv("PDUSIM_MQTT_HOST", "mqtt.example.com")
	t.Setenv("PDUSIM_MQTT_USERNAME", "testuser")
	t.Setenv("PDUSIM_MQTT_PASSWORD", "testpass")
	t.Setenv("PDUSIM_API_HOST", "192.168.1.1")
	t.Setenv("PDUSIM_API_PORT", "9000")
	t.Setenv("PDUSIM_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("PDUSIM_JWT_SECRET", "jwt-secret")
	t.Setenv("PDUSIM_ADMIN_PASSWORD", "changed")

	applyEnvOverrides(cfg)

	if cfg.PDU.ID != "9" {
		t.Errorf("PDU.ID = %q, want %q", cfg.PDU.ID, "9")
	}

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/custom/path.db")
	}

	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}

	if cfg.MQTT.Auth.Username != "testuser" {
		t.Errorf("MQTT.Auth.Username = %q, want %q", cfg.MQTT.Auth.Username, "testuser")
	}

	if cfg.API.Host != "192.168.1.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "192.168.1.1")
	}

	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", cfg.API.Port)
	}

	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}

	if cfg.Security.JWT.Secret != "jwt-secret" {
		t.Errorf("Security.JWT.Secret = %q, want %q", cfg.Security.JWT.Secret, "jwt-secret")
	}

	if cfg.Security.Admin.Password != "changed" {
		t.Errorf("Security.Admin.Password = %q, want %q", cfg.Security.Admin.Password, "changed")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.PDU.ID != "2" {
		t.Errorf("Default PDU.ID = %q, want %q", cfg.PDU.ID, "2")
	}

	if cfg.PDU.Outlets != 48 {
		t.Errorf("Default PDU.Outlets = %d, want 48", cfg.PDU.Outlets)
	}

	if cfg.Database.Path != ":memory:" {
		t.Errorf("Default Database.Path = %q, want %q", cfg.Database.Path, ":memory:")
	}

	if cfg.API.Port != 8000 {
		t.Errorf("Default API.Port = %d, want 8000", cfg.API.Port)
	}

	if got := cfg.PDU.Loads[10]; got != 220 {
		t.Errorf("Default Loads[10] = %v, want 220", got)
	}
}
