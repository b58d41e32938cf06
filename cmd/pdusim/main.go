// pdusim - software rack PDU with a Redfish-style management API.
//
// The process emulates a managed power distribution unit end to end:
// deterministic telemetry, outlet switching by load segment, session
// and account management, and optional MQTT/InfluxDB side channels for
// lab tooling. No hardware or privileged access is required.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/pdusim/migrations"

	"github.com/nerrad567/pdusim/internal/api"
	"github.com/nerrad567/pdusim/internal/auth"
	"github.com/nerrad567/pdusim/internal/events"
	"github.com/nerrad567/pdusim/internal/infrastructure/config"
	"github.com/nerrad567/pdusim/internal/infrastructure/database"
	"github.com/nerrad567/pdusim/internal/infrastructure/influxdb"
	"github.com/nerrad567/pdusim/internal/infrastructure/logging"
	"github.com/nerrad567/pdusim/internal/infrastructure/mqtt"
	"github.com/nerrad567/pdusim/internal/outlet"
	"github.com/nerrad567/pdusim/internal/sensor"
	"github.com/nerrad567/pdusim/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting pdusim",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database (in-memory by default: simulated state is ephemeral)
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Auth: repositories, service, built-in administrator
	accountRepo := auth.NewAccountRepository(db.DB)
	sessionRepo := auth.NewSessionRepository(db.DB)
	authSvc := auth.NewService(accountRepo, sessionRepo, []byte(cfg.Security.JWT.Secret), log)
	if seedErr := auth.SeedAdmin(ctx, accountRepo, cfg.Security.Admin.Username, cfg.Security.Admin.Password, log); seedErr != nil {
		return fmt.Errorf("seeding administrator: %w", seedErr)
	}

	// Outlet bank and telemetry engine; elapsed time runs from boot
	bank, err := outlet.NewBank(cfg.PDU.Outlets, cfg.PDU.Segments, cfg.PDU.Loads, log)
	if err != nil {
		return fmt.Errorf("creating outlet bank: %w", err)
	}
	engine := telemetry.New(telemetry.Config{
		Outlets:          cfg.PDU.Outlets,
		Phases:           cfg.PDU.Phases,
		NominalVoltage:   cfg.PDU.NominalVoltage,
		NominalFrequency: cfg.PDU.NominalFrequency,
		Loads:            cfg.PDU.Loads,
	}, time.Now())
	resolver := sensor.New(engine, bank, cfg.PDU.Phases)
	log.Info("unit initialised",
		"pdu_id", cfg.PDU.ID,
		"outlets", cfg.PDU.Outlets,
		"segments", cfg.PDU.Segments,
	)

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled")
	}

	var notifier *events.Notifier
	if mqttClient != nil {
		notifier = events.NewNotifier(cfg.PDU.ID, mqttClient, log)
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Assemble and start the management API
	deps := api.Deps{
		Config:        cfg.API,
		PDU:           cfg.PDU,
		Logger:        log,
		Bank:          bank,
		Engine:        engine,
		Resolver:      resolver,
		Auth:          authSvc,
		Subscriptions: events.NewRepository(db.DB),
		Notifier:      notifier,
		Version:       version,
	}
	if influxClient != nil {
		deps.Recorder = influxClient
	}

	server, err := api.New(deps)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("pdusim stopped")
	return nil
}

// loadConfig loads configuration from the configured path, falling back
// to built-in defaults when no file exists. Environment overrides apply
// in both cases.
func loadConfig(log *logging.Logger) (*config.Config, error) {
	path := getConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && os.Getenv("PDUSIM_CONFIG") == "" {
			log.Info("no config file found, using defaults", "path", path)
			return config.LoadDefaults()
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", path)
	return cfg, nil
}

// getConfigPath returns the configuration file path.
// Uses PDUSIM_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("PDUSIM_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
