package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"orderintegration/cmd"
	httpadapter "orderintegration/internal/adapters/in/http"
	"orderintegration/internal/adapters/out/postgres/attemptrepo"
	"orderintegration/internal/adapters/out/postgres/auditrepo"
	"orderintegration/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	erpConfig, err := configs.ErpSimulatorConfig()
	if err != nil {
		log.Fatalf("Invalid ERP simulator configuration: %v", err)
	}

	staleThreshold, err := configs.StaleAttemptThreshold()
	if err != nil {
		log.Fatalf("Invalid stale attempt threshold: %v", err)
	}

	createDbIfNotExists(configs)
	gormDB := mustConnectDb(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, erpConfig, staleThreshold, logger)

	jobManager := app.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),
		APIKey:     os.Getenv("API_KEY"),

		ErpSimulationMode: os.Getenv("ERP_SIMULATION_MODE"),
		ErpFailureRate:    os.Getenv("ERP_FAILURE_RATE"),
		ErpMinLatencyMs:   os.Getenv("ERP_MIN_LATENCY_MS"),
		ErpMaxLatencyMs:   os.Getenv("ERP_MAX_LATENCY_MS"),
		ErpForceFail:      os.Getenv("ERP_FORCE_FAIL_ORDER_NUMBERS"),
		ErpForceSucceed:   os.Getenv("ERP_FORCE_SUCCEED_ORDER_NUMBERS"),

		StaleAttemptThresholdMinutes: os.Getenv("STALE_ATTEMPT_THRESHOLD_MINUTES"),
	}

	if config.APIKey == "" {
		log.Fatalf("API_KEY is required")
	}

	return config
}

// createDbIfNotExists connects to the maintenance database and creates the
// service database when it is missing, so a fresh environment boots without
// manual setup.
func createDbIfNotExists(configs cmd.Config) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName).
		Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}

	if !exists {
		if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %q", configs.DBName)); err != nil {
			log.Fatalf("Failed to create database %s: %v", configs.DBName, err)
		}
	}
}

func mustConnectDb(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&attemptrepo.AttemptDTO{},
		&auditrepo.EventDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Use(httpadapter.APIKeyMiddleware(configs.APIKey))
	e.Use(httpadapter.CorrelationIDMiddleware())

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateSendOrderToErpCommandHandler(),
		app.CreateProcessErpWebhookCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderByIDQueryHandler(),
		app.CreateGetAuditEventsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
