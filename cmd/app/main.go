package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/asynqbus"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/mergerepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/partnerrepo"
	"dispatch/internal/jobs"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: configs.RedisAddr})
	defer asynqClient.Close()
	publisher := asynqbus.NewAsynqEventPublisher(asynqClient)

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := jobs.NewJobManager(
		app.CreateGetMergeCandidateRestaurantsQueryHandler(),
		app.CreateClusterAndMergeCommandHandler(),
		app.CreateGetActiveDeliveriesQueryHandler(),
		app.CreateAutoAssignDeliveryCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:  goDotEnvVariable("REDIS_ADDR"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&partnerrepo.PartnerDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.TrackingEventDTO{},
		&mergerepo.MergeRecordDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateDeliveryCommandHandler(),
		app.CreateAssignDeliveryCommandHandler(),
		app.CreateAutoAssignDeliveryCommandHandler(),
		app.CreateUpdateDeliveryStatusCommandHandler(),
		app.CreateClusterAndMergeCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateUpdatePartnerLocationCommandHandler(),
		app.CreateFindPartnersNearQueryHandler(),
		app.CreateGetActiveDeliveriesQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
