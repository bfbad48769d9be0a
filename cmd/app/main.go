package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/api"
	"ordering/cmd"
	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/userrepo"
	"ordering/internal/adapters/out/push"
	"ordering/internal/adapters/out/redisdedup"

	_ "ordering/docs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; in containers configuration comes from the environment.
	_ = godotenv.Load(".env")

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := newLogger(configs.Log.Level)
	defer func() { _ = logger.Sync() }()

	gormDB := mustConnectDB(configs)

	publisher, err := kafka.NewOrderEventPublisher(configs.Kafka.Brokers, configs.Kafka.OrderEventsTopic)
	if err != nil {
		log.Fatalf("Error creating kafka publisher: %v", err)
	}
	defer publisher.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.Redis.Addr,
		Password: configs.Redis.Password,
		DB:       configs.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()

	dedup := redisdedup.NewRedisReminderDeduplicator(redisClient, configs.Job.ReminderWindow)
	notifier := push.NewGatewayClient(configs.Push.GatewayURL, configs.Push.APIKey)

	app := cmd.NewCompositionRoot(configs, gormDB, notifier, publisher, dedup, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs, logger)
}

func newLogger(level string) *zap.Logger {
	zapConfig := zap.NewProductionConfig()
	if parsed, err := zap.ParseAtomicLevel(level); err == nil {
		zapConfig.Level = parsed
	}

	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	return logger
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DB.Host, configs.DB.Port, configs.DB.User,
		configs.DB.Password, configs.DB.Name, configs.DB.SslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&userrepo.UserDTO{},
		&userrepo.RoleDTO{},
		&userrepo.DeviceTokenDTO{},
		&userrepo.CustomerDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config, logger *zap.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	openapiDoc, err := api.Load()
	if err != nil {
		log.Fatalf("Error loading OpenAPI document: %v", err)
	}
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, openapiDoc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := httpadapter.NewTokenAuthenticator(configs.Auth.TokenSecret)
	server := httpadapter.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateRequestCancelOrderCommandHandler(),
		app.CreateListOrdersQueryHandler(),
		app.CreateListCustomerOrdersQueryHandler(),
		app.CreateGetOrderByIDQueryHandler(),
		httpadapter.NewCustomerResolver(app.UserRepository()),
	)
	server.RegisterRoutes(e, auth)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.Server.Port)); err != nil &&
			err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
