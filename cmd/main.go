package main

import (
	"context"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	authbackend "github.com/findahub/accounts/application/auth"
	socialapp "github.com/findahub/accounts/application/social"
	tokenapp "github.com/findahub/accounts/application/token"
	userapp "github.com/findahub/accounts/application/user"
	"github.com/findahub/accounts/cmd/config"
	redisclient "github.com/findahub/accounts/cmd/redis"
	_ "github.com/findahub/accounts/docs"
	redisRepo "github.com/findahub/accounts/repository/redis"
	socialRepo "github.com/findahub/accounts/repository/social"
	tokenRepo "github.com/findahub/accounts/repository/token"
	txRepo "github.com/findahub/accounts/repository/tx"
	userRepo "github.com/findahub/accounts/repository/user"
	"github.com/findahub/accounts/thirdparty/rabbitmq"
	"github.com/findahub/accounts/transport"
	"github.com/findahub/accounts/upload"
	"github.com/findahub/accounts/utils/logger"
)

// @title ACCOUNTS API
// @version 1.0
// @description Accounts and authentication API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	rdb, err := redisclient.New(cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = rdb.Close()
	}()

	// Initialize RabbitMQ publisher and the notification consumer
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
	}
	defer func() {
		_ = publisher.Close()
	}()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
		cfg.RabbitMQ.NotificationURL, cfg.RabbitMQ.NotificationAPIKey)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer func() {
		_ = consumer.Close()
	}()

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	if err := consumer.Start(consumerCtx); err != nil {
		logger.Fatal("err start rabbitmq consumer", zap.Error(err))
	}

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	SocialRepo := socialRepo.NewSocialRepository(db)
	TokenRepo := tokenRepo.NewTokenRepository(db)
	TxRepo := txRepo.NewTxRepository(db)
	RedisRepo := redisRepo.NewRepository(rdb)

	// Initialize upload subsystem
	uploader := upload.NewLocalUploader(cfg.Upload.Dir, cfg.Upload.MaxBytes, cfg.Upload.MaxWidth, cfg.Upload.MaxHeight, cfg.Upload.Quality)

	// Initialize application layers
	Backend := authbackend.NewBackend(UserRepo)
	TokenApp := tokenapp.NewTokenApp(cfg, TokenRepo, RedisRepo)
	UserApp := userapp.NewUserApp(cfg, UserRepo, Backend, TokenApp, uploader, publisher)
	SocialApp := socialapp.NewSocialApp(UserRepo, SocialRepo, TxRepo, TokenApp)

	httpTransport := transport.NewTransport(UserApp, SocialApp, transport.Deps{
		TokenResolver:  TokenApp,
		InternalAPIKey: cfg.Auth.InternalAPIKey,
		ReadyChecks: []transport.ReadyCheck{
			{Name: "mysql", Probe: db.Ping},
			{Name: "redis", Probe: func() error {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return rdb.Ping(ctx).Err()
			}},
		},
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
