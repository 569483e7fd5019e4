package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomrental/logging"
	"roomrental/search-api/config"
	"roomrental/search-api/consumers"
	"roomrental/search-api/controllers"
	"roomrental/search-api/repositories"
	"roomrental/search-api/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger := logging.New("search-api")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Str("url", cfg.MongoURL).Msg("failed to reach MongoDB")
	}
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	indexRepo := repositories.NewMongoIndexRepository(mongoClient.Database(cfg.MongoDatabase))
	cacheRepo := repositories.NewCacheRepository(cfg.MemcachedHost, logger)
	searchService := services.NewSearchService(indexRepo, cacheRepo, cfg.PropertiesAPIURL, logger)
	searchController := controllers.NewSearchController(searchService, logger)

	consumer, err := consumers.NewRabbitMQConsumer(cfg.RabbitMQURL, cfg.QueueName, searchService, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create RabbitMQ consumer")
	}
	if err := consumer.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start RabbitMQ consumer")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/search", corsMiddleware(searchController.Search))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("search-api listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error shutting down server")
	}
	if err := consumer.Close(); err != nil {
		logger.Error().Err(err).Msg("error closing RabbitMQ consumer")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error disconnecting from MongoDB")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "UP", "service": "search-api"})
}

func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}
