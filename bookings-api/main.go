package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"roomrental/bookings-api/config"
	"roomrental/bookings-api/controllers"
	"roomrental/bookings-api/domain"
	"roomrental/bookings-api/locks"
	"roomrental/bookings-api/metrics"
	"roomrental/bookings-api/middleware"
	"roomrental/bookings-api/repositories"
	"roomrental/bookings-api/services"
	"roomrental/logging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger := logging.New("bookings-api")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("connected to MySQL")

	if err := db.AutoMigrate(&domain.Booking{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("address", cfg.RedisAddress).Msg("failed to connect to Redis")
	}
	logger.Info().Str("address", cfg.RedisAddress).Msg("connected to Redis")

	lockTTL := 10 * time.Second
	if secs, err := strconv.Atoi(cfg.LockTTLSecs); err == nil && secs > 0 {
		lockTTL = time.Duration(secs) * time.Second
	}
	locker := locks.NewRedisPropertyLocker(redisClient, lockTTL)

	metrics.Register()

	bookingRepo := repositories.NewBookingRepository(db)
	bookingService := services.NewBookingService(bookingRepo, locker, logger)
	bookingController := controllers.NewBookingController(bookingService)

	router := gin.Default()

	// CORS for the frontend.
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", bookingController.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	bookings := router.Group("/api/bookings")
	{
		bookings.POST("", bookingController.CreateBooking)
		bookings.GET("", bookingController.GetAllBookings)
		bookings.GET("/:id", bookingController.GetBookingByID)
		bookings.GET("/tenant/:id", bookingController.GetBookingsByTenant)
		bookings.GET("/landlord/:id", bookingController.GetBookingsByLandlord)
		bookings.GET("/property/:id", bookingController.GetBookingsByProperty)
		bookings.GET("/property/:id/availability", bookingController.CheckAvailability)
		bookings.GET("/property/:id/active", bookingController.GetActiveBookings)
		bookings.GET("/status/:status", bookingController.GetBookingsByStatus)
		bookings.PUT("/:id/status", bookingController.UpdateStatus)
		bookings.PUT("/:id/confirm", bookingController.ConfirmBooking)
		bookings.PUT("/:id/cancel", bookingController.CancelBooking)
		bookings.PUT("/:id/reject", bookingController.RejectBooking)
	}

	logger.Info().Str("port", cfg.Port).Msg("bookings-api listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
