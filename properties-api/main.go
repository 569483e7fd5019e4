package main

import (
	"fmt"

	"roomrental/logging"
	"roomrental/properties-api/config"
	"roomrental/properties-api/controllers"
	"roomrental/properties-api/domain"
	"roomrental/properties-api/publishers"
	"roomrental/properties-api/repositories"
	"roomrental/properties-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger := logging.New("properties-api")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("connected to MySQL")

	if err := db.AutoMigrate(&domain.Property{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// The publisher is optional: without RabbitMQ the API still serves, the
	// search index just goes stale.
	var publisher publishers.PropertyPublisher
	publisher, err = publishers.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.QueueName, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("rabbitmq unavailable, property events disabled")
		publisher = nil
	} else {
		defer publisher.Close()
	}

	propertyRepo := repositories.NewPropertyRepository(db)
	propertyService := services.NewPropertyService(propertyRepo, publisher, logger)
	propertyController := controllers.NewPropertyController(propertyService)

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

	router.GET("/health", propertyController.HealthCheck)

	api := router.Group("/api/properties")
	{
		api.POST("", propertyController.CreateProperty)
		api.GET("", propertyController.GetAllProperties)
		api.GET("/search", propertyController.SearchProperties)
		api.GET("/available", propertyController.GetAvailableProperties)
		api.GET("/landlord/:id", propertyController.GetPropertiesByLandlord)
		api.GET("/:id", propertyController.GetPropertyByID)
		api.PUT("/:id", propertyController.UpdateProperty)
		api.PUT("/:id/availability", propertyController.UpdateAvailability)
		api.DELETE("/:id", propertyController.DeleteProperty)
	}

	logger.Info().Str("port", cfg.Port).Msg("properties-api listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
