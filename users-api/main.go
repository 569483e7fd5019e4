package main

import (
	"fmt"

	"roomrental/logging"
	"roomrental/users-api/config"
	"roomrental/users-api/controllers"
	"roomrental/users-api/domain"
	"roomrental/users-api/middleware"
	"roomrental/users-api/repositories"
	"roomrental/users-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger := logging.New("users-api")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("connected to MySQL")

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	userRepo := repositories.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	authController := controllers.NewAuthController(authService)
	adminController := controllers.NewAdminController(userService)

	if err := services.EnsureAdminUser(userRepo, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed admin user")
	}

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

	loginLimiter := middleware.NewLoginRateLimiter(cfg.LoginRateRPS, cfg.LoginRateBurst)

	router.GET("/health", authController.HealthCheck)

	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/signin", loginLimiter.Handler(), authController.Signin)
	}

	admin := router.Group("/api/users")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("", adminController.GetAllUsers)
		admin.GET("/:id", adminController.GetUserByID)
		admin.PUT("/:id/role", adminController.UpdateUserRole)
		admin.DELETE("/:id", adminController.DeleteUser)
	}

	logger.Info().Str("port", cfg.Port).Msg("users-api listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
