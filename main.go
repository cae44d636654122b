package main

import (
	"net/http"

	"delivery-backend/config"
	"delivery-backend/handlers"
	"delivery-backend/middleware"
	"delivery-backend/pkg/logger"
	"delivery-backend/routes"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.Env)
	log := logger.Get()
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected and migrated", zap.String("path", cfg.DBPath))

	auth := middleware.NewAuth(cfg.JWTSecret, cfg.TokenTTL)

	orderSvc := services.NewOrderService(db, log)
	paymentSvc := services.NewPaymentService(db, log)
	h := routes.Handlers{
		Users:      handlers.NewUserHandler(services.NewUserService(db, log, auth, cfg.AdminToken)),
		Stores:     handlers.NewStoreHandler(services.NewStoreService(db, log)),
		Menus:      handlers.NewMenuHandler(services.NewMenuService(db, log)),
		Orders:     handlers.NewOrderHandler(orderSvc, paymentSvc),
		Reviews:    handlers.NewReviewHandler(services.NewReviewService(db, log, orderSvc)),
		Addresses:  handlers.NewAddressHandler(services.NewAddressService(db, log)),
		Categories: handlers.NewCategoryHandler(services.NewCategoryService(db, log)),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log))

	// CORS for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Delivery Backend API",
		})
	})

	routes.Setup(r, auth, h)

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
