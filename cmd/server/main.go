package main

import (
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fotofocinho-backend/internal/aiml"
	"fotofocinho-backend/internal/config"
	"fotofocinho-backend/internal/database"
	"fotofocinho-backend/internal/handlers"
	"fotofocinho-backend/internal/middleware"
	"fotofocinho-backend/internal/pix"
	"fotofocinho-backend/internal/services"
	"fotofocinho-backend/internal/supabase"
)

// @title           FotoFocinho API
// @version         1.0
// @description     Pet portrait generation and PIX checkout backend.
// @BasePath        /api/v1
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()

	migrator := database.NewMigrator(dbClient.DB())
	if err := migrator.Run(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to create supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient)

	aimlClient := aiml.NewClient(cfg.AIMLAPIBaseURL, cfg.AIMLAPIKey)

	var gateway pix.Gateway
	if cfg.PaymentGatewayMock {
		log.Printf("[main] using simulated payment gateway")
		gateway = pix.NewSimulatedGateway()
	} else {
		gateway, err = pix.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
		if err != nil {
			log.Fatalf("Failed to create payment gateway: %v", err)
		}
	}

	generationService := services.NewGenerationService(aimlClient, dbClient, storageClient, realtimeClient)
	checkoutService := services.NewCheckoutService(dbClient, gateway, cfg.PixChargeExpiry)
	paymentService := services.NewPaymentService(dbClient, gateway, realtimeClient, cfg.SimulationAllowed())

	healthHandler := handlers.NewHealthHandler()
	uploadHandler := handlers.NewUploadHandler(storageClient)
	generateHandler := handlers.NewGenerateHandler(generationService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	statusHandler := handlers.NewStatusHandler(paymentService)
	accountHandler := handlers.NewAccountHandler(dbClient, storageClient, cfg)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", healthHandler.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		api.POST("/upload", uploadHandler.Upload)
		api.POST("/generate", generateHandler.Generate)
		api.POST("/checkout", checkoutHandler.Checkout)
		api.GET("/checkout/status", statusHandler.PaymentStatus)
		api.POST("/login", accountHandler.Login)

		account := api.Group("/account")
		account.Use(middleware.AuthMiddleware(cfg))
		{
			account.GET("/orders", accountHandler.ListOrders)
			account.GET("/download", accountHandler.Download)
		}
	}

	log.Printf("[main] listening on :%s environment=%s", cfg.Port, cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
