package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hireform/hireform/config"
	"github.com/hireform/hireform/internal/api/handlers"
	"github.com/hireform/hireform/internal/api/middleware"
	"github.com/hireform/hireform/internal/api/routes"
	"github.com/hireform/hireform/internal/cache"
	"github.com/hireform/hireform/internal/logger"
	"github.com/hireform/hireform/internal/models"
	"github.com/hireform/hireform/internal/providers/llm"
	"github.com/hireform/hireform/internal/providers/pdftext"
	mongorepo "github.com/hireform/hireform/internal/repositories/mongo"
	pgrepo "github.com/hireform/hireform/internal/repositories/postgres"
	"github.com/hireform/hireform/internal/services"
	"github.com/hireform/hireform/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(&models.Form{}, &models.Response{}, &models.ResumeFile{}); err != nil {
		log.Fatalf("PostgreSQL migration error: %v", err)
	}

	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}

	location := os.Getenv("GCP_LOCATION")
	if location == "" {
		location = "us-central1"
	}
	provider, err := llm.NewVertexGemini(ctx, os.Getenv("GCP_PROJECT_ID"), location, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("LLM provider init error: %v", err)
	}
	defer provider.Close()

	store, err := storage.NewGCSStore(ctx, os.Getenv("GCS_BUCKET"))
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	defer store.Close()

	// repositories
	formRepo := pgrepo.NewFormRepo(config.PostgresDB)
	responseRepo := pgrepo.NewResponseRepo(config.PostgresDB)
	resumeFileRepo := pgrepo.NewResumeFileRepo(config.PostgresDB)
	aiLogRepo := mongorepo.NewAILogRepo(config.MongoDatabase())

	// services
	c := cache.NewRedisCache(config.RedisClient)
	formSvc := services.NewFormService(formRepo, c)
	followupSvc := services.NewFollowupService(provider, aiLogRepo, log)
	responseSvc := services.NewResponseService(responseRepo, formSvc, provider, aiLogRepo, config.RedisClient, log)
	resumeSvc := services.NewResumeService(resumeFileRepo, store, store, pdftext.NewPDFExtractor(), provider, aiLogRepo, log)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Form:     handlers.NewFormHandler(formSvc),
		Followup: handlers.NewFollowupHandler(formSvc, followupSvc),
		Response: handlers.NewResponseHandler(formSvc, responseSvc),
		Resume:   handlers.NewResumeHandler(formSvc, resumeSvc),
		WS:       handlers.NewWSHandler(formSvc, config.RedisClient),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
