package main

import (
	"log"

	"tentamenbank-api/config"
	"tentamenbank-api/handlers"
	"tentamenbank-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("Start service")
	// .env is optional in production
	_ = godotenv.Load()

	cfg := config.Load()

	if !cfg.SharedAdminBucket() {
		log.Printf("WARNING: admin mapping tool lists bucket %q while the catalog uses %q", cfg.AdminBucket, cfg.MinIOBucket)
	}

	log.Println("init services")
	minioService, err := services.NewMinIOService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	var cacheService *services.CacheService
	if cfg.CacheEnabled() {
		cacheService = services.NewCacheService(cfg.CacheTTL, 2*cfg.CacheTTL)
	} else {
		log.Println("Caching disabled (CACHE_TTL_MINUTES <= 0)")
	}

	var mappingStore services.MappingStore
	switch cfg.MappingBackend {
	case "s3":
		mappingStore = services.NewObjectMappingStore(minioService, cfg.MinIOBucket, cfg.MappingObjectKey)
	case "file":
		mappingStore = services.NewFileMappingStore(cfg.MappingFile)
	default:
		log.Fatalf("Unknown MAPPING_BACKEND %q, want file or s3", cfg.MappingBackend)
	}

	enrolmentService := services.NewEnrolmentService(cfg.EnrolmentAPIURL, cfg.EnrolmentTimeout, cacheService, cfg.CacheTTL)

	catalogService := services.NewTentamenbankService(minioService, mappingStore, enrolmentService, cacheService, services.TentamenbankOptions{
		Bucket:      cfg.MinIOBucket,
		AdminBucket: cfg.AdminBucket,
		RootPrefix:  cfg.RootPrefix,
		ListTimeout: cfg.ListTimeout,
	})

	log.Println("init handlers")
	tentamenbankHandler := handlers.NewTentamenbankHandler(catalogService, minioService)
	mappingHandler := handlers.NewMappingHandler(catalogService, services.NewSpreadsheetService())

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Println("init router")
	router := handlers.NewRouter(cfg, tentamenbankHandler, mappingHandler)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
