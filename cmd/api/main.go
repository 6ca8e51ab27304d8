package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-analyzer/internal/client"
	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/session"
)

func main() {
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	classifier, err := services.LoadOrTrainModel(cfg.Analyzer.ModelPath)
	if err != nil {
		log.Fatalf("❌ Failed to load classifier: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analyzer := services.NewResumeAnalyzer(
		services.NewPDFParserService(),
		services.NewPhraseExtractor(2, 0),
		newSkillMatcher(ctx, cfg),
		classifier,
		time.Now,
	)
	log.Println("✅ Analyzer initialized")

	worker := services.NewWorker(analyzer, cfg.Worker.Concurrency)
	worker.Start(ctx)

	// The upload page reaches the analysis service over HTTP, like any
	// other client would.
	analysisClient := client.New(cfg.Analyzer.ServiceURL, cfg.Analyzer.Timeout)
	sessions := session.NewStore(analysisClient, cfg.Session.TTL)
	go sessions.Run(ctx, cfg.Session.SweepInterval)

	pageHandler := handlers.NewPageHandler(sessions, cfg.Storage.MaxFileSize)
	analyzeHandler := handlers.NewAnalyzeHandler(
		storageService,
		worker,
		analysisRepo,
		cfg.Storage.MaxFileSize,
	)
	analysisHandler := handlers.NewAnalysisHandler(analysisRepo)
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/", pageHandler.HandlePage)
	app.Post("/upload", pageHandler.HandleUpload)
	app.Post("/analyze", pageHandler.HandleAnalyze)

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now(),
			"sessions": sessions.Len(),
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/analyses", analysisHandler.HandleList)
	api.Get("/analyses/:id", analysisHandler.HandleGet)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		cancel()
		worker.Stop()
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Upload page: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// newSkillMatcher wires Gemini and Qdrant when a key is configured. Without
// them the analyzer reports literal catalogue matches only.
func newSkillMatcher(ctx context.Context, cfg *config.Config) services.SkillMatcher {
	if !cfg.SemanticSkillsEnabled() {
		log.Println("⚠️  GEMINI_API_KEY not set, semantic skill matching disabled")
		return nil
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	return services.NewSemanticSkillMatcher(
		geminiService,
		qdrantService,
		float32(cfg.Analyzer.SkillThreshold),
		cfg.Worker.RetryMaxAttempts,
	)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
