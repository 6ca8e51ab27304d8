package main

import (
	"context"
	"log"
	"os"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	log.Println("🚀 Starting skill catalogue ingestion...")

	cfg := config.Load()
	if !cfg.SemanticSkillsEnabled() {
		log.Fatalf("❌ GEMINI_API_KEY is required to embed the skill catalogue")
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()

	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	successCount := 0
	failCount := 0

	catalogue := services.SkillCatalogue
	for start := 0; start < len(catalogue); start += services.MaxEmbeddingBatch {
		batch := catalogue[start:min(start+services.MaxEmbeddingBatch, len(catalogue))]

		embeddings, err := geminiService.GenerateEmbeddingsWithRetry(ctx, batch, cfg.Worker.RetryMaxAttempts)
		if err != nil {
			log.Printf("   ❌ Failed to embed %d skills: %v", len(batch), err)
			failCount += len(batch)
			continue
		}

		for i, skill := range batch {
			if err := qdrantService.UpsertSkill(ctx, skill, embeddings[i]); err != nil {
				log.Printf("   ❌ Failed to store %s: %v", skill, err)
				failCount++
				continue
			}
			successCount++
		}

		log.Printf("   📊 Progress: %d/%d skills", start+len(batch), len(catalogue))
	}

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d skills", successCount)
	log.Printf("   ❌ Failed: %d skills", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some skills failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ Skill catalogue ingested successfully!")
}
