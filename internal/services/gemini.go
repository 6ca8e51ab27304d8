package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

const maxEmbeddingInput = 40000

// MaxEmbeddingBatch is the most texts one embedding request accepts.
const MaxEmbeddingBatch = 100

type GeminiService interface {
	// GenerateEmbeddings embeds all texts in one request and returns the
	// vectors in input order.
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	GenerateEmbeddingsWithRetry(ctx context.Context, texts []string, maxRetries int) ([][]float32, error)
}

type geminiService struct {
	client     *genai.Client
	embedModel string
}

func NewGeminiService(apiKey string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		embedModel: "text-embedding-004",
	}, nil
}

// GenerateEmbeddings implements GeminiService.
func (g *geminiService) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if len(texts) > MaxEmbeddingBatch {
		return nil, fmt.Errorf("batch of %d texts exceeds limit of %d", len(texts), MaxEmbeddingBatch)
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		if len(text) > maxEmbeddingInput {
			text = text[:maxEmbeddingInput]
		}
		contents = append(contents, genai.Text(text)...)
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings in result", len(texts))
	}

	values := make([][]float32, len(result.Embeddings))
	for i, embedding := range result.Embeddings {
		values[i] = embedding.Values
	}
	return values, nil
}

// GenerateEmbeddingsWithRetry implements GeminiService.
func (g *geminiService) GenerateEmbeddingsWithRetry(ctx context.Context, texts []string, maxRetries int) ([][]float32, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		values, err := g.GenerateEmbeddings(ctx, texts)
		if err == nil {
			return values, nil
		}
		lastErr = err

		if attempt == maxRetries {
			break
		}

		log.Printf("⚠️  Embedding attempt %d failed: %v. Retrying...\n", attempt, err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
