package services

import (
	"context"
	"fmt"
	"log"
)

const DefaultSkillThreshold = 0.85

type SkillMatcher interface {
	// Match returns catalogue skills semantically close to any of the
	// phrases.
	Match(ctx context.Context, phrases []string) ([]string, error)
}

type semanticSkillMatcher struct {
	geminiService GeminiService
	qdrantService QdrantService
	threshold     float32
	maxRetries    int
}

func NewSemanticSkillMatcher(geminiService GeminiService, qdrantService QdrantService, threshold float32, maxRetries int) SkillMatcher {
	return &semanticSkillMatcher{
		geminiService: geminiService,
		qdrantService: qdrantService,
		threshold:     threshold,
		maxRetries:    maxRetries,
	}
}

// Match implements SkillMatcher. Phrases are embedded and searched in
// batches of MaxEmbeddingBatch.
func (m *semanticSkillMatcher) Match(ctx context.Context, phrases []string) ([]string, error) {
	found := make(map[string]bool)
	var skills []string

	for start := 0; start < len(phrases); start += MaxEmbeddingBatch {
		batch := phrases[start:min(start+MaxEmbeddingBatch, len(phrases))]

		embeddings, err := m.geminiService.GenerateEmbeddingsWithRetry(ctx, batch, m.maxRetries)
		if err != nil {
			return skills, fmt.Errorf("failed to embed %d phrases: %w", len(batch), err)
		}

		hits, err := m.qdrantService.SearchSkillsBatch(ctx, embeddings, 1)
		if err != nil {
			return skills, fmt.Errorf("failed to search skills: %w", err)
		}

		for i, phraseHits := range hits {
			for _, hit := range phraseHits {
				if hit.Score <= m.threshold {
					continue
				}
				skill, ok := canonicalSkill(hit.Skill)
				if !ok || found[skill] {
					continue
				}
				found[skill] = true
				skills = append(skills, skill)
				log.Printf("🔎 Phrase %q matched skill %s (%.2f)\n", batch[i], skill, hit.Score)
			}
		}
	}

	return skills, nil
}
