package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// skillNamespace seeds the deterministic point ids, so re-ingesting the
// catalogue overwrites instead of duplicating.
var skillNamespace = uuid.MustParse("6f1c1d52-3c4e-4f37-9a3d-8b8f0c2b7a11")

type QdrantService interface {
	InitCollection(ctx context.Context) error
	UpsertSkill(ctx context.Context, skill string, embedding []float32) error
	// SearchSkillsBatch runs one query per embedding in a single round trip
	// and returns the hits in the same order.
	SearchSkillsBatch(ctx context.Context, queryEmbeddings [][]float32, limit int) ([][]SkillHit, error)
}

type SkillHit struct {
	Skill string
	Score float32
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertSkill implements QdrantService.
func (q *qdrantService) UpsertSkill(ctx context.Context, skill string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(skillPointID(skill)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"skill": skill,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert skill %q: %w", skill, err)
	}

	return nil
}

// SearchSkillsBatch implements QdrantService.
func (q *qdrantService) SearchSkillsBatch(ctx context.Context, queryEmbeddings [][]float32, limit int) ([][]SkillHit, error) {
	if len(queryEmbeddings) == 0 {
		return nil, nil
	}

	queries := make([]*qdrant.QueryPoints, len(queryEmbeddings))
	for i, embedding := range queryEmbeddings {
		queries[i] = &qdrant.QueryPoints{
			CollectionName: q.collectionName,
			Query:          qdrant.NewQuery(embedding...),
			Limit:          qdrant.PtrOf(uint64(limit)),
			WithPayload:    qdrant.NewWithPayload(true),
		}
	}

	results, err := q.client.QueryBatch(ctx, &qdrant.QueryBatchPoints{
		CollectionName: q.collectionName,
		QueryPoints:    queries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	if len(results) != len(queries) {
		return nil, fmt.Errorf("expected %d search results, got %d", len(queries), len(results))
	}

	hits := make([][]SkillHit, len(results))
	for i, result := range results {
		for _, point := range result.GetResult() {
			value, ok := point.Payload["skill"]
			if !ok {
				continue
			}
			if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
				hits[i] = append(hits[i], SkillHit{Skill: val.StringValue, Score: point.Score})
			}
		}
	}

	return hits, nil
}

func skillPointID(skill string) string {
	return uuid.NewSHA1(skillNamespace, []byte(strings.ToLower(skill))).String()
}
