package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type AnalysisOutcome struct {
	Result    models.AnalysisResult
	PageCount int
}

type ResumeAnalyzer interface {
	Analyze(ctx context.Context, filePath string) (*AnalysisOutcome, error)
}

type resumeAnalyzer struct {
	pdfParser  PDFParserService
	phrases    PhraseExtractor
	matcher    SkillMatcher
	classifier Classifier
	now        func() time.Time
}

// NewResumeAnalyzer builds the extraction pipeline. matcher may be nil, in
// which case only literal skill matches are reported.
func NewResumeAnalyzer(
	pdfParser PDFParserService,
	phrases PhraseExtractor,
	matcher SkillMatcher,
	classifier Classifier,
	now func() time.Time,
) ResumeAnalyzer {
	if now == nil {
		now = time.Now
	}

	return &resumeAnalyzer{
		pdfParser:  pdfParser,
		phrases:    phrases,
		matcher:    matcher,
		classifier: classifier,
		now:        now,
	}
}

func (a *resumeAnalyzer) Analyze(ctx context.Context, filePath string) (*AnalysisOutcome, error) {
	content, err := a.pdfParser.ExtractText(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	text := content.Text
	details := ExtractDetails(text)
	cleaned := CleanText(text)

	skills, err := a.extractSkills(ctx, text, cleaned)
	if err != nil {
		return nil, err
	}

	years, level := CalculateExperience(text, a.now())
	role, confidence := a.classifier.Predict(cleaned)

	log.Printf("✅ Analyzed resume: %s (%.2f), %d skills\n", role, confidence, len(skills))

	return &AnalysisOutcome{
		Result: models.AnalysisResult{
			Classification:  role,
			Confidence:      confidence,
			ExperienceYears: years,
			ExperienceLevel: level,
			Name:            details.Name,
			Email:           details.Email,
			Phone:           details.Phone,
			Education:       ExtractEducation(text),
			Skills:          skills,
		},
		PageCount: content.PageCount,
	}, nil
}

func (a *resumeAnalyzer) extractSkills(ctx context.Context, text, cleaned string) ([]string, error) {
	skills := MatchSkills(cleaned)
	if a.matcher == nil || a.phrases == nil {
		return skills, nil
	}

	semantic, err := a.matcher.Match(ctx, a.phrases.Phrases(text, skills))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("skill matching cancelled: %w", ctx.Err())
		}
		// literal matches are still a usable answer
		log.Printf("⚠️  Semantic skill matching failed: %v\n", err)
	}

	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		seen[s] = true
	}
	for _, s := range semantic {
		if !seen[s] {
			seen[s] = true
			skills = append(skills, s)
		}
	}

	return skills, nil
}
