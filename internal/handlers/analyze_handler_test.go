package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type fakeStorage struct {
	saveErr error
	deleted []string
}

func (f *fakeStorage) SaveFile(*multipart.FileHeader) (string, string, error) {
	if f.saveErr != nil {
		return "", "", f.saveErr
	}
	return "resume_1.pdf", "/uploads/resume_1.pdf", nil
}

func (f *fakeStorage) GetFilePath(filename string) string { return "/uploads/" + filename }

func (f *fakeStorage) DeleteFile(filename string) error {
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeStorage) EnsureUploadDir() error { return nil }

type fakeWorker struct {
	outcome *services.AnalysisOutcome
	err     error
	path    string
}

func (f *fakeWorker) Start(context.Context) {}

func (f *fakeWorker) Stop() {}

func (f *fakeWorker) Submit(_ context.Context, filePath string) (*services.AnalysisOutcome, error) {
	f.path = filePath
	return f.outcome, f.err
}

type fakeRepo struct {
	mu        sync.Mutex
	analyses  []*models.Analysis
	createErr error
	findErr   error
	limit     int
}

func (f *fakeRepo) Create(a *models.Analysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.analyses = append(f.analyses, a)
	return nil
}

func (f *fakeRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, a := range f.analyses {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repositories.ErrAnalysisNotFound
}

func (f *fakeRepo) FindRecent(limit int) ([]models.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.limit = limit
	out := make([]models.Analysis, 0, len(f.analyses))
	for i := len(f.analyses) - 1; i >= 0; i-- {
		out = append(out, *f.analyses[i])
	}
	return out, nil
}

func newAnalyzeApp(storage services.StorageService, worker services.Worker, repo repositories.AnalysisRepository) *fiber.App {
	h := handlers.NewAnalyzeHandler(storage, worker, repo, 1<<20)

	app := fiber.New()
	app.Post("/api/analyze", h.HandleAnalyze)
	return app
}

func TestAnalyzeSuccess(t *testing.T) {
	t.Parallel()

	email := "jane@example.com"
	storage := &fakeStorage{}
	worker := &fakeWorker{outcome: &services.AnalysisOutcome{
		Result: models.AnalysisResult{
			Classification:  "DevOps/Cloud Engineer",
			Confidence:      0.64,
			ExperienceYears: 3,
			ExperienceLevel: "Mid",
			Name:            "Jane Doe",
			Email:           &email,
			Skills:          []string{"Docker"},
		},
		PageCount: 2,
	}}
	repo := &fakeRepo{}

	resp, err := newAnalyzeApp(storage, worker, repo).Test(
		multipartRequest(t, "/api/analyze", "file", upload{"resume.pdf", "application/pdf", pdfBytes}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(readJSON(t, resp), &body))
	assert.Equal(t, "DevOps/Cloud Engineer", body["classification"])
	assert.Equal(t, 0.64, body["confidence"])
	assert.Equal(t, "jane@example.com", body["email"])
	assert.Nil(t, body["phone"])
	assert.Equal(t, []any{}, body["education"])
	assert.Equal(t, []any{"Docker"}, body["skills"])
	assert.NotContains(t, body, "error")

	assert.Equal(t, "/uploads/resume_1.pdf", worker.path)
	assert.Equal(t, []string{"resume_1.pdf"}, storage.deleted)
	require.Len(t, repo.analyses, 1)
	assert.Equal(t, "resume.pdf", repo.analyses[0].OriginalFileName)
	assert.Equal(t, 2, repo.analyses[0].PageCount)
}

func TestAnalyzeMissingFile(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	resp, err := newAnalyzeApp(&fakeStorage{}, &fakeWorker{}, &fakeRepo{}).Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(readJSON(t, resp)), `"error"`)
}

func TestAnalyzePipelineFailure(t *testing.T) {
	t.Parallel()

	storage := &fakeStorage{}
	worker := &fakeWorker{err: errors.New("failed to extract text: no text content found in PDF")}
	repo := &fakeRepo{}

	resp, err := newAnalyzeApp(storage, worker, repo).Test(
		multipartRequest(t, "/api/analyze", "file", upload{"resume.pdf", "application/pdf", pdfBytes}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"error":"failed to extract text: no text content found in PDF"}`, string(readJSON(t, resp)))
	assert.Equal(t, []string{"resume_1.pdf"}, storage.deleted)
	assert.Empty(t, repo.analyses)
}

func TestAnalyzeRejectedUpload(t *testing.T) {
	t.Parallel()

	storage := &fakeStorage{saveErr: services.ErrNotPDF}
	worker := &fakeWorker{}

	resp, err := newAnalyzeApp(storage, worker, &fakeRepo{}).Test(
		multipartRequest(t, "/api/analyze", "file", upload{"resume.pdf", "application/pdf", []byte("text")}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"error":"uploaded file is not a PDF"}`, string(readJSON(t, resp)))
	assert.Empty(t, worker.path)
	assert.Empty(t, storage.deleted)
}

func TestAnalyzeStillAnswersWhenStoreFails(t *testing.T) {
	t.Parallel()

	worker := &fakeWorker{outcome: &services.AnalysisOutcome{Result: models.AnalysisResult{Classification: "Data Scientist"}}}
	repo := &fakeRepo{createErr: errors.New("db down")}

	resp, err := newAnalyzeApp(&fakeStorage{}, worker, repo).Test(
		multipartRequest(t, "/api/analyze", "file", upload{"resume.pdf", "application/pdf", pdfBytes}), -1)
	require.NoError(t, err)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(readJSON(t, resp), &result))
	assert.Equal(t, "Data Scientist", result.Classification)
}
