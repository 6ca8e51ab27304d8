package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	storageService services.StorageService
	worker         services.Worker
	analysisRepo   repositories.AnalysisRepository
	maxFileSize    int64
}

func NewAnalyzeHandler(
	storageService services.StorageService,
	worker services.Worker,
	analysisRepo repositories.AnalysisRepository,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		storageService: storageService,
		worker:         worker,
		analysisRepo:   analysisRepo,
		maxFileSize:    maxFileSize,
	}
}

// HandleAnalyze runs the pipeline on the uploaded resume. Pipeline failures
// are reported as 200 with an "error" field; clients read that field before
// anything else.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing 'file' field",
		})
	}

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(fileHeader)
	if err != nil {
		return c.JSON(fiber.Map{"error": err.Error()})
	}
	defer func() {
		if err := h.storageService.DeleteFile(filename); err != nil {
			log.Printf("⚠️  Failed to remove upload %s: %v\n", filename, err)
		}
	}()

	outcome, err := h.worker.Submit(c.UserContext(), filePath)
	if err != nil {
		return c.JSON(fiber.Map{"error": err.Error()})
	}

	result := outcome.Result.WithDefaults()
	if err := h.analysisRepo.Create(models.NewAnalysis(fileHeader.Filename, outcome.PageCount, &result)); err != nil {
		log.Printf("⚠️  Failed to store analysis for %s: %v\n", fileHeader.Filename, err)
	}

	return c.JSON(result)
}
