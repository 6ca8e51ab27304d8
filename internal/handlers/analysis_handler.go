package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

const defaultListLimit = 20

type AnalysisHandler struct {
	analysisRepo repositories.AnalysisRepository
}

func NewAnalysisHandler(analysisRepo repositories.AnalysisRepository) *AnalysisHandler {
	return &AnalysisHandler{
		analysisRepo: analysisRepo,
	}
}

func (h *AnalysisHandler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)

	analyses, err := h.analysisRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list analyses",
		})
	}

	summaries := make([]models.AnalysisSummary, 0, len(analyses))
	for i := range analyses {
		summaries = append(summaries, analyses[i].Summary())
	}

	return c.JSON(fiber.Map{
		"analyses": summaries,
	})
}

func (h *AnalysisHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Analysis not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load analysis",
		})
	}

	return c.JSON(analysis.Detail())
}
