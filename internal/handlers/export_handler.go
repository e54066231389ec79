package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dotlabs/dot-ranker/internal/models"
	"dotlabs/dot-ranker/internal/repositories"
	"dotlabs/dot-ranker/internal/services"
)

type ExportHandler struct {
	sessionStore services.SessionStoreService
	analysisRepo repositories.AnalysisRepository
}

func NewExportHandler(
	sessionStore services.SessionStoreService,
	analysisRepo repositories.AnalysisRepository,
) *ExportHandler {
	return &ExportHandler{
		sessionStore: sessionStore,
		analysisRepo: analysisRepo,
	}
}

// HandleExport handles GET /export. It flattens the session's last analysis
// into the export document; without a prior /analyze in this session there
// is nothing to export.
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	sessionID := c.Cookies(sessionCookie)
	if sessionID == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": services.ErrNoAnalysis.Error(),
		})
	}

	analysis, err := h.sessionStore.LastAnalysis(c.Context(), sessionID)
	if errors.Is(err, services.ErrNoAnalysis) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": services.ErrNoAnalysis.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	export := models.ExportDocument{
		Timestamp:             analysis.Timestamp.Format(time.RFC3339),
		JobAnalysis:           analysis.Results.JobRequirementsAnalysis,
		TotalProfilesAnalyzed: analysis.ProfileCount,
		Candidates:            make([]models.ExportCandidate, 0, len(analysis.Results.Ranking)),
	}

	for _, rc := range analysis.Results.Ranking {
		export.Candidates = append(export.Candidates, models.ExportCandidate{
			DotID:           rc.DotID,
			Rank:            rc.Rank,
			Score:           rc.OverallScore,
			MatchPercentage: rc.MatchPercentage,
			FinalVerdict:    rc.FinalVerdict,
			VerifiedSkills:  rc.VerifiedSkills,
			SkillsRejected:  rc.SkillsRejected,
			CandidateMeta:   rc.CandidateMeta,
			Recommendation:  rc.Recommendation,
			ComponentScores: rc.ComponentScores,
		})
	}

	return c.JSON(export)
}

// HandleGetAnalysis handles GET /analyses/:id
func (h *ExportHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	idParam := c.Params("id")
	analysisID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	return c.JSON(fiber.Map{
		"id":               analysis.ID.String(),
		"created_at":       analysis.CreatedAt,
		"profile_count":    analysis.ProfileCount,
		"job_requirements": json.RawMessage(analysis.JobRequirements),
		"report":           json.RawMessage(analysis.Report),
	})
}
