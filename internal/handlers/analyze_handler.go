package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dotlabs/dot-ranker/internal/models"
	"dotlabs/dot-ranker/internal/repositories"
	"dotlabs/dot-ranker/internal/services"
)

type AnalyzeHandler struct {
	profileStore services.ProfileStoreService
	ranker       services.RankerService
	sessionStore services.SessionStoreService
	analysisRepo repositories.AnalysisRepository
}

func NewAnalyzeHandler(
	profileStore services.ProfileStoreService,
	ranker services.RankerService,
	sessionStore services.SessionStoreService,
	analysisRepo repositories.AnalysisRepository,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		profileStore: profileStore,
		ranker:       ranker,
		sessionStore: sessionStore,
		analysisRepo: analysisRepo,
	}
}

// HandleAnalyze handles POST /analyze. The ranking either fully succeeds or
// fails the whole request; a bad weight override never yields a partial
// leaderboard.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobRequirements == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing job_requirements in request body",
		})
	}

	profiles, err := h.profileStore.Profiles()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to load DOT profiles: %v", err),
		})
	}

	if len(profiles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": services.ErrNoProfiles.Error(),
		})
	}

	report, err := h.ranker.RankCandidates(req.JobRequirements, profiles)
	if err != nil {
		var confErr *services.ConfigurationError
		if errors.As(err, &confErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": confErr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	analysis, err := h.persistAnalysis(req.JobRequirements, report, len(profiles))
	if err != nil {
		// History is best-effort; the ranking itself already succeeded.
		log.Printf("⚠️  Failed to persist analysis: %v\n", err)
	}

	sessionID := ensureSession(c)
	snapshot := &models.SessionAnalysis{
		Timestamp:       time.Now(),
		JobRequirements: *req.JobRequirements,
		ProfileCount:    len(profiles),
		Results:         *report,
	}
	if err := h.sessionStore.SaveLastAnalysis(c.Context(), sessionID, snapshot); err != nil {
		log.Printf("⚠️  Failed to save session analysis: %v\n", err)
	}

	response := models.AnalyzeResponse{
		Success:          true,
		ProfilesAnalyzed: len(profiles),
		Recommendations:  report,
	}
	if analysis != nil {
		response.AnalysisID = analysis.ID.String()
	}

	return c.JSON(response)
}

func (h *AnalyzeHandler) persistAnalysis(job *models.JobRequirement, report *models.RankingReport, profileCount int) (*models.Analysis, error) {
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job requirements: %w", err)
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	analysis := &models.Analysis{
		ID:              uuid.New(),
		JobRequirements: string(jobJSON),
		Report:          string(reportJSON),
		ProfileCount:    profileCount,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}
