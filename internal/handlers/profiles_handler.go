package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"dotlabs/dot-ranker/internal/models"
	"dotlabs/dot-ranker/internal/services"
)

type ProfilesHandler struct {
	profileStore services.ProfileStoreService
}

func NewProfilesHandler(profileStore services.ProfileStoreService) *ProfilesHandler {
	return &ProfilesHandler{
		profileStore: profileStore,
	}
}

// HandleListProfiles handles GET /profiles
func (h *ProfilesHandler) HandleListProfiles(c *fiber.Ctx) error {
	profiles, err := h.profileStore.Profiles()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.ProfilesResponse{
		Success:       true,
		TotalProfiles: len(profiles),
		Profiles:      profiles,
	})
}

// HandleReload handles POST /reload
func (h *ProfilesHandler) HandleReload(c *fiber.Ctx) error {
	profiles, err := h.profileStore.Reload()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to reload profiles: %v", err),
		})
	}

	return c.JSON(models.ReloadResponse{
		Success:       true,
		Message:       "Profiles reloaded successfully",
		TotalProfiles: len(profiles),
	})
}
