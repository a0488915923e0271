package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lactec/intranet/internal/api/dto"
	"github.com/lactec/intranet/internal/upgrades"
)

// UpgradesHandler lists and runs upgrade steps.
type UpgradesHandler struct {
	runner *upgrades.Runner
}

// NewUpgradesHandler constructs handler.
func NewUpgradesHandler(runner *upgrades.Runner) *UpgradesHandler {
	return &UpgradesHandler{runner: runner}
}

// List GET /upgrades.
func (h *UpgradesHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	profiles := h.runner.Registry().Profiles()
	items := make([]dto.ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		version, err := h.runner.CurrentVersion(ctx, profile)
		if err != nil {
			return err
		}
		pending, err := h.runner.Pending(ctx, profile)
		if err != nil {
			return err
		}
		isPending := make(map[string]bool, len(pending))
		for _, step := range pending {
			isPending[step.ID] = true
		}

		steps := h.runner.Registry().Steps(profile)
		resp := dto.ProfileResponse{Profile: profile, Version: version, Steps: make([]dto.UpgradeStepResponse, 0, len(steps))}
		for _, step := range steps {
			resp.Steps = append(resp.Steps, dto.UpgradeStepResponse{
				ID:          step.ID,
				Profile:     step.Profile,
				Source:      step.Source,
				Destination: step.Destination,
				Title:       step.Title,
				Pending:     isPending[step.ID],
			})
		}
		items = append(items, resp)
	}
	return c.JSON(fiber.Map{"data": items})
}

// RunProfile POST /upgrades/:profile/run.
func (h *UpgradesHandler) RunProfile(c *fiber.Ctx) error {
	result, err := h.runner.Run(c.UserContext(), c.Params("profile"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// RunStep POST /upgrades/steps/:id/run.
func (h *UpgradesHandler) RunStep(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.runner.RunStep(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"step": id, "status": "done"}})
}
