package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lactec/intranet/internal/api/dto"
	"github.com/lactec/intranet/internal/service"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

// GroupsHandler exposes group endpoints.
type GroupsHandler struct {
	groups *service.GroupService
}

// NewGroupsHandler constructs handler.
func NewGroupsHandler(groupService *service.GroupService) *GroupsHandler {
	return &GroupsHandler{groups: groupService}
}

// Get GET /groups/:id.
func (h *GroupsHandler) Get(c *fiber.Ctx) error {
	group, err := h.groups.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Description: group.Description,
	}})
}

// Roles GET /groups/:id/roles?obj=uid.
func (h *GroupsHandler) Roles(c *fiber.Ctx) error {
	objUID := c.Query("obj")
	if objUID == "" {
		return apperrors.NewValidationError("obj required", nil)
	}
	roles, err := h.groups.GetRoles(c.UserContext(), c.Params("id"), objUID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.GroupRolesResponse{
		Group:  c.Params("id"),
		Object: objUID,
		Roles:  roleNames(roles),
	}})
}

// AddMember POST /groups/:id/members.
func (h *GroupsHandler) AddMember(c *fiber.Ctx) error {
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.groups.AddMember(c.UserContext(), c.Params("id"), req.UserID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
