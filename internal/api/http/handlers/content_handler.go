package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lactec/intranet/internal/api/dto"
	"github.com/lactec/intranet/internal/auth"
	"github.com/lactec/intranet/internal/catalog"
	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/service"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

// ContentHandler manages content endpoints.
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler constructs handler.
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{service: contentService}
}

// Create POST /content.
func (h *ContentHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PortalType == "" || strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("portal_type and title required", nil)
	}

	obj, err := h.service.Create(c.UserContext(), principal, service.CreateInput{
		PortalType:  req.PortalType,
		ID:          req.ID,
		Container:   req.Container,
		Title:       req.Title,
		Description: req.Description,
		Fields:      req.Fields,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": h.contentResponse(obj)})
}

// Get GET /content/:uid.
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	obj, err := h.service.Get(c.UserContext(), c.Params("uid"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.contentResponse(obj)})
}

// Update PATCH /content/:uid.
func (h *ContentHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	obj, err := h.service.Update(c.UserContext(), principal, c.Params("uid"), service.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Fields:      req.Fields,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.contentResponse(obj)})
}

// Search GET /search. Every query parameter naming a catalog index is
// used as an exact-match criterion.
func (h *ContentHandler) Search(c *fiber.Ctx) error {
	q := catalog.Query{}
	for key, value := range c.Queries() {
		if !catalog.HasIndex(key) {
			return apperrors.NewValidationError("unknown index", map[string]any{"index": key})
		}
		q[key] = value
	}

	brains, err := h.service.Find(c.UserContext(), q)
	if err != nil {
		return err
	}
	items := make([]dto.BrainResponse, 0, len(brains))
	for _, brain := range brains {
		items = append(items, dto.BrainResponse{
			UID:        brain.UID,
			PortalType: brain.PortalType,
			Path:       brain.Path,
			Title:      brain.Title,
			URL:        h.service.URLForPath(brain.Path),
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetType GET /types/:name.
func (h *ContentHandler) GetType(c *fiber.Ctx) error {
	info, ok := h.service.Types().Get(c.Params("name"))
	if !ok {
		return apperrors.NewNotFound("content type", map[string]any{"type": c.Params("name")})
	}
	return c.JSON(fiber.Map{"data": dto.TypeResponse{
		Name:      info.Name,
		Title:     info.Title,
		AddRoles:  roleNames(info.AddRoles),
		Behaviors: info.Behaviors,
		Fields:    info.Fields,
	}})
}

func (h *ContentHandler) contentResponse(obj *domain.Content) dto.ContentResponse {
	return dto.ContentResponse{
		UID:            obj.UID,
		ID:             obj.ID,
		Path:           obj.Path(),
		URL:            h.service.AbsoluteURL(obj),
		PortalType:     obj.PortalType,
		Title:          obj.Title,
		Description:    obj.Description,
		ExcludeFromNav: obj.ExcludeFromNav,
		Fields:         obj.Fields,
		Creator:        obj.Creator,
		CreatedAt:      obj.CreatedAt,
		ModifiedAt:     obj.ModifiedAt,
	}
}
