package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/catalog"
	"github.com/lactec/intranet/internal/content"
	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/events"
	"github.com/lactec/intranet/internal/repository"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

// LocalRoleResolver resolves the local roles a principal holds on an item.
type LocalRoleResolver interface {
	LocalRolesFor(ctx context.Context, p *domain.Principal, objUID string) ([]domain.Role, error)
}

// ContentService creates, modifies and finds content items. It stores the
// item, fires the lifecycle events and keeps the catalog in sync.
type ContentService struct {
	contents   repository.ContentRepository
	catalog    *catalog.Catalog
	types      *content.Registry
	roles      LocalRoleResolver
	dispatcher events.Dispatcher
	portalURL  string
	logger     *zap.Logger
}

// ContentDependencies bundles collaborators for the content service.
type ContentDependencies struct {
	ContentRepo repository.ContentRepository
	Catalog     *catalog.Catalog
	Types       *content.Registry
	Roles       LocalRoleResolver
	Dispatcher  events.Dispatcher
	PortalURL   string
	Logger      *zap.Logger
}

// CreateInput describes a new content item.
type CreateInput struct {
	PortalType  string
	ID          string
	Container   string
	Title       string
	Description string
	Fields      map[string]string
}

// UpdateInput describes changes to an item. Nil pointers leave the
// attribute untouched; a field set to "" is cleared.
type UpdateInput struct {
	Title       *string
	Description *string
	Fields      map[string]string
}

// NewContentService constructs the service.
func NewContentService(deps ContentDependencies) *ContentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{
		contents:   deps.ContentRepo,
		catalog:    deps.Catalog,
		types:      deps.Types,
		roles:      deps.Roles,
		dispatcher: deps.Dispatcher,
		portalURL:  strings.TrimRight(deps.PortalURL, "/"),
		logger:     logger,
	}
}

// Create adds a new item inside a container. The object_added handlers
// run after the item is stored; when one fails the item stays stored with
// whatever the handlers changed before failing, and the error is returned.
func (s *ContentService) Create(ctx context.Context, actor *domain.Principal, input CreateInput) (*domain.Content, error) {
	typeInfo, ok := s.types.Get(input.PortalType)
	if !ok {
		return nil, apperrors.NewValidationError("unknown content type", map[string]any{"type": input.PortalType})
	}
	if !typeInfo.CanAdd(actor) {
		return nil, apperrors.NewForbidden(fmt.Sprintf("Unauthorized: cannot add %s", input.PortalType))
	}
	if err := validateFields(typeInfo, input.Fields); err != nil {
		return nil, err
	}

	container, err := s.resolveContainer(ctx, input.Container)
	if err != nil {
		return nil, err
	}
	id, err := s.chooseID(ctx, container, input)
	if err != nil {
		return nil, err
	}

	obj := &domain.Content{
		UID:         uuid.NewString(),
		ID:          id,
		ParentPath:  container,
		PortalType:  input.PortalType,
		Title:       input.Title,
		Description: input.Description,
		Creator:     actor.ID,
	}
	for name, value := range input.Fields {
		obj.SetField(name, value)
	}

	if err := s.contents.Create(ctx, obj); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("content id already in use", map[string]any{"path": obj.Path()})
		}
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("content created",
		zap.String("uid", obj.UID),
		zap.String("type", obj.PortalType),
		zap.String("path", obj.Path()))

	notifyErr := s.publish(ctx, events.NewEvent(events.EventObjectAdded, obj, actor.ID))
	if err := s.store(ctx, obj); err != nil {
		return nil, err
	}
	if notifyErr != nil {
		return nil, notifyErr
	}
	return obj, nil
}

// Update applies changes to an item and fires object_modified.
func (s *ContentService) Update(ctx context.Context, actor *domain.Principal, uid string, input UpdateInput) (*domain.Content, error) {
	obj, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := s.checkModify(ctx, actor, obj); err != nil {
		return nil, err
	}
	typeInfo, _ := s.types.Get(obj.PortalType)
	if err := validateFields(typeInfo, input.Fields); err != nil {
		return nil, err
	}

	var changes []string
	// title and description are stored as given; a blank description is
	// still a description
	if input.Title != nil && *input.Title != obj.Title {
		obj.Title = *input.Title
		changes = append(changes, "title")
	}
	if input.Description != nil && *input.Description != obj.Description {
		obj.Description = *input.Description
		changes = append(changes, "description")
	}
	fieldNames := make([]string, 0, len(input.Fields))
	for name := range input.Fields {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)
	for _, name := range fieldNames {
		if obj.Field(name) != input.Fields[name] {
			obj.SetField(name, input.Fields[name])
			changes = append(changes, name)
		}
	}

	return s.modified(ctx, actor, obj, changes)
}

// Notify fires object_modified for an item without changing it.
func (s *ContentService) Notify(ctx context.Context, actor *domain.Principal, uid string) (*domain.Content, error) {
	obj, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := s.checkModify(ctx, actor, obj); err != nil {
		return nil, err
	}
	return s.modified(ctx, actor, obj, nil)
}

// Get fetches an item by UID.
func (s *ContentService) Get(ctx context.Context, uid string) (*domain.Content, error) {
	obj, err := s.contents.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("content", map[string]any{"uid": uid})
		}
		return nil, apperrors.MapError(err)
	}
	return obj, nil
}

// Find searches the catalog.
func (s *ContentService) Find(ctx context.Context, q catalog.Query) ([]catalog.Brain, error) {
	return s.catalog.Search(ctx, q)
}

// GetUUID returns the unique identifier of an item.
func (s *ContentService) GetUUID(obj *domain.Content) string {
	return obj.UID
}

// AbsoluteURL returns the public URL of an item.
func (s *ContentService) AbsoluteURL(obj *domain.Content) string {
	return s.URLForPath(obj.Path())
}

// URLForPath returns the public URL of a portal path.
func (s *ContentService) URLForPath(path string) string {
	return s.portalURL + path
}

// Types returns the content type registry.
func (s *ContentService) Types() *content.Registry {
	return s.types
}

// RebuildCatalog reindexes every stored item.
func (s *ContentService) RebuildCatalog(ctx context.Context) error {
	objs, err := s.contents.List(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	return s.catalog.Rebuild(ctx, objs)
}

func (s *ContentService) modified(ctx context.Context, actor *domain.Principal, obj *domain.Content, changes []string) (*domain.Content, error) {
	notifyErr := s.publish(ctx, events.NewEvent(events.EventObjectModified, obj, actor.ID, changes...))
	if err := s.store(ctx, obj); err != nil {
		return nil, err
	}
	if notifyErr != nil {
		return nil, notifyErr
	}
	s.logger.Info("content modified", zap.String("uid", obj.UID), zap.Strings("changes", changes))
	return obj, nil
}

// store persists obj and reindexes it.
func (s *ContentService) store(ctx context.Context, obj *domain.Content) error {
	if err := s.contents.Update(ctx, obj); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.catalog.Index(ctx, obj); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ContentService) publish(ctx context.Context, event events.Event) error {
	if s.dispatcher == nil {
		return nil
	}
	return s.dispatcher.Publish(ctx, event)
}

func (s *ContentService) checkModify(ctx context.Context, actor *domain.Principal, obj *domain.Content) error {
	if actor.HasRole(domain.RoleManager, domain.RoleSiteAdministrator) {
		return nil
	}
	if actor != nil && s.roles != nil {
		local, err := s.roles.LocalRolesFor(ctx, actor, obj.UID)
		if err != nil {
			return err
		}
		if domain.ContainsRole(local, domain.RoleEditor) {
			return nil
		}
	}
	return apperrors.NewForbidden("Unauthorized: cannot modify " + obj.Path())
}

func (s *ContentService) resolveContainer(ctx context.Context, container string) (string, error) {
	container = strings.TrimRight(strings.TrimSpace(container), "/")
	if container == "" {
		return "", nil
	}
	if !strings.HasPrefix(container, "/") {
		container = "/" + container
	}
	if _, err := s.contents.GetByPath(ctx, container); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.NewNotFound("container", map[string]any{"path": container})
		}
		return "", apperrors.MapError(err)
	}
	return container, nil
}

func (s *ContentService) chooseID(ctx context.Context, container string, input CreateInput) (string, error) {
	explicit := content.NormalizeID(input.ID)
	base := explicit
	if base == "" {
		base = content.NormalizeID(input.Title)
	}
	if base == "" {
		return "", apperrors.NewValidationError("id or title required", nil)
	}
	existing, err := s.contents.ChildIDs(ctx, container)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	taken := make(map[string]bool, len(existing))
	for _, id := range existing {
		taken[id] = true
	}
	// explicit ids are kept as given; only ids derived from the title are made unique
	if explicit != "" {
		if taken[explicit] {
			return "", apperrors.NewConflict("content id already in use", map[string]any{"id": explicit, "container": container})
		}
		return explicit, nil
	}
	return content.ChooseID(base, taken), nil
}

func validateFields(typeInfo content.TypeInfo, fields map[string]string) error {
	for name := range fields {
		if !typeInfo.HasField(name) {
			return apperrors.NewValidationError("unknown field", map[string]any{
				"type":  typeInfo.Name,
				"field": name,
			})
		}
	}
	return nil
}
