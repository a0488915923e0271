package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/repository"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

// GroupService manages groups and the local roles granted to them.
type GroupService struct {
	groups     repository.GroupRepository
	localRoles repository.LocalRoleRepository
	logger     *zap.Logger
}

// GroupDependencies bundles repositories for the group service.
type GroupDependencies struct {
	GroupRepo     repository.GroupRepository
	LocalRoleRepo repository.LocalRoleRepository
	Logger        *zap.Logger
}

// CreateGroupInput describes a new group.
type CreateGroupInput struct {
	Name        string
	Title       string
	Description string
}

// NewGroupService constructs the service.
func NewGroupService(deps GroupDependencies) *GroupService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{
		groups:     deps.GroupRepo,
		localRoles: deps.LocalRoleRepo,
		logger:     logger,
	}
}

// Create stores a new group. Group names are unique.
func (s *GroupService) Create(ctx context.Context, input CreateGroupInput) (*domain.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("group name required", nil)
	}
	group := &domain.Group{
		ID:          name,
		Title:       input.Title,
		Description: input.Description,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("group already exists", map[string]any{"group": name})
		}
		return nil, apperrors.MapError(err)
	}
	s.logger.Debug("group created", zap.String("group", name))
	return group, nil
}

// Get fetches a group by name.
func (s *GroupService) Get(ctx context.Context, name string) (*domain.Group, error) {
	group, err := s.groups.GetByID(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("group", map[string]any{"group": name})
		}
		return nil, apperrors.MapError(err)
	}
	return group, nil
}

// AddMember adds a user to a group.
func (s *GroupService) AddMember(ctx context.Context, name, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}
	if _, err := s.Get(ctx, name); err != nil {
		return err
	}
	if err := s.groups.AddMember(ctx, name, userID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GroupsFor lists the groups a user belongs to.
func (s *GroupService) GroupsFor(ctx context.Context, userID string) ([]string, error) {
	groups, err := s.groups.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return groups, nil
}

// GrantRoles grants roles to a group on one content item.
func (s *GroupService) GrantRoles(ctx context.Context, groupID string, roles []domain.Role, objUID string) error {
	if _, err := s.Get(ctx, groupID); err != nil {
		return err
	}
	for _, role := range roles {
		if !role.Valid() {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
		}
	}
	if err := s.localRoles.Grant(ctx, groupID, objUID, roles); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GetRoles returns the local roles a group holds on one content item.
func (s *GroupService) GetRoles(ctx context.Context, groupID, objUID string) ([]domain.Role, error) {
	if _, err := s.Get(ctx, groupID); err != nil {
		return nil, err
	}
	roles, err := s.localRoles.ListRoles(ctx, objUID, groupID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return roles, nil
}

// LocalRolesFor returns the local roles p holds on an item, directly or
// through its groups.
func (s *GroupService) LocalRolesFor(ctx context.Context, p *domain.Principal, objUID string) ([]domain.Role, error) {
	roles, err := s.localRoles.ListRoles(ctx, objUID, p.PrincipalIDs()...)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return roles, nil
}
