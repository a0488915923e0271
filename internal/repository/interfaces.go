package repository

import (
	"context"

	"github.com/lactec/intranet/internal/domain"
)

// ContentRepository manages content item persistence.
type ContentRepository interface {
	Create(ctx context.Context, obj *domain.Content) error
	Update(ctx context.Context, obj *domain.Content) error
	GetByUID(ctx context.Context, uid string) (*domain.Content, error)
	GetByPath(ctx context.Context, path string) (*domain.Content, error)
	ChildIDs(ctx context.Context, parentPath string) ([]string, error)
	List(ctx context.Context) ([]domain.Content, error)
}

// GroupRepository manages groups and their members.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	AddMember(ctx context.Context, groupID, userID string) error
	ListForUser(ctx context.Context, userID string) ([]string, error)
}

// LocalRoleRepository manages roles granted on single content items.
type LocalRoleRepository interface {
	Grant(ctx context.Context, principalID, objectUID string, roles []domain.Role) error
	ListRoles(ctx context.Context, objectUID string, principalIDs ...string) ([]domain.Role, error)
}

// UserRepository manages portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ProfileVersionRepository tracks the installed version of each setup profile.
type ProfileVersionRepository interface {
	Get(ctx context.Context, profileID string) (string, error)
	Set(ctx context.Context, profileID, version string) error
}
