// Package subscribers reacts to content lifecycle events.
package subscribers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/events"
	"github.com/lactec/intranet/internal/service"
)

// GroupManager creates groups and grants them local roles.
type GroupManager interface {
	Create(ctx context.Context, input service.CreateGroupInput) (*domain.Group, error)
	GrantRoles(ctx context.Context, groupID string, roles []domain.Role, objUID string) error
}

// ContentLocator resolves identifiers and URLs of content items.
type ContentLocator interface {
	GetUUID(obj *domain.Content) string
	AbsoluteURL(obj *domain.Content) string
}

// AreaSubscriber keeps Area items consistent after they are added or modified.
type AreaSubscriber struct {
	groups  GroupManager
	content ContentLocator
	logger  *zap.Logger
}

// NewAreaSubscriber builds the subscriber.
func NewAreaSubscriber(groups GroupManager, content ContentLocator, logger *zap.Logger) *AreaSubscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AreaSubscriber{groups: groups, content: content, logger: logger}
}

// Register subscribes the Area handlers to the dispatcher.
func (s *AreaSubscriber) Register(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventObjectAdded, events.ForType(domain.TypeArea, s.Added))
	dispatcher.Subscribe(events.EventObjectModified, events.ForType(domain.TypeArea, s.Modified))
}

// Added derives the navigation flag of a new Area, creates its editors
// group and grants that group Editor on the Area. Errors are returned
// unchanged; nothing done before the failure is undone.
func (s *AreaSubscriber) Added(ctx context.Context, event events.Event) error {
	area := event.Object
	s.updateExcludeFromNav(area)
	return s.createEditorsGroup(ctx, area)
}

// Modified recomputes the navigation flag of an Area.
func (s *AreaSubscriber) Modified(_ context.Context, event events.Event) error {
	s.updateExcludeFromNav(event.Object)
	return nil
}

func (s *AreaSubscriber) updateExcludeFromNav(area *domain.Content) {
	area.ExcludeFromNav = domain.AreaExcludedFromNav(area.Description)
	s.logger.Info(fmt.Sprintf("updated exclude_from_nav for %s", area.Title),
		zap.String("uid", area.UID),
		zap.Bool("exclude_from_nav", area.ExcludeFromNav))
}

func (s *AreaSubscriber) createEditorsGroup(ctx context.Context, area *domain.Content) error {
	uid := s.content.GetUUID(area)
	title := domain.AreaEditorsGroupTitle(area.Title)
	group, err := s.groups.Create(ctx, service.CreateGroupInput{
		Name:        domain.AreaEditorsGroupID(uid),
		Title:       title,
		Description: domain.AreaEditorsGroupDescription(area.Title),
	})
	if err != nil {
		return err
	}
	s.logger.Info(fmt.Sprintf("created group %s for area %s", title, area.Title), zap.String("group", group.ID))

	if err := s.groups.GrantRoles(ctx, group.ID, []domain.Role{domain.RoleEditor}, uid); err != nil {
		return err
	}
	s.logger.Info(fmt.Sprintf("group %s granted Editor on %s", title, s.content.AbsoluteURL(area)), zap.String("group", group.ID))
	return nil
}
