package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

// GroupService manages groups and their membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group. The creator is always included in the member
// set, whether or not the caller listed them.
func (s *GroupService) CreateGroup(ctx context.Context, name, createdBy string, members []string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name cannot be empty", ErrInvalidInput)
	}
	if createdBy == "" {
		return nil, fmt.Errorf("%w: group creator is required", ErrInvalidInput)
	}

	group := &models.Group{
		Name:      name,
		CreatedBy: createdBy,
		Members:   uniqueWith(members, createdBy),
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "name", group.Name, "members", len(group.Members))
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListGroups retrieves all groups the member belongs to.
func (s *GroupService) ListGroups(ctx context.Context, memberID string) ([]*models.Group, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: member is required", ErrInvalidInput)
	}
	return s.store.ListGroupsByMember(ctx, memberID)
}

// AddMember adds a member to a group.
func (s *GroupService) AddMember(ctx context.Context, groupID, memberID string) error {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return fmt.Errorf("%w: member cannot be empty", ErrInvalidInput)
	}
	if err := s.store.AddGroupMembers(ctx, groupID, []string{memberID}); err != nil {
		return err
	}
	slog.Info("member added", "group_id", groupID, "member", memberID)
	return nil
}

// RemoveMember removes a member from a group. Past transactions referencing
// the member stay valid; the ledger reports the departed member as a
// floating balance entry until they settle.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, memberID string) error {
	if err := s.store.RemoveGroupMember(ctx, groupID, memberID); err != nil {
		return err
	}
	slog.Info("member removed", "group_id", groupID, "member", memberID)
	return nil
}

// DeleteGroup removes a group and all of its transactions.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	slog.Info("group deleted", "group_id", groupID)
	return nil
}

// uniqueWith returns members deduplicated, with extra guaranteed present.
func uniqueWith(members []string, extra string) []string {
	seen := make(map[string]bool, len(members)+1)
	result := make([]string, 0, len(members)+1)
	for _, m := range append([]string{extra}, members...) {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		result = append(result, m)
	}
	return result
}
