package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
	"backend/pkg/i18n"

	"github.com/google/uuid"
)

// NavigationNode is one entry of the client-renderable menu tree.
type NavigationNode struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	URL      string           `json:"url,omitempty"`
	Icon     string           `json:"icon,omitempty"`
	Children []NavigationNode `json:"children"`
}

// NavigationService produces the localized, optionally permission-filtered
// menu tree. Read-only; a role with no viewable menus gets an empty slice.
type NavigationService interface {
	GetNavigation(ctx context.Context, lang string, roleID string) ([]NavigationNode, error)
}

type navigationService struct {
	menus repository.MenuRepository
	perms repository.PermissionRepository
}

func NewNavigationService(menus repository.MenuRepository, perms repository.PermissionRepository) NavigationService {
	return &navigationService{menus: menus, perms: perms}
}

// GetNavigation walks the menu forest top-down. With a roleID only menus the
// role can_view are included, at every level; without one (public
// navigation) all active menus are.
func (s *navigationService) GetNavigation(ctx context.Context, lang string, roleID string) ([]NavigationNode, error) {
	if lang == "" {
		lang = i18n.DefaultLanguage
	}

	var (
		top []model.Menu
		rid *uuid.UUID
		err error
	)
	if roleID != "" {
		parsed, parseErr := uuid.Parse(roleID)
		if parseErr != nil {
			return nil, apperror.Validation("invalid role id '%s'", roleID)
		}
		rid = &parsed
		top, err = s.perms.FindViewableTopLevel(ctx, parsed)
	} else {
		top, err = s.menus.FindActiveTopLevel(ctx)
	}
	if err != nil {
		return nil, err
	}

	nodes := make([]NavigationNode, 0, len(top))
	for _, menu := range top {
		node, err := s.buildNode(ctx, menu, lang, rid)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (s *navigationService) buildNode(ctx context.Context, menu model.Menu, lang string, roleID *uuid.UUID) (NavigationNode, error) {
	name := menu.Name
	if tr, ok := i18n.Pick(menu.Translations, lang); ok {
		name = i18n.Override(tr.Name, menu.Name)
	}

	node := NavigationNode{
		ID:       menu.ID.String(),
		Name:     name,
		URL:      menu.URL,
		Icon:     menu.Icon,
		Children: []NavigationNode{},
	}

	var (
		children []model.Menu
		err      error
	)
	if roleID != nil {
		children, err = s.perms.FindViewableChildren(ctx, *roleID, menu.ID)
	} else {
		children, err = s.menus.FindActiveChildren(ctx, menu.ID)
	}
	if err != nil {
		return NavigationNode{}, err
	}

	for _, child := range children {
		childNode, err := s.buildNode(ctx, child, lang, roleID)
		if err != nil {
			return NavigationNode{}, err
		}
		node.Children = append(node.Children, childNode)
	}
	return node, nil
}
