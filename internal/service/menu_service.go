package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"
	"backend/pkg/i18n"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateMenuRequest struct {
	Name      string  `json:"name" binding:"required"`
	Slug      string  `json:"slug" binding:"required"`
	URL       string  `json:"url"`
	Icon      string  `json:"icon"`
	ParentID  *string `json:"parent_id"`
	SortOrder int     `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

type UpdateMenuRequest struct {
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	URL       *string `json:"url"`
	Icon      *string `json:"icon"`
	ParentID  *string `json:"parent_id"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

type MenuTranslationRequest struct {
	LanguageCode string `json:"language_code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	IsActive     *bool  `json:"is_active"`
}

type MenuResponse struct {
	ID           string                    `json:"id"`
	Slug         string                    `json:"slug"`
	Name         string                    `json:"name"`
	URL          string                    `json:"url,omitempty"`
	Icon         string                    `json:"icon,omitempty"`
	ParentID     *string                   `json:"parent_id,omitempty"`
	SortOrder    int                       `json:"sort_order"`
	IsActive     bool                      `json:"is_active"`
	Children     []MenuResponse            `json:"children,omitempty"`
	Translations []MenuTranslationResponse `json:"translations,omitempty"`
}

type MenuTranslationResponse struct {
	ID           string `json:"id"`
	MenuID       string `json:"menu_id"`
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	IsActive     bool   `json:"is_active"`
}

// --- Interface ---

// MenuService is the menu tree store: CRUD over the menu forest with
// parent/child integrity and one-translation-per-language enforcement.
type MenuService interface {
	Create(ctx context.Context, req CreateMenuRequest, actorID string) (*MenuResponse, error)
	FindAll(ctx context.Context, lang string) ([]MenuResponse, error)
	FindOne(ctx context.Context, id string, lang string) (*MenuResponse, error)
	Update(ctx context.Context, id string, req UpdateMenuRequest, actorID string) (*MenuResponse, error)
	Remove(ctx context.Context, id string, actorID string) error
	AddTranslation(ctx context.Context, menuID string, req MenuTranslationRequest) (*MenuTranslationResponse, error)
	UpdateTranslation(ctx context.Context, menuID, translationID string, req MenuTranslationRequest) (*MenuTranslationResponse, error)
	RemoveTranslation(ctx context.Context, menuID, translationID string) error
}

type menuService struct {
	menus repository.MenuRepository
	tx    repository.TransactionManager
	audit AuditService
}

func NewMenuService(menus repository.MenuRepository, tx repository.TransactionManager, audit AuditService) MenuService {
	return &menuService{menus: menus, tx: tx, audit: audit}
}

// --- Implementation ---

func (s *menuService) Create(ctx context.Context, req CreateMenuRequest, actorID string) (*MenuResponse, error) {
	if _, err := s.menus.FindBySlug(ctx, req.Slug); err == nil {
		return nil, apperror.Conflict("menu slug '%s' already exists", req.Slug)
	}

	menu := model.Menu{
		ID:        uuid.New(),
		Slug:      req.Slug,
		Name:      req.Name,
		URL:       req.URL,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}
	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, apperror.Validation("invalid parent id '%s'", *req.ParentID)
		}
		if _, err := s.menus.FindByID(ctx, parentID); err != nil {
			return nil, apperror.NotFound("parent menu %s", *req.ParentID)
		}
		menu.ParentID = &parentID
	}

	if err := s.menus.Create(ctx, &menu); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionCreateMenu, menu.ID.String(), menu.Name, req)
	res := toMenuResponse(menu, "")
	return &res, nil
}

func (s *menuService) FindAll(ctx context.Context, lang string) ([]MenuResponse, error) {
	menus, err := s.menus.FindForest(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]MenuResponse, 0, len(menus))
	for _, m := range menus {
		res = append(res, toMenuResponse(m, lang))
	}
	return res, nil
}

func (s *menuService) FindOne(ctx context.Context, id string, lang string) (*MenuResponse, error) {
	menuID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid menu id '%s'", id)
	}

	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("menu %s", id)
		}
		return nil, err
	}

	res := toMenuResponse(*menu, lang)
	return &res, nil
}

func (s *menuService) Update(ctx context.Context, id string, req UpdateMenuRequest, actorID string) (*MenuResponse, error) {
	menuID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid menu id '%s'", id)
	}

	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		return nil, apperror.NotFound("menu %s", id)
	}

	if req.Slug != nil && *req.Slug != menu.Slug {
		if existing, err := s.menus.FindBySlug(ctx, *req.Slug); err == nil && existing.ID != menuID {
			return nil, apperror.Conflict("menu slug '%s' already exists", *req.Slug)
		}
		menu.Slug = *req.Slug
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.URL != nil {
		menu.URL = *req.URL
	}
	if req.Icon != nil {
		menu.Icon = *req.Icon
	}
	if req.SortOrder != nil {
		menu.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			menu.ParentID = nil
		} else {
			parentID, err := uuid.Parse(*req.ParentID)
			if err != nil {
				return nil, apperror.Validation("invalid parent id '%s'", *req.ParentID)
			}
			if parentID == menuID {
				return nil, apperror.Conflict("menu cannot be its own parent")
			}
			if err := s.ensureNotDescendant(ctx, menuID, parentID); err != nil {
				return nil, err
			}
			menu.ParentID = &parentID
		}
	}

	// Children/Translations were preloaded for the response above; zero them
	// so Save does not attempt to upsert associations.
	menu.Children = nil
	menu.Translations = nil
	menu.Parent = nil

	if err := s.menus.Update(ctx, menu); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionUpdateMenu, id, menu.Name, req)
	return s.FindOne(ctx, id, "")
}

// ensureNotDescendant rejects reparenting a menu under its own descendant,
// which would create a cycle in the forest.
func (s *menuService) ensureNotDescendant(ctx context.Context, menuID, newParentID uuid.UUID) error {
	current := newParentID
	for {
		node, err := s.menus.FindByID(ctx, current)
		if err != nil {
			return apperror.NotFound("parent menu %s", current)
		}
		if node.ParentID == nil {
			return nil
		}
		if *node.ParentID == menuID {
			return apperror.Conflict("cannot move menu under its own descendant")
		}
		current = *node.ParentID
	}
}

func (s *menuService) Remove(ctx context.Context, id string, actorID string) error {
	menuID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid menu id '%s'", id)
	}

	menu, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		return apperror.NotFound("menu %s", id)
	}

	children, err := s.menus.CountChildren(ctx, menuID)
	if err != nil {
		return err
	}
	if children > 0 {
		return apperror.Conflict("cannot delete menu with children")
	}

	// Cascade translations and permission grants before the menu row itself
	// so no orphaned foreign keys remain.
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.menus.DeleteTranslations(txCtx, menuID); err != nil {
			return err
		}
		if err := s.menus.DeletePermissions(txCtx, menuID); err != nil {
			return err
		}
		return s.menus.Delete(txCtx, menuID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, model.ActionDeleteMenu, id, menu.Name, map[string]string{"slug": menu.Slug})
	return nil
}

func (s *menuService) AddTranslation(ctx context.Context, menuID string, req MenuTranslationRequest) (*MenuTranslationResponse, error) {
	mid, err := uuid.Parse(menuID)
	if err != nil {
		return nil, apperror.Validation("invalid menu id '%s'", menuID)
	}
	if _, err := s.menus.FindByID(ctx, mid); err != nil {
		return nil, apperror.NotFound("menu %s", menuID)
	}

	// One row per (menu, language); no implicit upsert.
	if _, err := s.menus.FindTranslation(ctx, mid, req.LanguageCode); err == nil {
		return nil, apperror.Conflict("translation for language '%s' already exists", req.LanguageCode)
	}

	tr := model.MenuTranslation{
		ID:           uuid.New(),
		MenuID:       mid,
		LanguageCode: req.LanguageCode,
		Name:         req.Name,
		IsActive:     true,
	}
	if req.IsActive != nil {
		tr.IsActive = *req.IsActive
	}

	if err := s.menus.CreateTranslation(ctx, &tr); err != nil {
		return nil, err
	}

	res := toMenuTranslationResponse(tr)
	return &res, nil
}

func (s *menuService) UpdateTranslation(ctx context.Context, menuID, translationID string, req MenuTranslationRequest) (*MenuTranslationResponse, error) {
	mid, err := uuid.Parse(menuID)
	if err != nil {
		return nil, apperror.Validation("invalid menu id '%s'", menuID)
	}
	tid, err := uuid.Parse(translationID)
	if err != nil {
		return nil, apperror.Validation("invalid translation id '%s'", translationID)
	}

	tr, err := s.menus.FindTranslationByID(ctx, mid, tid)
	if err != nil {
		return nil, apperror.NotFound("translation %s", translationID)
	}

	if req.LanguageCode != "" && req.LanguageCode != tr.LanguageCode {
		if existing, err := s.menus.FindTranslation(ctx, mid, req.LanguageCode); err == nil && existing.ID != tid {
			return nil, apperror.Conflict("translation for language '%s' already exists", req.LanguageCode)
		}
		tr.LanguageCode = req.LanguageCode
	}
	if req.Name != "" {
		tr.Name = req.Name
	}
	if req.IsActive != nil {
		tr.IsActive = *req.IsActive
	}

	if err := s.menus.UpdateTranslation(ctx, tr); err != nil {
		return nil, err
	}

	res := toMenuTranslationResponse(*tr)
	return &res, nil
}

func (s *menuService) RemoveTranslation(ctx context.Context, menuID, translationID string) error {
	mid, err := uuid.Parse(menuID)
	if err != nil {
		return apperror.Validation("invalid menu id '%s'", menuID)
	}
	tid, err := uuid.Parse(translationID)
	if err != nil {
		return apperror.Validation("invalid translation id '%s'", translationID)
	}

	if _, err := s.menus.FindTranslationByID(ctx, mid, tid); err != nil {
		return apperror.NotFound("translation %s", translationID)
	}

	return s.menus.DeleteTranslation(ctx, tid)
}

// --- Helpers ---

// toMenuResponse maps a menu (and its preloaded children) applying the
// translation overlay when a language is requested.
func toMenuResponse(m model.Menu, lang string) MenuResponse {
	res := MenuResponse{
		ID:        m.ID.String(),
		Slug:      m.Slug,
		Name:      m.Name,
		URL:       m.URL,
		Icon:      m.Icon,
		SortOrder: m.SortOrder,
		IsActive:  m.IsActive,
	}
	if m.ParentID != nil {
		pid := m.ParentID.String()
		res.ParentID = &pid
	}

	if lang == "" {
		// No language requested: expose the raw translation list so API
		// consumers can see every language.
		for _, tr := range m.Translations {
			res.Translations = append(res.Translations, toMenuTranslationResponse(tr))
		}
	} else if tr, ok := i18n.Pick(m.Translations, lang); ok {
		res.Name = i18n.Override(tr.Name, m.Name)
	}

	for _, child := range m.Children {
		res.Children = append(res.Children, toMenuResponse(child, lang))
	}
	return res
}

func toMenuTranslationResponse(tr model.MenuTranslation) MenuTranslationResponse {
	return MenuTranslationResponse{
		ID:           tr.ID.String(),
		MenuID:       tr.MenuID.String(),
		LanguageCode: tr.LanguageCode,
		Name:         tr.Name,
		IsActive:     tr.IsActive,
	}
}
