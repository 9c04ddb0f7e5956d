package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuRepository owns the menu forest and its translations.
type MenuRepository interface {
	Create(ctx context.Context, menu *model.Menu) error
	Update(ctx context.Context, menu *model.Menu) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Menu, error)
	FindBySlug(ctx context.Context, slug string) (*model.Menu, error)
	FindForest(ctx context.Context) ([]model.Menu, error)
	FindAllActive(ctx context.Context) ([]model.Menu, error)
	FindActiveChildren(ctx context.Context, parentID uuid.UUID) ([]model.Menu, error)
	FindActiveTopLevel(ctx context.Context) ([]model.Menu, error)
	CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error)
	DeleteTranslations(ctx context.Context, menuID uuid.UUID) error
	DeletePermissions(ctx context.Context, menuID uuid.UUID) error
	FindTranslation(ctx context.Context, menuID uuid.UUID, languageCode string) (*model.MenuTranslation, error)
	FindTranslationByID(ctx context.Context, menuID, translationID uuid.UUID) (*model.MenuTranslation, error)
	CreateTranslation(ctx context.Context, tr *model.MenuTranslation) error
	UpdateTranslation(ctx context.Context, tr *model.MenuTranslation) error
	DeleteTranslation(ctx context.Context, translationID uuid.UUID) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, menu *model.Menu) error {
	return GetDB(ctx, r.db).Create(menu).Error
}

func (r *menuRepository) Update(ctx context.Context, menu *model.Menu) error {
	return GetDB(ctx, r.db).Save(menu).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Menu{}).Error
}

func (r *menuRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	var menu model.Menu
	err := GetDB(ctx, r.db).
		Preload("Parent").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, name asc")
		}).
		Preload("Children.Translations").
		Preload("Translations").
		First(&menu, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) FindBySlug(ctx context.Context, slug string) (*model.Menu, error) {
	var menu model.Menu
	if err := GetDB(ctx, r.db).First(&menu, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// FindForest returns top-level menus with one level of active children
// eagerly attached, siblings ordered by sort_order then name.
func (r *menuRepository) FindForest(ctx context.Context) ([]model.Menu, error) {
	var menus []model.Menu
	err := GetDB(ctx, r.db).
		Where("parent_id IS NULL").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order asc, name asc")
		}).
		Preload("Children.Translations").
		Preload("Translations").
		Order("sort_order asc, name asc").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *menuRepository) FindAllActive(ctx context.Context) ([]model.Menu, error) {
	var menus []model.Menu
	err := GetDB(ctx, r.db).
		Where("is_active = ?", true).
		Order("sort_order asc, name asc").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *menuRepository) FindActiveChildren(ctx context.Context, parentID uuid.UUID) ([]model.Menu, error) {
	var menus []model.Menu
	err := GetDB(ctx, r.db).
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Preload("Translations").
		Order("sort_order asc, name asc").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *menuRepository) FindActiveTopLevel(ctx context.Context) ([]model.Menu, error) {
	var menus []model.Menu
	err := GetDB(ctx, r.db).
		Where("parent_id IS NULL AND is_active = ?", true).
		Preload("Translations").
		Order("sort_order asc, name asc").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *menuRepository) CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Menu{}).
		Where("parent_id = ?", parentID).
		Count(&count).Error
	return count, err
}

// DeleteTranslations removes every translation row of a menu. Used when the
// menu itself is being deleted so no orphaned rows remain.
func (r *menuRepository) DeleteTranslations(ctx context.Context, menuID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("menu_id = ?", menuID).Delete(&model.MenuTranslation{}).Error
}

// DeletePermissions removes every permission grant referencing a menu.
func (r *menuRepository) DeletePermissions(ctx context.Context, menuID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("menu_id = ?", menuID).Delete(&model.RolePermission{}).Error
}

func (r *menuRepository) FindTranslation(ctx context.Context, menuID uuid.UUID, languageCode string) (*model.MenuTranslation, error) {
	var tr model.MenuTranslation
	err := GetDB(ctx, r.db).
		First(&tr, "menu_id = ? AND language_code = ?", menuID, languageCode).Error
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (r *menuRepository) FindTranslationByID(ctx context.Context, menuID, translationID uuid.UUID) (*model.MenuTranslation, error) {
	var tr model.MenuTranslation
	err := GetDB(ctx, r.db).
		First(&tr, "id = ? AND menu_id = ?", translationID, menuID).Error
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (r *menuRepository) CreateTranslation(ctx context.Context, tr *model.MenuTranslation) error {
	return GetDB(ctx, r.db).Create(tr).Error
}

func (r *menuRepository) UpdateTranslation(ctx context.Context, tr *model.MenuTranslation) error {
	return GetDB(ctx, r.db).Save(tr).Error
}

func (r *menuRepository) DeleteTranslation(ctx context.Context, translationID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", translationID).Delete(&model.MenuTranslation{}).Error
}
