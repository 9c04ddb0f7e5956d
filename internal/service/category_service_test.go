package service

import (
	"context"
	"testing"

	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryService(db *gorm.DB) CategoryService {
	return NewCategoryService(db, NewAuditService(db))
}

func TestCategoryFindAll_LocalizedFieldFallback(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(db)
	ctx := context.Background()

	cat, err := svc.Create(ctx, CreateCategoryRequest{
		Name:        "News",
		Slug:        "news",
		Description: "Latest news",
	}, "")
	require.NoError(t, err)

	// th row translates the name but leaves the description unset.
	_, err = svc.AddTranslation(ctx, cat.ID, CategoryTranslationRequest{
		LanguageCode: "th",
		Name:         "ข่าว",
	})
	require.NoError(t, err)

	localized, err := svc.FindOne(ctx, cat.ID, "th")
	require.NoError(t, err)
	assert.Equal(t, "ข่าว", localized.Name)
	// Description falls back per field, not per row.
	assert.Equal(t, "Latest news", localized.Description)
}

func TestCategoryRemove_BlockedByActiveChildren(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(db)
	ctx := context.Background()

	parent, err := svc.Create(ctx, CreateCategoryRequest{Name: "News", Slug: "news"}, "")
	require.NoError(t, err)
	child, err := svc.Create(ctx, CreateCategoryRequest{Name: "Local", Slug: "local", ParentID: &parent.ID}, "")
	require.NoError(t, err)

	err = svc.Remove(ctx, parent.ID, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	require.NoError(t, svc.Remove(ctx, child.ID, ""))
	require.NoError(t, svc.Remove(ctx, parent.ID, ""))

	// Deactivated categories disappear from lookup.
	_, err = svc.FindOne(ctx, parent.ID, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCategoryAddTranslation_OnePerLanguage(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(db)
	ctx := context.Background()

	cat, err := svc.Create(ctx, CreateCategoryRequest{Name: "News", Slug: "news"}, "")
	require.NoError(t, err)

	_, err = svc.AddTranslation(ctx, cat.ID, CategoryTranslationRequest{LanguageCode: "th", Name: "ข่าว"})
	require.NoError(t, err)

	_, err = svc.AddTranslation(ctx, cat.ID, CategoryTranslationRequest{LanguageCode: "th", Name: "ข่าวสาร"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestCategoryCreate_DuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryRequest{Name: "News", Slug: "news"}, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCategoryRequest{Name: "Other", Slug: "news"}, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}
