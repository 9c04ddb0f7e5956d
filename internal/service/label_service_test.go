package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLabelService(db *gorm.DB) LabelService {
	return NewLabelService(db, NewAuditService(db))
}

func TestLabelCreate_DuplicateKey(t *testing.T) {
	db := newTestDB(t)
	svc := newLabelService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateLabelRequest{Key: "common.save", DefaultValue: "Save"}, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateLabelRequest{Key: "common.save", DefaultValue: "Store"}, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLabelFindByLanguage_FallbackToDefault(t *testing.T) {
	db := newTestDB(t)
	svc := newLabelService(db)
	ctx := context.Background()

	save, err := svc.Create(ctx, CreateLabelRequest{Key: "common.save", DefaultValue: "Save"}, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateLabelRequest{Key: "common.cancel", DefaultValue: "Cancel"}, "")
	require.NoError(t, err)

	_, err = svc.AddTranslation(ctx, save.ID.String(), LabelTranslationRequest{
		LanguageCode: "th",
		Value:        "บันทึก",
	})
	require.NoError(t, err)

	// Translated key resolves to the th value, untranslated falls back.
	labels, err := svc.FindByLanguage(ctx, "th")
	require.NoError(t, err)
	assert.Equal(t, "บันทึก", labels["common.save"])
	assert.Equal(t, "Cancel", labels["common.cancel"])

	// A language with no rows at all returns pure defaults.
	labels, err = svc.FindByLanguage(ctx, "de")
	require.NoError(t, err)
	assert.Equal(t, "Save", labels["common.save"])
}

func TestLabelFindByLanguage_SkipsInactive(t *testing.T) {
	db := newTestDB(t)
	svc := newLabelService(db)
	ctx := context.Background()

	label, err := svc.Create(ctx, CreateLabelRequest{Key: "common.delete", DefaultValue: "Delete"}, "")
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, label.ID.String(), UpdateLabelRequest{IsActive: &inactive}, "")
	require.NoError(t, err)

	labels, err := svc.FindByLanguage(ctx, "en")
	require.NoError(t, err)
	assert.NotContains(t, labels, "common.delete")
}

func TestLabelAddTranslation_OnePerLanguage(t *testing.T) {
	db := newTestDB(t)
	svc := newLabelService(db)
	ctx := context.Background()

	label, err := svc.Create(ctx, CreateLabelRequest{Key: "common.edit", DefaultValue: "Edit"}, "")
	require.NoError(t, err)

	_, err = svc.AddTranslation(ctx, label.ID.String(), LabelTranslationRequest{LanguageCode: "th", Value: "แก้ไข"})
	require.NoError(t, err)

	_, err = svc.AddTranslation(ctx, label.ID.String(), LabelTranslationRequest{LanguageCode: "th", Value: "ปรับปรุง"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLabelUpdateTranslation_LanguageCollision(t *testing.T) {
	db := newTestDB(t)
	svc := newLabelService(db)
	ctx := context.Background()

	label, err := svc.Create(ctx, CreateLabelRequest{Key: "common.close", DefaultValue: "Close"}, "")
	require.NoError(t, err)

	_, err = svc.AddTranslation(ctx, label.ID.String(), LabelTranslationRequest{LanguageCode: "th", Value: "ปิด"})
	require.NoError(t, err)
	de, err := svc.AddTranslation(ctx, label.ID.String(), LabelTranslationRequest{LanguageCode: "de", Value: "Schließen"})
	require.NoError(t, err)

	// Moving the de row onto th collides with the existing th row.
	_, err = svc.UpdateTranslation(ctx, label.ID.String(), de.ID.String(), LabelTranslationRequest{LanguageCode: "th", Value: "ปิด"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// Updating its value in place is fine.
	updated, err := svc.UpdateTranslation(ctx, label.ID.String(), de.ID.String(), LabelTranslationRequest{LanguageCode: "de", Value: "Zumachen"})
	require.NoError(t, err)
	assert.Equal(t, "Zumachen", updated.Value)
}

func TestLabelRemove_CascadesTranslations(t *testing.T) {
	db := newTestDB(t)
	svc := newLabelService(db)
	ctx := context.Background()

	label, err := svc.Create(ctx, CreateLabelRequest{Key: "common.search", DefaultValue: "Search"}, "")
	require.NoError(t, err)
	_, err = svc.AddTranslation(ctx, label.ID.String(), LabelTranslationRequest{LanguageCode: "th", Value: "ค้นหา"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, label.ID.String(), ""))

	_, err = svc.FindOne(ctx, label.ID.String())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	var orphans int64
	require.NoError(t, db.Model(&model.LabelTranslation{}).Where("label_id = ?", label.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)
}
