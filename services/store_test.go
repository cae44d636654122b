package services

import (
	"testing"

	"delivery-backend/apperr"
	"delivery-backend/models"
	"delivery-backend/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreate_RoleGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db, newTestLogger())
	customer := createUser(t, db, "customer1", models.RoleCustomer)

	_, dec, err := svc.Create(actorFor(customer), StoreRequest{Name: "가게", Address: "주소"})
	assert.False(t, dec.Allowed())
	assert.NoError(t, err)

	var count int64
	db.Model(&models.Store{}).Count(&count)
	assert.Zero(t, count)
}

func TestStoreCreate_UnknownCategoryAbortsAll(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	known := createCategory(t, db, "한식")

	_, dec, err := svc.Create(actorFor(owner), StoreRequest{
		Name:        "가게",
		Address:     "주소",
		OpenStatus:  true,
		CategoryIDs: []string{known.ID, "b8a7e5a0-0000-0000-0000-000000000000"},
	})
	require.True(t, dec.Allowed())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// all-or-nothing: neither the store nor any join row may survive
	var stores, joins int64
	db.Model(&models.Store{}).Count(&stores)
	db.Model(&models.StoreCategory{}).Count(&joins)
	assert.Zero(t, stores)
	assert.Zero(t, joins)
}

func TestStoreCreate_AttachesCategories(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	korean := createCategory(t, db, "한식")
	chinese := createCategory(t, db, "중식")

	store, dec, err := svc.Create(actorFor(owner), StoreRequest{
		Name:        "가게",
		Address:     "주소",
		OpenStatus:  true,
		CategoryIDs: []string{korean.ID, chinese.ID},
	})
	require.True(t, dec.Allowed())
	require.NoError(t, err)

	got, err := svc.Get(store.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{korean.ID, chinese.ID}, got.CategoryIDs())
}

func TestStoreUpdate_CategoryDiff(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	korean := createCategory(t, db, "한식")
	chinese := createCategory(t, db, "중식")
	japanese := createCategory(t, db, "일식")

	store, dec, err := svc.Create(actorFor(owner), StoreRequest{
		Name:        "가게",
		Address:     "주소",
		OpenStatus:  true,
		CategoryIDs: []string{korean.ID, chinese.ID},
	})
	require.True(t, dec.Allowed())
	require.NoError(t, err)

	// remember the join-row identity of the kept category
	var keptBefore models.StoreCategory
	require.NoError(t, db.First(&keptBefore, "store_id = ? AND category_id = ?", store.ID, korean.ID).Error)

	// E = {korean, chinese}, N = {korean, japanese}
	newSet := []string{korean.ID, japanese.ID}
	_, dec, err = svc.Update(actorFor(owner), store.ID, StoreUpdateRequest{CategoryIDs: &newSet})
	require.True(t, dec.Allowed())
	require.NoError(t, err)

	var active []models.StoreCategory
	require.NoError(t, db.Where("store_id = ?", store.ID).Find(&active).Error)
	gotIDs := make([]string, 0, len(active))
	for _, sc := range active {
		gotIDs = append(gotIDs, sc.CategoryID)
	}
	assert.ElementsMatch(t, newSet, gotIDs, "category set must equal exactly N")

	// the kept join row is the same row, not a delete-then-reinsert
	var keptAfter models.StoreCategory
	require.NoError(t, db.First(&keptAfter, "store_id = ? AND category_id = ?", store.ID, korean.ID).Error)
	assert.Equal(t, keptBefore.ID, keptAfter.ID)
	assert.Equal(t, keptBefore.CreatedAt, keptAfter.CreatedAt)

	// the removed join row is soft-deleted, not physically removed
	var removed models.StoreCategory
	require.NoError(t, db.Unscoped().First(&removed, "store_id = ? AND category_id = ?", store.ID, chinese.ID).Error)
	assert.True(t, removed.Deleted())
}

func TestStoreUpdate_PartialMergeKeepsCategoriesWhenNil(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	korean := createCategory(t, db, "한식")

	store, _, err := svc.Create(actorFor(owner), StoreRequest{
		Name:        "옛 이름",
		Address:     "주소",
		OpenStatus:  true,
		CategoryIDs: []string{korean.ID},
	})
	require.NoError(t, err)

	name := "새 이름"
	updated, dec, err := svc.Update(actorFor(owner), store.ID, StoreUpdateRequest{Name: &name})
	require.True(t, dec.Allowed())
	require.NoError(t, err)
	assert.Equal(t, "새 이름", updated.Name)

	got, err := svc.Get(store.ID)
	require.NoError(t, err)
	assert.Len(t, got.StoreCategories, 1, "nil category set leaves joins untouched")
}

func TestStoreDelete_SecondDeleteConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)

	dec, err := svc.Delete(actorFor(owner), store.ID)
	require.True(t, dec.Allowed())
	require.NoError(t, err)

	_, err = svc.Delete(actorFor(owner), store.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestStoreSearch_ByNameAndCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	korean := createCategory(t, db, "한식")
	snack := createCategory(t, db, "분식")

	first, _, err := svc.Create(actorFor(owner), StoreRequest{
		Name: "김밥천국", Address: "주소", OpenStatus: true,
		CategoryIDs: []string{korean.ID, snack.ID},
	})
	require.NoError(t, err)
	_, _, err = svc.Create(actorFor(owner), StoreRequest{
		Name: "피자집", Address: "주소", OpenStatus: true,
	})
	require.NoError(t, err)

	p := pagination.Params{Size: 10, Sort: "createdAt"}

	stores, total, err := svc.Search("김밥", "", p)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, first.ID, stores[0].ID)

	// a store tagged with several categories still matches exactly once
	stores, total, err = svc.Search("", "한식", p)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, stores, 1)
	assert.Equal(t, first.ID, stores[0].ID)

	_, total, err = svc.Search("피자", "한식", p)
	require.NoError(t, err)
	assert.Zero(t, total)
}
