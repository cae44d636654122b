package services

import (
	"testing"

	"delivery-backend/apperr"
	"delivery-backend/models"
	"delivery-backend/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCreate_CustomerDenied(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	customer := createUser(t, db, "customer1", models.RoleCustomer)
	store := createStore(t, db, owner)

	_, dec, err := svc.Create(actorFor(customer), CreateMenuRequest{
		StoreID: store.ID,
		Name:    "탕수육",
		Price:   18000,
	})
	assert.False(t, dec.Allowed())
	assert.NoError(t, err)

	var count int64
	db.Model(&models.Menu{}).Count(&count)
	assert.Zero(t, count, "no row may be created on a denied call")
}

func TestMenuCreate_UnknownStore(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, newTestLogger())
	owner := createUser(t, db, "owner1", models.RoleOwner)

	_, dec, err := svc.Create(actorFor(owner), CreateMenuRequest{
		StoreID: "3f0fdbcb-9d9e-4b4e-b3fb-2f0a2d2f5a10",
		Name:    "짜장면",
		Price:   7000,
	})
	require.True(t, dec.Allowed())
	require.Error(t, err)
	assert.Equal(t, "존재하지 않는 가게 입니다.", apperr.Message(err))

	var count int64
	db.Model(&models.Menu{}).Count(&count)
	assert.Zero(t, count)
}

func TestMenuCreate_DefaultsPublic(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)

	menu, dec, err := svc.Create(actorFor(owner), CreateMenuRequest{
		StoreID: store.ID,
		Name:    "짬뽕",
		Price:   8000,
	})
	require.True(t, dec.Allowed())
	require.NoError(t, err)
	assert.True(t, menu.PublicStatus)
}

func TestMenuUpdate_RoleGateAndMerge(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	customer := createUser(t, db, "customer1", models.RoleCustomer)
	store := createStore(t, db, owner)
	menu := createMenu(t, db, store, "볶음밥", 7000)

	newPrice := int64(7500)
	_, dec, err := svc.Update(actorFor(customer), menu.ID, MenuUpdateRequest{Price: &newPrice})
	assert.False(t, dec.Allowed())
	assert.NoError(t, err)

	updated, dec, err := svc.Update(actorFor(owner), menu.ID, MenuUpdateRequest{Price: &newPrice})
	require.True(t, dec.Allowed())
	require.NoError(t, err)
	assert.Equal(t, int64(7500), updated.Price)
	assert.Equal(t, "볶음밥", updated.Name, "absent fields stay untouched")
}

func TestMenuDelete_SoftHidesAndConflictsOnSecond(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)
	menu := createMenu(t, db, store, "짬뽕밥", 9000)

	dec, err := svc.Delete(actorFor(owner), menu.ID)
	require.True(t, dec.Allowed())
	require.NoError(t, err)

	var raw models.Menu
	require.NoError(t, db.Unscoped().First(&raw, "id = ?", menu.ID).Error)
	assert.True(t, raw.Deleted())
	assert.False(t, raw.PublicStatus, "delete also flips publicStatus off")

	_, err = svc.Delete(actorFor(owner), menu.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestMenuSearch_Permutations(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	storeA := createStore(t, db, owner)
	storeB := createStore(t, db, owner)
	createMenu(t, db, storeA, "A", 1000)
	createMenu(t, db, storeA, "B", 2000)
	createMenu(t, db, storeB, "AB", 3000)

	p := pagination.Params{Size: 10, Sort: "createdAt"}

	// absent / absent: all active menus
	menus, total, err := svc.Search("", "", p)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, menus, 3)

	// absent / present: name-contains across all stores
	_, total, err = svc.Search("", "A", p)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// present / absent: all menus of that store
	menus, total, err = svc.Search(storeA.ID, "", p)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	names := []string{menus[0].Name, menus[1].Name}
	assert.ElementsMatch(t, []string{"A", "B"}, names)

	// present / present: name-contains scoped to the store
	menus, total, err = svc.Search(storeA.ID, "A", p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "A", menus[0].Name)
}

func TestMenuSearch_ExcludesHiddenMenus(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)
	createMenu(t, db, store, "공개", 1000)
	hidden := createMenu(t, db, store, "비공개", 2000)
	require.NoError(t, db.Model(hidden).Update("public_status", false).Error)

	_, total, err := svc.Search(store.ID, "", pagination.Params{Size: 10, Sort: "createdAt"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
