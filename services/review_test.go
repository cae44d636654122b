package services

import (
	"testing"

	"delivery-backend/apperr"
	"delivery-backend/models"
	"delivery-backend/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderVerifier struct {
	ok bool
}

func (v stubOrderVerifier) VerifyOrderBelongsTo(orderID string, userID uint, storeID string) (bool, error) {
	return v.ok, nil
}

func TestReviewCreate_CustomerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, newTestLogger(), stubOrderVerifier{ok: true})

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)

	_, dec, err := svc.Create(actorFor(owner), store.ID, ReviewRequest{Score: 5})
	assert.False(t, dec.Allowed())
	assert.Equal(t, "리뷰를 작성할 권한이 없습니다.", dec.Reason())
	assert.NoError(t, err)

	customer := createUser(t, db, "customer1", models.RoleCustomer)
	review, dec, err := svc.Create(actorFor(customer), store.ID, ReviewRequest{Score: 4, Contents: "맛있어요"})
	require.True(t, dec.Allowed())
	require.NoError(t, err)
	assert.Equal(t, customer.ID, review.UserID)
	assert.Equal(t, store.ID, review.StoreID)
}

func TestReviewCreate_OrderLinkageChecked(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, newTestLogger(), stubOrderVerifier{ok: false})

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)
	customer := createUser(t, db, "customer1", models.RoleCustomer)

	orderID := "some-order"
	_, _, err := svc.Create(actorFor(customer), store.ID, ReviewRequest{Score: 3, OrderID: &orderID})
	require.Error(t, err)
	assert.Equal(t, "주문 정보가 일치하지 않습니다.", apperr.Message(err))

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Zero(t, count)
}

func TestReviewCreate_UnknownStore(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, newTestLogger(), stubOrderVerifier{ok: true})

	customer := createUser(t, db, "customer1", models.RoleCustomer)
	_, _, err := svc.Create(actorFor(customer), "no-such-store", ReviewRequest{Score: 5})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestReviewUpdate_AuthorOrMaster(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, newTestLogger(), stubOrderVerifier{ok: true})

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)
	author := createUser(t, db, "customer1", models.RoleCustomer)
	other := createUser(t, db, "customer2", models.RoleCustomer)
	master := createUser(t, db, "master1", models.RoleMaster)

	review, _, err := svc.Create(actorFor(author), store.ID, ReviewRequest{Score: 2, Contents: "별로"})
	require.NoError(t, err)

	score := 1
	_, dec, err := svc.Update(actorFor(other), review.ID, ReviewUpdateRequest{Score: &score})
	assert.False(t, dec.Allowed())
	assert.Equal(t, "계정 정보가 다릅니다.", dec.Reason())
	assert.NoError(t, err)

	contents := "수정된 리뷰"
	updated, dec, err := svc.Update(actorFor(author), review.ID, ReviewUpdateRequest{Contents: &contents})
	require.True(t, dec.Allowed())
	require.NoError(t, err)
	assert.Equal(t, "수정된 리뷰", updated.Contents)
	assert.Equal(t, 2, updated.Score, "unset fields stay untouched")

	updated, dec, err = svc.Update(actorFor(master), review.ID, ReviewUpdateRequest{Score: &score})
	require.True(t, dec.Allowed())
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Score)
}

func TestReviewDelete_SoftAndSecondConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, newTestLogger(), stubOrderVerifier{ok: true})

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)
	author := createUser(t, db, "customer1", models.RoleCustomer)
	master := createUser(t, db, "master1", models.RoleMaster)

	review, _, err := svc.Create(actorFor(author), store.ID, ReviewRequest{Score: 5})
	require.NoError(t, err)

	dec, err := svc.Delete(actorFor(author), review.ID)
	require.True(t, dec.Allowed())
	require.NoError(t, err)

	var raw models.Review
	require.NoError(t, db.Unscoped().First(&raw, "id = ?", review.ID).Error)
	assert.True(t, raw.Deleted())
	assert.Equal(t, "customer1", raw.DeletedBy)

	_, err = svc.Get(review.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	dec, err = svc.Delete(actorFor(master), review.ID)
	require.True(t, dec.Allowed())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "이미 삭제된 리뷰입니다.", apperr.Message(err))
}

func TestReviewListByStore(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, newTestLogger(), stubOrderVerifier{ok: true})

	owner := createUser(t, db, "owner1", models.RoleOwner)
	storeA := createStore(t, db, owner)
	storeB := createStore(t, db, owner)
	author := createUser(t, db, "customer1", models.RoleCustomer)

	for i := 0; i < 3; i++ {
		_, _, err := svc.Create(actorFor(author), storeA.ID, ReviewRequest{Score: i + 1})
		require.NoError(t, err)
	}
	_, _, err := svc.Create(actorFor(author), storeB.ID, ReviewRequest{Score: 5})
	require.NoError(t, err)

	reviews, total, err := svc.ListByStore(storeA.ID, pagination.Params{Size: 2, Sort: "createdAt"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, reviews, 2)
}
