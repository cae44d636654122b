package services

import (
	"errors"

	"delivery-backend/apperr"
	"delivery-backend/authz"
	"delivery-backend/models"
	"delivery-backend/pagination"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderVerifier checks that a cited order belongs to a user and a store.
type OrderVerifier interface {
	VerifyOrderBelongsTo(orderID string, userID uint, storeID string) (bool, error)
}

type ReviewService struct {
	db     *gorm.DB
	log    *zap.Logger
	orders OrderVerifier
}

func NewReviewService(db *gorm.DB, log *zap.Logger, orders OrderVerifier) *ReviewService {
	return &ReviewService{db: db, log: log, orders: orders}
}

type ReviewRequest struct {
	Score    int     `json:"score" binding:"required,min=1,max=5"`
	Contents string  `json:"contents"`
	OrderID  *string `json:"order_id"`
}

type ReviewUpdateRequest struct {
	Score    *int    `json:"score"`
	Contents *string `json:"contents"`
}

// Create writes a review for a store. CUSTOMER only. When an order is cited
// it must belong to the acting user and the reviewed store.
func (s *ReviewService) Create(actor authz.Actor, storeID string, req ReviewRequest) (*models.Review, authz.Decision, error) {
	dec := authz.RequireRole(actor, "리뷰를 작성할 권한이 없습니다.", models.RoleCustomer)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		return nil, dec, notFoundStore(err)
	}

	if req.OrderID != nil {
		ok, err := s.orders.VerifyOrderBelongsTo(*req.OrderID, actor.ID, storeID)
		if err != nil {
			return nil, dec, err
		}
		if !ok {
			return nil, dec, apperr.Validation("주문 정보가 일치하지 않습니다.")
		}
	}

	review := models.Review{
		StoreID:  store.ID,
		UserID:   actor.ID,
		OrderID:  req.OrderID,
		Score:    req.Score,
		Contents: req.Contents,
	}
	review.CreatedBy = actor.Username
	if err := s.db.Create(&review).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	s.log.Info("review created", zap.String("review_id", review.ID), zap.String("store_id", storeID))
	return &review, dec, nil
}

// Get returns one review.
func (s *ReviewService) Get(id string) (*models.Review, error) {
	var review models.Review
	if err := s.db.Preload("User").First(&review, "id = ?", id).Error; err != nil {
		return nil, notFoundReview(err)
	}
	return &review, nil
}

// ListByStore returns a page of a store's reviews.
func (s *ReviewService) ListByStore(storeID string, p pagination.Params) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Where("store_id = ?", storeID)
	reviews, total, err := pagination.List[models.Review](query, p)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return reviews, total, nil
}

// Update merges score/contents. Allowed for the authoring CUSTOMER or MASTER.
func (s *ReviewService) Update(actor authz.Actor, id string, req ReviewUpdateRequest) (*models.Review, authz.Decision, error) {
	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		return nil, authz.Allow(), notFoundReview(err)
	}

	dec := s.canMutate(actor, &review)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	if req.Score != nil {
		review.Score = *req.Score
	}
	if req.Contents != nil {
		review.Contents = *req.Contents
	}
	review.UpdatedBy = actor.Username

	if err := s.db.Save(&review).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	s.log.Info("review updated", zap.String("review_id", id), zap.String("by", actor.Username))
	return &review, dec, nil
}

// Delete soft-deletes a review; the second delete is a conflict.
func (s *ReviewService) Delete(actor authz.Actor, id string) (authz.Decision, error) {
	var review models.Review
	if err := s.db.Unscoped().First(&review, "id = ?", id).Error; err != nil {
		return authz.Allow(), notFoundReview(err)
	}

	dec := s.canMutate(actor, &review)
	if !dec.Allowed() {
		return dec, nil
	}
	if review.Deleted() {
		return dec, apperr.Conflict("이미 삭제된 리뷰입니다.")
	}

	if err := s.db.Model(&review).Updates(models.SoftDeleteValues(actor.Username)).Error; err != nil {
		return dec, apperr.Internal(err)
	}
	s.log.Info("review deleted", zap.String("review_id", id), zap.String("by", actor.Username))
	return dec, nil
}

// canMutate allows the authoring customer or MASTER.
func (s *ReviewService) canMutate(actor authz.Actor, review *models.Review) authz.Decision {
	if actor.Role == models.RoleMaster {
		return authz.Allow()
	}
	if actor.Role == models.RoleCustomer && actor.ID == review.UserID {
		return authz.Allow()
	}
	return authz.Deny("계정 정보가 다릅니다.")
}

func notFoundReview(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("해당되는 리뷰가 없습니다.")
	}
	return apperr.Internal(err)
}
