package services

import (
	"errors"

	"delivery-backend/apperr"
	"delivery-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService exposes the read-only payment path. Payments are created
// alongside orders (see OrderService.Create) and never updated or deleted.
type PaymentService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPaymentService(db *gorm.DB, log *zap.Logger) *PaymentService {
	return &PaymentService{db: db, log: log}
}

// GetByOrder returns the payment attached to an order.
func (s *PaymentService) GetByOrder(orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("결제 정보가 없습니다.")
		}
		return nil, apperr.Internal(err)
	}
	return &payment, nil
}
