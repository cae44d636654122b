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

type OrderService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewOrderService(db *gorm.DB, log *zap.Logger) *OrderService {
	return &OrderService{db: db, log: log}
}

type OrderLine struct {
	MenuID   string `json:"menu_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	StoreID     string      `json:"store_id" binding:"required"`
	Address     string      `json:"address" binding:"required"`
	OrderType   string      `json:"order_type"`
	OrderStatus string      `json:"order_status"`
	TotalPrice  *int64      `json:"total_price"` // optional cross-check against the server-side sum
	CardNumber  string      `json:"card_number"` // creates the payment row when present
	Lines       []OrderLine `json:"lines" binding:"required,min=1"`
}

type OrderUpdateRequest struct {
	Address    *string `json:"address"`
	OrderType  *string `json:"order_type"`
	TotalPrice *int64  `json:"total_price"`
	UserID     *uint   `json:"user_id"`
}

type OrderFilter struct {
	UserID    *uint
	OrderType string
}

// Create places an order for the acting user. The placer id comes from the
// authenticated claims, never from the request body. Total price is
// recomputed from persisted menu prices; a client-supplied total that
// disagrees with the recomputed sum is rejected.
func (s *OrderService) Create(actor authz.Actor, req CreateOrderRequest) (*models.Order, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", req.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("존재하지 않는 가게 입니다.")
		}
		return nil, apperr.Internal(err)
	}
	if !store.OpenStatus {
		return nil, apperr.Validation("영업중인 가게가 아닙니다.")
	}

	var lines []models.MenuOrder
	var total int64
	for _, l := range req.Lines {
		var menu models.Menu
		if err := s.db.First(&menu, "id = ?", l.MenuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("존재하지 않는 메뉴 입니다.")
			}
			return nil, apperr.Internal(err)
		}
		if menu.StoreID != store.ID {
			return nil, apperr.Validation("해당 가게의 메뉴가 아닙니다.")
		}
		if !menu.PublicStatus {
			return nil, apperr.Validation("판매중인 메뉴가 아닙니다.")
		}
		total += menu.Price * int64(l.Quantity)
		line := models.MenuOrder{MenuID: menu.ID, Quantity: l.Quantity, Price: menu.Price}
		line.CreatedBy = actor.Username
		lines = append(lines, line)
	}
	if req.TotalPrice != nil && *req.TotalPrice != total {
		return nil, apperr.Validation("주문 금액이 일치하지 않습니다.")
	}

	status := req.OrderStatus
	if status == "" {
		status = "CREATED"
	}

	order := models.Order{
		UserID:      actor.ID,
		Address:     req.Address,
		OrderType:   req.OrderType,
		OrderStatus: status,
		TotalPrice:  total,
		MenuOrders:  lines,
	}
	order.CreatedBy = actor.Username

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if req.CardNumber != "" {
			payment := models.Payment{
				OrderID:    order.ID,
				CardNumber: models.MaskCard(req.CardNumber),
				Success:    true,
			}
			payment.CreatedBy = actor.Username
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			order.Payment = &payment
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.Uint("user_id", actor.ID),
		zap.Int64("total_price", total),
	)
	return &order, nil
}

// Update partially merges an order: only non-nil request fields overwrite the
// entity. MANAGER/MASTER only.
func (s *OrderService) Update(actor authz.Actor, id string, req OrderUpdateRequest) (*models.Order, authz.Decision, error) {
	dec := authz.RequireRole(actor, "주문을 수정할 권한이 없습니다.", models.RoleManager, models.RoleMaster)
	if !dec.Allowed() {
		return nil, dec, nil
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		return nil, dec, notFoundOrder(err)
	}

	if req.Address != nil {
		order.Address = *req.Address
	}
	if req.OrderType != nil {
		order.OrderType = *req.OrderType
	}
	if req.TotalPrice != nil {
		order.TotalPrice = *req.TotalPrice
	}
	if req.UserID != nil {
		order.UserID = *req.UserID
	}
	order.UpdatedBy = actor.Username

	if err := s.db.Save(&order).Error; err != nil {
		return nil, dec, apperr.Internal(err)
	}
	s.log.Info("order updated", zap.String("order_id", id), zap.String("by", actor.Username))
	return &order, dec, nil
}

// Delete soft-deletes an order. The deletion timestamp is written exactly
// once; a second delete is a conflict.
func (s *OrderService) Delete(actor authz.Actor, id string) (authz.Decision, error) {
	dec := authz.RequireRole(actor, "주문을 삭제할 권한이 없습니다.", models.RoleManager, models.RoleMaster)
	if !dec.Allowed() {
		return dec, nil
	}

	var order models.Order
	if err := s.db.Unscoped().First(&order, "id = ?", id).Error; err != nil {
		return dec, notFoundOrder(err)
	}
	if order.Deleted() {
		return dec, apperr.Conflict("이미 삭제된 주문입니다.")
	}

	if err := s.db.Model(&order).Updates(models.SoftDeleteValues(actor.Username)).Error; err != nil {
		return dec, apperr.Internal(err)
	}
	s.log.Info("order deleted", zap.String("order_id", id), zap.String("by", actor.Username))
	return dec, nil
}

// Get returns an order with its line items and payment. Authentication only;
// no role restriction.
func (s *OrderService) Get(id string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("MenuOrders").Preload("Payment").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOrder(err)
	}
	return &order, nil
}

// List returns a page of orders, optionally filtered by owning user and
// order type.
func (s *OrderService) List(p pagination.Params, filter OrderFilter) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.OrderType != "" {
		query = query.Where("order_type = ?", filter.OrderType)
	}
	orders, total, err := pagination.List[models.Order](query, p)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return orders, total, nil
}

// VerifyOrderBelongsTo reports whether the order was placed by the given user
// and contains at least one line item from the given store. Consumed by the
// review service before accepting an order reference.
func (s *OrderService) VerifyOrderBelongsTo(orderID string, userID uint, storeID string) (bool, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperr.Internal(err)
	}
	if order.UserID != userID {
		return false, nil
	}

	var count int64
	err := s.db.Model(&models.MenuOrder{}).
		Joins("JOIN menus ON menus.id = menu_orders.menu_id").
		Where("menu_orders.order_id = ? AND menus.store_id = ?", orderID, storeID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

func notFoundOrder(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("존재하지 않는 주문입니다.")
	}
	return apperr.Internal(err)
}
