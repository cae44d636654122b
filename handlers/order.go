package handlers

import (
	"strconv"

	"delivery-backend/middleware"
	"delivery-backend/pagination"
	"delivery-backend/response"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders   *services.OrderService
	payments *services.PaymentService
}

func NewOrderHandler(orders *services.OrderService, payments *services.PaymentService) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

// Create places an order for the authenticated caller.
func (h *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, err := h.orders.Create(middleware.GetActor(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "주문이 생성되었습니다.", order)
}

// Update partially updates an order (MANAGER/MASTER).
func (h *OrderHandler) Update(c *gin.Context) {
	var req services.OrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, dec, err := h.orders.Update(middleware.GetActor(c), c.Param("id"), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "주문이 수정되었습니다.", order)
}

// Delete soft-deletes an order (MANAGER/MASTER).
func (h *OrderHandler) Delete(c *gin.Context) {
	dec, err := h.orders.Delete(middleware.GetActor(c), c.Param("id"))
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "주문이 삭제되었습니다.", gin.H{"id": c.Param("id")})
}

// Get returns one order with its line items.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "주문 조회 성공", order)
}

// List returns a page of orders filtered by userId and orderType.
func (h *OrderHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	var filter services.OrderFilter
	if v := c.Query("userId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			uid := uint(id)
			filter.UserID = &uid
		}
	}
	filter.OrderType = c.Query("orderType")

	orders, total, err := h.orders.List(p, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "주문 목록 조회 성공", paged(orders, p, total))
}

// Payment returns the payment attached to an order.
func (h *OrderHandler) Payment(c *gin.Context) {
	payment, err := h.payments.GetByOrder(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "결제 조회 성공", payment)
}
