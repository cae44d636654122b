package handlers

import (
	"delivery-backend/middleware"
	"delivery-backend/pagination"
	"delivery-backend/response"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create posts a review on a store (CUSTOMER only).
func (h *ReviewHandler) Create(c *gin.Context) {
	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	review, dec, err := h.reviews.Create(middleware.GetActor(c), c.Param("id"), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "리뷰가 등록되었습니다.", review)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	review, err := h.reviews.Get(c.Param("reviewId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "리뷰 조회 성공", review)
}

// ListByStore returns a page of a store's reviews.
func (h *ReviewHandler) ListByStore(c *gin.Context) {
	p := pagination.Parse(c)
	reviews, total, err := h.reviews.ListByStore(c.Param("id"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "리뷰 목록 조회 성공", paged(reviews, p, total))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var req services.ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	review, dec, err := h.reviews.Update(middleware.GetActor(c), c.Param("reviewId"), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "리뷰가 수정되었습니다.", review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	dec, err := h.reviews.Delete(middleware.GetActor(c), c.Param("reviewId"))
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "리뷰가 삭제되었습니다.", gin.H{"id": c.Param("reviewId")})
}
