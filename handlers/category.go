package handlers

import (
	"delivery-backend/middleware"
	"delivery-backend/pagination"
	"delivery-backend/response"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category, dec, err := h.categories.Create(middleware.GetActor(c), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "카테고리가 생성되었습니다.", category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category, dec, err := h.categories.Update(middleware.GetActor(c), c.Param("id"), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "카테고리가 수정되었습니다.", category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	categories, total, err := h.categories.List(p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "카테고리 목록 조회 성공", paged(categories, p, total))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	dec, err := h.categories.Delete(middleware.GetActor(c), c.Param("id"))
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "카테고리가 삭제되었습니다.", gin.H{"id": c.Param("id")})
}
