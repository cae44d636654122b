package handlers

import (
	"delivery-backend/middleware"
	"delivery-backend/pagination"
	"delivery-backend/response"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	stores *services.StoreService
}

func NewStoreHandler(stores *services.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

func (h *StoreHandler) Create(c *gin.Context) {
	var req services.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	store, dec, err := h.stores.Create(middleware.GetActor(c), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "가게가 등록되었습니다.", store)
}

func (h *StoreHandler) Update(c *gin.Context) {
	var req services.StoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	store, dec, err := h.stores.Update(middleware.GetActor(c), c.Param("id"), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "가게가 수정되었습니다.", store)
}

func (h *StoreHandler) Delete(c *gin.Context) {
	dec, err := h.stores.Delete(middleware.GetActor(c), c.Param("id"))
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "가게가 삭제되었습니다.", gin.H{"id": c.Param("id")})
}

func (h *StoreHandler) Get(c *gin.Context) {
	store, err := h.stores.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "가게 조회 성공", store)
}

func (h *StoreHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	stores, total, err := h.stores.GetAll(p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "가게 목록 조회 성공", paged(stores, p, total))
}

// Search filters stores by name substring and/or category name.
func (h *StoreHandler) Search(c *gin.Context) {
	p := pagination.Parse(c)
	stores, total, err := h.stores.Search(c.Query("name"), c.Query("category"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "가게 검색 성공", paged(stores, p, total))
}
