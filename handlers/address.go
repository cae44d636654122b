package handlers

import (
	"delivery-backend/middleware"
	"delivery-backend/response"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	addresses *services.AddressService
}

func NewAddressHandler(addresses *services.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req services.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	address, dec, err := h.addresses.Create(middleware.GetActor(c), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "배송지가 생성되었습니다.", address)
}

func (h *AddressHandler) List(c *gin.Context) {
	addresses, dec, err := h.addresses.List(middleware.GetActor(c))
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "배송지 목록 조회 성공", addresses)
}

func (h *AddressHandler) Get(c *gin.Context) {
	address, dec, err := h.addresses.Get(middleware.GetActor(c), c.Param("id"))
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "배송지 조회 성공", address)
}

func (h *AddressHandler) Update(c *gin.Context) {
	var req services.AddressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	address, dec, err := h.addresses.Update(middleware.GetActor(c), c.Param("id"), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "배송지가 수정되었습니다.", address)
}

func (h *AddressHandler) Delete(c *gin.Context) {
	dec, err := h.addresses.Delete(middleware.GetActor(c), c.Param("id"))
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "배송지가 삭제되었습니다.", gin.H{"id": c.Param("id")})
}
