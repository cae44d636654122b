package handlers

import (
	"delivery-backend/middleware"
	"delivery-backend/pagination"
	"delivery-backend/response"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menus *services.MenuService
}

func NewMenuHandler(menus *services.MenuService) *MenuHandler {
	return &MenuHandler{menus: menus}
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req services.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	menu, dec, err := h.menus.Create(middleware.GetActor(c), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "메뉴가 생성되었습니다.", menu)
}

func (h *MenuHandler) Update(c *gin.Context) {
	var req services.MenuUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	menu, dec, err := h.menus.Update(middleware.GetActor(c), c.Param("menuId"), req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "메뉴가 수정되었습니다.", menu)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	dec, err := h.menus.Delete(middleware.GetActor(c), c.Param("menuId"))
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "메뉴가 삭제되었습니다.", gin.H{"id": c.Param("menuId")})
}

func (h *MenuHandler) Get(c *gin.Context) {
	menu, err := h.menus.Get(c.Param("menuId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "메뉴 조회 성공", menu)
}

// List returns all active public menus, paged.
func (h *MenuHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	menus, total, err := h.menus.Search("", "", p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "메뉴 목록 조회 성공", paged(menus, p, total))
}

// Search filters menus by optional storeId and keyword.
func (h *MenuHandler) Search(c *gin.Context) {
	p := pagination.Parse(c)
	menus, total, err := h.menus.Search(c.Query("storeId"), c.Query("keyword"), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "메뉴 검색 성공", paged(menus, p, total))
}
