package handlers

import (
	"strconv"

	"delivery-backend/middleware"
	"delivery-backend/pagination"
	"delivery-backend/response"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// SignUp registers a new account.
func (h *UserHandler) SignUp(c *gin.Context) {
	var req services.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.SignUp(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "회원가입이 완료되었습니다.", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

// SignIn authenticates and returns a bearer token.
func (h *UserHandler) SignIn(c *gin.Context) {
	var req services.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.users.SignIn(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "로그인 성공", gin.H{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	user, dec, err := h.users.Get(middleware.GetActor(c), id)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "회원 조회 성공", user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var req services.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, dec, err := h.users.Update(middleware.GetActor(c), id, req)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "회원 정보가 수정되었습니다.", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	dec, err := h.users.Delete(middleware.GetActor(c), id)
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "회원 탈퇴가 완료되었습니다.", gin.H{"id": id})
}

// Search lists users for administrators.
func (h *UserHandler) Search(c *gin.Context) {
	p := pagination.Parse(c)
	users, total, dec, err := h.users.Search(middleware.GetActor(c), p, c.Query("username"))
	if !dec.Allowed() {
		response.Forbidden(c, dec.Reason())
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "회원 검색 성공", paged(users, p, total))
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return 0, false
	}
	return uint(id), true
}
