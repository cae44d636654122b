// Package response renders the uniform API envelope:
//
//	success: { status: 200|201, message, data, error: null }
//	failure: { status: 4xx|5xx, message, data: null, error }
package response

import (
	"net/http"

	"delivery-backend/apperr"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Error   interface{} `json:"error"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: http.StatusOK, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Status: http.StatusCreated, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Status: status, Message: message, Error: message})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden renders an authorization denial. Denials arrive as data (an
// authz.Decision reason), never as errors.
func Forbidden(c *gin.Context, reason string) {
	Fail(c, http.StatusForbidden, reason)
}

// Error renders a typed service error via the apperr status mapping.
func Error(c *gin.Context, err error) {
	Fail(c, apperr.Status(err), apperr.Message(err))
}

// Page is the paged listing payload placed in Envelope.Data.
type Page struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	TotalItems int64       `json:"total_items"`
	TotalPages int         `json:"total_pages"`
}
