package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fusionorder/fusion-order-api/services"
)

// Response is the envelope every endpoint answers with. code mirrors the
// HTTP status; success responses always use 200.
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// OK sends a 200 envelope with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      http.StatusOK,
		Message:   "success",
		Data:      data,
		Timestamp: time.Now(),
	})
}

// OKMessage sends a 200 envelope with a custom message and data.
func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      http.StatusOK,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// Fail translates a service error into the envelope via the central
// kind-to-status mapping.
func Fail(c *gin.Context, err error) {
	status, message := services.HTTPStatus(err)
	c.JSON(status, Response{
		Code:      status,
		Message:   message,
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// BadRequest sends a 400 envelope, used for request-binding failures.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:      http.StatusBadRequest,
		Message:   message,
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// parseID extracts the numeric id path parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
