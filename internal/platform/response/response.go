// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	abort(c, http.StatusBadRequest, string(apperr.KindValidationFailed), msg)
}

func Unauthorized(c *gin.Context, msg string) {
	abort(c, http.StatusUnauthorized, "unauthorized", msg)
}

func Forbidden(c *gin.Context, msg string) {
	abort(c, http.StatusForbidden, string(apperr.KindForbidden), msg)
}

// Error maps err to a status code. Typed business errors keep their message;
// anything else is reported as an internal error without details.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindNotFound:
		abort(c, http.StatusNotFound, string(kind), err.Error())
	case apperr.KindInvalidState, apperr.KindConflict:
		abort(c, http.StatusConflict, string(kind), err.Error())
	case apperr.KindValidationFailed:
		abort(c, http.StatusBadRequest, string(kind), err.Error())
	case apperr.KindForbidden:
		abort(c, http.StatusForbidden, string(kind), err.Error())
	default:
		abort(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: msg},
	})
}
