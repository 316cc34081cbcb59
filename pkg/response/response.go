package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"GuardHer/pkg/errors"
	"GuardHer/pkg/logger"
)

// Body is the uniform JSON envelope returned by every handler.
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 response with code 0.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{Code: 0, Message: message, Data: data})
}

// Created writes a 201 response with code 0.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Body{Code: 0, Message: message, Data: data})
}

// Fail writes a 400 response.
func Fail(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusBadRequest, Body{Code: errors.CodeValidation, Message: message, Data: data})
}

// NotFound writes a 404 response. A nil result from the core always maps here.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Body{Code: errors.CodeNotFound, Message: message})
}

// Error maps a coded error onto its HTTP status. Unknown errors become 500
// with a generic message so internals never leak.
func Error(c *gin.Context, err error) {
	code := errors.GetCode(err)
	switch code {
	case errors.CodeValidation, errors.CodeDuplicate:
		c.JSON(http.StatusBadRequest, Body{Code: code, Message: errors.GetMessage(err)})
	case errors.CodeNotFound:
		c.JSON(http.StatusNotFound, Body{Code: code, Message: errors.GetMessage(err)})
	default:
		logger.Error("internal failure",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, Body{Code: errors.CodeInternal, Message: "internal error"})
	}
}
