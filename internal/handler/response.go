package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihdim5/healthrecord-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// WriteError maps an application error onto an HTTP status and writes the
// error envelope. Not-found and invalid-credentials surface with their own
// statuses; anything unclassified is an internal error.
func WriteError(c *gin.Context, err error) {
	switch errors.CodeOf(err) {
	case errors.ErrNotFound:
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
	case errors.ErrBadRequest:
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
	case errors.ErrInvalidCredentials, errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, NewErrorResponse(err.Error()))
	case errors.ErrForbidden:
		c.JSON(http.StatusForbidden, NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
	}
}
