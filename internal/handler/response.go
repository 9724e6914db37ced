package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
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

// RespondError writes err with the status of its AppError code. Anything else
// is a 500 and its text is not exposed. The error is attached to the context
// for the error-logging middleware.
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)

	appErr, ok := apperrors.As(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
		return
	}
	c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}
