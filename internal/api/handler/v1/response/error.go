package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`

	wrapped error
}

func (e *Err) Error() string {
	return e.Msg
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.Error(err.wrapped),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Msg:        err.Error(),
		wrapped:    err,
	}
}

func ErrUnauthorized() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        "unauthorized",
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        "invalid credentials",
		wrapped:    err,
	}
}

func ErrForbidden(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Msg:        err.Error(),
		wrapped:    err,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Msg:        "something went wrong",
		wrapped:    err,
	}
}
