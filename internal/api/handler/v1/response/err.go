package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"msg"`
	RequestID  string `json:"request_id"`

	err error
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, msg string, err error) *Err {
	return &Err{
		StatusCode: statusCode,
		Msg:        msg,
		err:        err,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error(), err)
}

func ErrUnauthorized(err error) *Err {
	return NewErr(http.StatusUnauthorized, err.Error(), err)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, "wrong credentials", err)
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, err.Error(), err)
}

func ErrNotFound(err error) *Err {
	return NewErr(http.StatusNotFound, err.Error(), err)
}

// ErrConflict renders a state conflict: the resource exists but the
// requested transition has already happened or raced with another request.
func ErrConflict(err error) *Err {
	return NewErr(http.StatusConflict, err.Error(), err)
}

// ErrPreconditionFailed renders a request whose preconditions do not hold,
// such as checking out before checking in.
func ErrPreconditionFailed(err error) *Err {
	return NewErr(http.StatusPreconditionFailed, err.Error(), err)
}

func ErrTooManyRequests(err error) *Err {
	return NewErr(http.StatusTooManyRequests, err.Error(), err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "internal server error", err)
}

// RenderErr writes the error response and logs the underlying cause with
// the request ID, which is also echoed back to the client.
func RenderErr(ctx *gin.Context, err *Err) {
	err.RequestID = requestid.Get(ctx)

	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", err.RequestID),
			zap.Int("status", err.StatusCode),
			zap.Error(err.err))
	} else {
		zap.L().Info("request rejected",
			zap.String("request_id", err.RequestID),
			zap.Int("status", err.StatusCode),
			zap.String("msg", err.Msg))
	}

	ctx.JSON(err.StatusCode, err)
}
