package resp

import (
	"net/http"

	"github.com/go-chi/render"
)

const (
	KindNotFound        = "not_found"
	KindValidation      = "validation_error"
	KindInvalidStatus   = "invalid_status"
	KindForbidden       = "forbidden"
	KindEmptyCart       = "empty_cart"
	KindUnauthenticated = "unauthenticated"
	KindTooManyRequests = "too_many_requests"
	KindBadRequest      = "bad_request"
	KindInternal        = "internal_error"
)

type Response struct {
	Data any `json:"data"`
}

type ResponseError struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func SuccessJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, Response{Data: data})
}

func ErrorJSON(w http.ResponseWriter, r *http.Request, status int, kind, message string) {
	render.Status(r, status)
	render.JSON(w, r, ResponseError{
		Code:    status,
		Error:   kind,
		Message: message,
	})
}
