package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api/resp"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

var (
	errUnauthenticated = errors.New("unauthenticated")
	errInvalidID       = errors.New("id must be a positive integer")
	errInvalidBody     = errors.New("invalid request body")
	errInvalidQuery    = errors.New("invalid query parameter")
)

// writeError service 錯誤轉 http status, 未分類的錯誤不回傳細節
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		resp.ErrorJSON(w, r, http.StatusNotFound, resp.KindNotFound, err.Error())
	case errors.Is(err, service.ErrValidation):
		resp.ErrorJSON(w, r, http.StatusBadRequest, resp.KindValidation, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		resp.ErrorJSON(w, r, http.StatusBadRequest, resp.KindInvalidStatus, err.Error())
	case errors.Is(err, service.ErrForbidden):
		resp.ErrorJSON(w, r, http.StatusForbidden, resp.KindForbidden, err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		resp.ErrorJSON(w, r, http.StatusConflict, resp.KindEmptyCart, err.Error())
	case errors.Is(err, errUnauthenticated), errors.Is(err, service.ErrUserDisabled):
		resp.ErrorJSON(w, r, http.StatusUnauthorized, resp.KindUnauthenticated, err.Error())
	case errors.Is(err, errInvalidID), errors.Is(err, errInvalidBody), errors.Is(err, errInvalidQuery):
		resp.ErrorJSON(w, r, http.StatusBadRequest, resp.KindBadRequest, err.Error())
	default:
		resp.ErrorJSON(w, r, http.StatusInternalServerError, resp.KindInternal, "internal server error")
	}
}

func pathID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, key), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// queryInt 參數不存在回傳 0
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidQuery
	}
	return v, nil
}
