package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/resp"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

type PaymentHandler struct {
	paymentService service.IPaymentService
}

func NewPaymentHandler(paymentService service.IPaymentService) *PaymentHandler {
	if paymentService == nil {
		panic("payment handler init failed, paymentService is nil")
	}
	return &PaymentHandler{paymentService: paymentService}
}

// GET /payments/admin/all?skip=&limit=
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	payments, err := h.paymentService.ListPayments(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, payments)
}
