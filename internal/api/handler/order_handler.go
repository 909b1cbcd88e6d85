package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/resp"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/internal/util"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("order handler init failed, orderService is nil")
	}
	return &OrderHandler{orderService: orderService}
}

// GET /orders/
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	user := util.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, errUnauthenticated)
		return
	}

	orders, err := h.orderService.ListUserOrders(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, orders)
}

// GET /orders/{id}
func (h *OrderHandler) GetMyOrder(w http.ResponseWriter, r *http.Request) {
	user := util.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, errUnauthenticated)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.orderService.GetUserOrder(r.Context(), user.ID, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, order)
}

// PATCH /orders/{id}/status
// 一般使用者只能取消自己的訂單
func (h *OrderHandler) UpdateMyOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, false)
}

// GET /orders/admin/allorders
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAllOrders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, orders)
}

// GET /orders/admin/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, order)
}

// PATCH /orders/admin/{id}/status
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, true)
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request, asAdmin bool) {
	user := util.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, errUnauthenticated)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, errInvalidBody)
		return
	}

	// 管理員走一般使用者的路由時仍以一般使用者身分處理
	actor := service.Actor{UserID: user.ID, Role: model.ActorUser}
	if asAdmin {
		actor.Role = user.Role()
	}

	order, err := h.orderService.UpdateStatus(r.Context(), actor, orderID, body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, order)
}
