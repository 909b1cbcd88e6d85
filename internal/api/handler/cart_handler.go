package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/resp"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/internal/util"
)

type CartHandler struct {
	cartService     service.ICartService
	checkoutService service.ICheckoutService
}

func NewCartHandler(cartService service.ICartService, checkoutService service.ICheckoutService) *CartHandler {
	if cartService == nil || checkoutService == nil {
		panic("cart handler init failed, missing service")
	}
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

// POST /cart/add
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := util.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, errUnauthenticated)
		return
	}

	var body dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, errInvalidBody)
		return
	}

	item, err := h.cartService.AddItem(r.Context(), user.ID, service.AddCartItemParams{
		ProductID: body.ProductID,
		VariantID: body.VariantID,
		Quantity:  body.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusCreated, dto.NewCartItemDTO(item))
}

// GET /cart/
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := util.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, errUnauthenticated)
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, cart)
}

// PUT /cart/item/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user := util.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, errUnauthenticated)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, errInvalidBody)
		return
	}

	item, err := h.cartService.UpdateItem(r.Context(), user.ID, itemID, body.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, dto.NewCartItemDTO(item))
}

// DELETE /cart/item/{id}
func (h *CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user := util.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, errUnauthenticated)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.cartService.DeleteItem(r.Context(), user.ID, itemID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /cart/checkout?address_id=
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := util.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, errUnauthenticated)
		return
	}

	// 解析失敗當作 0, 交給 service 回 ErrInvalidAddress
	addressID, _ := strconv.ParseUint(r.URL.Query().Get("address_id"), 10, 64)

	result, err := h.checkoutService.Checkout(r.Context(), user.ID, uint(addressID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusCreated, result)
}
