package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/resp"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

type ProductHandler struct {
	catalogService service.ICatalogService
}

func NewProductHandler(catalogService service.ICatalogService) *ProductHandler {
	if catalogService == nil {
		panic("product handler init failed, catalogService is nil")
	}
	return &ProductHandler{catalogService: catalogService}
}

// POST /products/
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, errInvalidBody)
		return
	}

	params := service.CreateProductParams{
		ProductName: body.ProductName,
		Description: body.Description,
		Status:      body.Status,
		Price:       body.Price,
		Stock:       body.Stock,
		Options:     make([]service.ProductOptionParams, 0, len(body.Options)),
	}
	for _, opt := range body.Options {
		params.Options = append(params.Options, service.ProductOptionParams{
			OptionName: opt.OptionName,
			Items:      opt.Items,
		})
	}

	product, err := h.catalogService.CreateProduct(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusCreated, dto.NewProductDTO(product))
}

// GET /products/?limit=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.catalogService.ListProducts(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, dto.NewProductDTOs(products))
}

// GET /products/{id}
func (h *ProductHandler) RetrieveProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	product, err := h.catalogService.RetrieveProduct(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp.SuccessJSON(w, r, http.StatusOK, dto.NewProductDTO(product))
}

// DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), productID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
