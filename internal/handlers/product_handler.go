package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"greenmarket/internal/apperr"
	"greenmarket/internal/middleware"
	"greenmarket/internal/models"
	"greenmarket/internal/services"
	"greenmarket/internal/validation"
)

type ProductHandler struct {
	products *services.ProductService
	logger   zerolog.Logger
}

func NewProductHandler(products *services.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// Create registers a listing for the authenticated seller; the product type
// is inherited from the seller's account, not the request body.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := middleware.GetUserID(r)
	if !ok {
		handleError(w, h.logger, apperr.Unauthorized("Authentication required."))
		return
	}
	productType, _ := middleware.GetProductType(r)

	var req models.ProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	product, err := h.products.Create(sellerID, productType, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "Product created successfully. Awaiting approval.", product)
}

// ListPublic serves the unauthenticated catalog: approved listings only.
func (h *ProductHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListPublic()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Products fetched successfully.", products)
}

// List serves the authenticated catalog: sellers see their own listings in
// every status, buyers see approved listings matching their product type,
// admins see the pending approval queue.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		handleError(w, h.logger, apperr.Unauthorized("Authentication required."))
		return
	}
	role, _ := middleware.GetUserRole(r)

	var (
		products []models.Product
		err      error
	)
	switch role {
	case models.AccountTypeSeller:
		products, err = h.products.ListForSeller(userID)
	case models.AccountTypeAdmin:
		products, err = h.products.ListPending()
	default:
		productType, _ := middleware.GetProductType(r)
		products, err = h.products.ListForBuyer(productType)
	}
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Products fetched successfully.", products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := validation.ParseID(mux.Vars(r)["id"], "Product ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	product, err := h.products.GetByID(productID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Product fetched successfully.", product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := validation.ParseID(mux.Vars(r)["id"], "Product ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	callerID, ok := middleware.GetUserID(r)
	if !ok {
		handleError(w, h.logger, apperr.Unauthorized("Authentication required."))
		return
	}
	role, _ := middleware.GetUserRole(r)

	var req models.ProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	product, err := h.products.Update(callerID, role, productID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Product updated successfully.", product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := validation.ParseID(mux.Vars(r)["id"], "Product ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	callerID, ok := middleware.GetUserID(r)
	if !ok {
		handleError(w, h.logger, apperr.Unauthorized("Authentication required."))
		return
	}
	role, _ := middleware.GetUserRole(r)

	if err := h.products.Delete(callerID, role, productID); err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Product deleted successfully.", nil)
}

func (h *ProductHandler) AddProfitMargin(w http.ResponseWriter, r *http.Request) {
	productID, err := validation.ParseID(mux.Vars(r)["id"], "Product ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req models.ProfitMarginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	product, err := h.products.AddProfitMargin(productID, req.ProfitMargin)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Profit margin added. Product approved.", product)
}

func (h *ProductHandler) UpdateProfitMargin(w http.ResponseWriter, r *http.Request) {
	productID, err := validation.ParseID(mux.Vars(r)["id"], "Product ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req models.ProfitMarginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	product, err := h.products.UpdateProfitMargin(productID, req.ProfitMargin)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Profit margin updated successfully.", product)
}

func (h *ProductHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	productID, err := validation.ParseID(mux.Vars(r)["id"], "Product ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req models.ProductTagRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	product, err := h.products.AddTag(productID, req.ProductTag)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Product tag added successfully.", product)
}
