package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"greenmarket/internal/apperr"
	"greenmarket/internal/models"
	"greenmarket/internal/services"
	"greenmarket/internal/validation"
)

type OrderHandler struct {
	orders *services.OrderService
	logger zerolog.Logger
}

func NewOrderHandler(orders *services.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	order, err := h.orders.Create(&req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "Order created successfully.", order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := validation.ParseID(mux.Vars(r)["id"], "Order ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	order, err := h.orders.GetByID(orderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Order fetched successfully.", order)
}

func (h *OrderHandler) GetByDisplayID(w http.ResponseWriter, r *http.Request) {
	displayID, err := validation.ParseID(mux.Vars(r)["displayId"], "Order custom ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	order, err := h.orders.GetByDisplayID(displayID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Order fetched successfully.", order)
}

// List applies optional customerId/sellerId/paymentMethod query filters with
// page/limit pagination.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := orderFilterFromQuery(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	page, limit := pageParams(r)

	paged, err := h.orders.List(*filter, page, limit)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Orders fetched successfully.", paged)
}

func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := validation.ParseID(mux.Vars(r)["id"], "Customer ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	page, limit := pageParams(r)

	paged, err := h.orders.ListByCustomer(customerID, page, limit)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Orders fetched successfully.", paged)
}

func (h *OrderHandler) ListBySeller(w http.ResponseWriter, r *http.Request) {
	sellerID, err := validation.ParseID(mux.Vars(r)["id"], "Seller ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	page, limit := pageParams(r)

	paged, err := h.orders.ListBySeller(sellerID, page, limit)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Orders fetched successfully.", paged)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	orderID, err := validation.ParseID(mux.Vars(r)["id"], "Order ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req models.UpdateOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	order, err := h.orders.Update(orderID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Order updated successfully.", order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, err := validation.ParseID(mux.Vars(r)["id"], "Order ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.orders.Delete(orderID); err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Order deleted successfully.", nil)
}

// Statistics aggregates order counts and revenue, optionally scoped by
// customerId/sellerId/startDate/endDate query parameters.
func (h *OrderHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	filter, err := orderFilterFromQuery(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	stats, err := h.orders.Statistics(*filter)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Order statistics fetched successfully.", stats)
}

func orderFilterFromQuery(r *http.Request) (*models.OrderFilter, error) {
	filter := models.OrderFilter{
		PaymentMethod: r.URL.Query().Get("paymentMethod"),
	}
	if filter.PaymentMethod != "" && !models.IsValidPaymentMethod(filter.PaymentMethod) {
		return nil, apperr.BadRequest("Invalid payment method.")
	}

	if raw := r.URL.Query().Get("customerId"); raw != "" {
		id, err := validation.ParseID(raw, "Customer ID")
		if err != nil {
			return nil, err
		}
		filter.CustomerID = id
	}
	if raw := r.URL.Query().Get("sellerId"); raw != "" {
		id, err := validation.ParseID(raw, "Seller ID")
		if err != nil {
			return nil, err
		}
		filter.SellerID = id
	}

	start, err := dateParam(r, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := dateParam(r, "endDate")
	if err != nil {
		return nil, err
	}
	filter.StartDate = start
	filter.EndDate = end
	return &filter, nil
}
