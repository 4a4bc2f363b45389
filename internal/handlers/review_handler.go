package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"greenmarket/internal/models"
	"greenmarket/internal/services"
	"greenmarket/internal/validation"
)

type ReviewHandler struct {
	reviews *services.ReviewService
	logger  zerolog.Logger
}

func NewReviewHandler(reviews *services.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitReviewRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	review, err := h.reviews.Submit(&req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "Review submitted. Awaiting moderation.", review)
}

// GetAggregate serves the public per-product rating summary.
func (h *ReviewHandler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	productID, err := validation.ParseID(mux.Vars(r)["productId"], "Product ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	aggregate, err := h.reviews.AggregateForProduct(productID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Reviews fetched successfully.", aggregate)
}

func (h *ReviewHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListPending()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Pending reviews fetched successfully.", reviews)
}

func (h *ReviewHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	review, err := h.reviews.UpdateStatus(&req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Review status updated successfully.", review)
}
