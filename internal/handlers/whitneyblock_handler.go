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

// WhitneyBlockHandler manages the caller's delivery-address book. Every
// operation is scoped to the authenticated user.
type WhitneyBlockHandler struct {
	blocks *services.WhitneyBlockService
	logger zerolog.Logger
}

func NewWhitneyBlockHandler(blocks *services.WhitneyBlockService, logger zerolog.Logger) *WhitneyBlockHandler {
	return &WhitneyBlockHandler{blocks: blocks, logger: logger}
}

func (h *WhitneyBlockHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		handleError(w, h.logger, apperr.Unauthorized("Authentication required."))
		return
	}

	var req models.WhitneyBlockRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	block, err := h.blocks.Create(userID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "Whitney block created successfully.", block)
}

func (h *WhitneyBlockHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		handleError(w, h.logger, apperr.Unauthorized("Authentication required."))
		return
	}

	blocks, err := h.blocks.ListForUser(userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Whitney blocks fetched successfully.", blocks)
}

func (h *WhitneyBlockHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		handleError(w, h.logger, apperr.Unauthorized("Authentication required."))
		return
	}

	blockID, err := validation.ParseID(mux.Vars(r)["id"], "Whitney block ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	block, err := h.blocks.GetForUser(userID, blockID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Whitney block fetched successfully.", block)
}
