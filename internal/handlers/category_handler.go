package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"greenmarket/internal/models"
	"greenmarket/internal/services"
	"greenmarket/internal/validation"
)

type CategoryHandler struct {
	categories *services.CategoryService
	logger     zerolog.Logger
}

func NewCategoryHandler(categories *services.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	category, err := h.categories.Create(&req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, "Category created successfully.", category)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Categories fetched successfully.", categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	categoryID, err := validation.ParseID(mux.Vars(r)["id"], "Category ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	category, err := h.categories.GetByID(categoryID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Category fetched successfully.", category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	categoryID, err := validation.ParseID(mux.Vars(r)["id"], "Category ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req models.CategoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	category, err := h.categories.Update(categoryID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Category updated successfully.", category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID, err := validation.ParseID(mux.Vars(r)["id"], "Category ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.categories.Delete(categoryID); err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Category deleted successfully.", nil)
}
