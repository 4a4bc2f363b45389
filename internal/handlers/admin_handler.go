package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"greenmarket/internal/models"
	"greenmarket/internal/services"
	"greenmarket/internal/validation"
)

// AdminHandler covers account moderation: the approval queue, status
// transitions, and blocking.
type AdminHandler struct {
	users  *services.UserService
	logger zerolog.Logger
}

func NewAdminHandler(users *services.UserService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{users: users, logger: logger}
}

func (h *AdminHandler) ListAccountRequests(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAccountRequests()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Account requests fetched successfully.", users)
}

func (h *AdminHandler) ListApprovedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListApprovedUsers()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Users fetched successfully.", users)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := validation.ParseID(mux.Vars(r)["id"], "User ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "User fetched successfully.", user)
}

func (h *AdminHandler) GetUserByDisplayID(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByDisplayID(mux.Vars(r)["displayId"])
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "User fetched successfully.", user)
}

func (h *AdminHandler) UpdateAccountStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := validation.ParseID(mux.Vars(r)["id"], "User ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req models.AccountStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.users.UpdateAccountStatus(userID, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Account status updated successfully.", nil)
}

func (h *AdminHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	userID, err := validation.ParseID(mux.Vars(r)["id"], "User ID")
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if err := h.users.BlockUser(userID); err != nil {
		handleError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "User blocked successfully.", nil)
}
