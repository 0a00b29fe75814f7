package handlers

import (
	"net/http"

	"admin-console/internal/httperr"
	"admin-console/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, users, "")
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := bindObject(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	user, err := h.services.Create(c.Request.Context(), repository.CreateInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, user, "User created")
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := bindObject(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	patch := repository.UpdatePatch{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
	if patch.Empty() {
		h.respondError(c, httperr.BadRequest("At least one field is required for update"))
		return
	}

	user, err := h.services.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, user, "User updated")
}

func (h *Handler) deleteUser(c *gin.Context) {
	id := c.Param("id")

	// Self-delete is rejected before the repository sees the request,
	// independent of the last-admin invariant.
	if claims := claimsFrom(c); claims != nil && claims.Subject == id {
		h.respondError(c, httperr.BadRequest("Cannot delete current logged-in user"))
		return
	}

	user, err := h.services.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, user, "User deleted")
}
