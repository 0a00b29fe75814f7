package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"admin-console/internal/httperr"
	"admin-console/internal/models"

	"github.com/gin-gonic/gin"
)

// bindObject decodes the request body into dst, requiring a JSON object.
// Arrays, scalars and null are rejected; an empty body counts as an empty
// object so field-level validation produces the specific message.
func bindObject(c *gin.Context, dst any) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return httperr.BadRequest("Request body must be a JSON object")
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] != '{' {
		return httperr.BadRequest("Request body must be a JSON object")
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return httperr.BadRequest("Invalid request body")
	}
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string          `json:"accessToken"`
	User        models.SafeUser `json:"user"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := bindObject(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		h.respondError(c, httperr.BadRequest("Username and password are required"))
		return
	}

	accessToken, user, err := h.services.Login(c.Request.Context(), username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, loginResponse{AccessToken: accessToken, User: user}, "Login successful")
}

func (h *Handler) me(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		h.respondError(c, httperr.Unauthorized("Missing Authorization header"))
		return
	}

	user, err := h.services.CurrentUser(c.Request.Context(), claims.Subject)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, user, "")
}
