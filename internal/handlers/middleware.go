package handlers

import (
	"net/http"
	"strings"

	"admin-console/internal/httperr"
	"admin-console/internal/token"

	"github.com/gin-gonic/gin"
)

// claimsContextKey stores the verified token claims in the Gin context.
const claimsContextKey = "authClaims"

// claimsFrom returns the claims set by authRequired, or nil outside the
// authenticated chain.
func claimsFrom(c *gin.Context) *token.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}

// authRequired verifies the Bearer credential and stores its claims.
// The scheme token is matched case-sensitively.
func (h *Handler) authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		h.abortError(c, httperr.Unauthorized("Missing Authorization header"))
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		h.abortError(c, httperr.Unauthorized("Invalid Authorization header format"))
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		h.abortError(c, httperr.Unauthorized("Invalid or expired token"))
		return
	}

	c.Set(claimsContextKey, claims)
	c.Next()
}

// requireRole rejects authenticated callers whose role is not allowed.
func (h *Handler) requireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil {
			h.abortError(c, httperr.Unauthorized("Missing Authorization header"))
			return
		}
		for _, role := range allowed {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		h.abortError(c, httperr.Forbidden("Insufficient permissions"))
	}
}

// corsMiddleware attaches cross-origin headers to every response, including
// errors, and short-circuits preflight requests with an empty 204.
func (h *Handler) corsMiddleware(c *gin.Context) {
	origin := c.GetHeader("Origin")
	allowed := h.cfg.AllowedOrigins()

	allowOrigin := "*"
	if len(allowed) > 0 && !contains(allowed, "*") {
		allowOrigin = allowed[0]
		if origin != "" && contains(allowed, origin) {
			allowOrigin = origin
		}
	}

	c.Header("Access-Control-Allow-Origin", allowOrigin)
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
	c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	c.Header("Vary", "Origin")
	if allowOrigin != "*" {
		c.Header("Access-Control-Allow-Credentials", "true")
	}

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
