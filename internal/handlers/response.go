package handlers

import (
	"errors"
	"net/http"

	"admin-console/internal/httperr"

	"github.com/gin-gonic/gin"
)

// envelope is the uniform response wrapper: code 0 means success, any other
// value a failure. Data is null on failures.
type envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, status int, data any, message string) {
	if message == "" {
		message = "success"
	}
	c.JSON(status, envelope{Code: 0, Data: data, Message: message})
}

// respondError translates any failure to the envelope exactly once. Typed
// errors keep their status and message; anything else is logged server-side
// and reported as a generic internal error.
func (h *Handler) respondError(c *gin.Context, err error) {
	var httpErr *httperr.Error
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.Status, envelope{Code: httpErr.Code, Data: nil, Message: httpErr.Message})
		return
	}

	if h.log != nil {
		h.log.Errorw("unexpected error", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(http.StatusInternalServerError, envelope{Code: 1, Data: nil, Message: "Internal server error"})
}

// abortError writes the failure envelope and stops the handler chain.
func (h *Handler) abortError(c *gin.Context, err error) {
	h.respondError(c, err)
	c.Abort()
}

func (h *Handler) routeNotFound(c *gin.Context) {
	h.respondError(c, httperr.NotFound("Route not found"))
}

func (h *Handler) methodNotAllowed(c *gin.Context) {
	h.respondError(c, httperr.MethodNotAllowed("Method not allowed"))
}

// recovered handles panics escaping a handler; the client sees the same
// generic internal error as any other unexpected failure.
func (h *Handler) recovered(c *gin.Context, recoveredValue any) {
	if h.log != nil {
		h.log.Errorw("panic recovered", "method", c.Request.Method, "path", c.Request.URL.Path, "panic", recoveredValue)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Code: 1, Data: nil, Message: "Internal server error"})
}
