// README: Base handler utilities (JSON envelope, id checks, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"courier/internal/modules/customer"
	"courier/internal/modules/order"
	"courier/internal/modules/partner"
	"courier/internal/modules/pricing"
	"courier/internal/modules/sender"
	"courier/internal/modules/traveler"
)

type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// isValidID accepts the uuid ids we generate and any short alphanumeric id.
func isValidID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, envelope{Status: "success", Data: v})
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Status: "error", Error: msg})
}

var (
	badRequestErrs = []error{
		order.ErrBadRequest, traveler.ErrBadRequest, partner.ErrBadRequest,
		sender.ErrBadRequest, customer.ErrBadRequest, pricing.ErrBadRequest,
	}
	notFoundErrs = []error{
		order.ErrNotFound, traveler.ErrNotFound, partner.ErrNotFound, customer.ErrNotFound,
	}
	conflictErrs = []error{
		order.ErrInvalidState, order.ErrConflict, order.ErrRouteMismatch,
		traveler.ErrInvalidState, traveler.ErrConflict,
		partner.ErrInvalidState, partner.ErrConflict,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeServiceError maps module sentinel errors to HTTP status codes.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case isAny(err, badRequestErrs):
		writeError(c, http.StatusBadRequest, err.Error())
	case isAny(err, notFoundErrs):
		writeError(c, http.StatusNotFound, err.Error())
	case isAny(err, conflictErrs):
		writeError(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// pathID reads and validates the :id path parameter.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid id")
		return "", false
	}
	return id, true
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}

func parseFloat(v string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}
