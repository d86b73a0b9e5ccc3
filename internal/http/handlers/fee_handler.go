// README: Fee table and quote handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"courier/internal/modules/pricing"
)

type FeeHandler struct {
	pricing *pricing.Service
}

func NewFeeHandler(svc *pricing.Service) *FeeHandler {
	return &FeeHandler{pricing: svc}
}

type feeRow struct {
	Mechanism pricing.Mechanism `json:"mechanism"`
	pricing.FeeStructure
	Currency string `json:"currency"`
}

func (h *FeeHandler) Table(c *gin.Context) {
	table := h.pricing.Table()
	out := make([]feeRow, 0, len(table))
	for _, m := range h.pricing.SortedMechanisms() {
		out = append(out, feeRow{Mechanism: m, FeeStructure: table[m], Currency: h.pricing.Currency()})
	}
	writeJSON(c, http.StatusOK, out)
}

// Quote answers data:null when the mechanism has no fee structure.
func (h *FeeHandler) Quote(c *gin.Context) {
	d, err := parseFloat(c.DefaultQuery("distanceKm", "0"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid distanceKm")
		return
	}
	q, err := h.pricing.Quote(pricing.Mechanism(c.Query("mechanism")), d)
	if errors.Is(err, pricing.ErrNoFeeStructure) {
		writeJSON(c, http.StatusOK, nil)
		return
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

// SelectionQuote returns the flat match-selection fee for a distance.
func (h *FeeHandler) SelectionQuote(c *gin.Context) {
	d, err := parseFloat(c.DefaultQuery("distanceKm", "0"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid distanceKm")
		return
	}
	q, err := h.pricing.SelectionQuote(d)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}
