// README: Delivery partner handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier/internal/modules/partner"
	"courier/internal/modules/pricing"
	"courier/internal/types"
)

type PartnerHandler struct {
	partner *partner.Service
}

func NewPartnerHandler(svc *partner.Service) *PartnerHandler {
	return &PartnerHandler{partner: svc}
}

type registerPartnerReq struct {
	Name            string `json:"name"`
	CompanyName     string `json:"companyName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	PrimaryLocation string `json:"primaryLocation"`
	Mechanism       string `json:"mechanism"`
}

func (h *PartnerHandler) Register(c *gin.Context) {
	var req registerPartnerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.partner.Register(c.Request.Context(), partner.RegisterCommand{
		Name:            req.Name,
		CompanyName:     req.CompanyName,
		Email:           req.Email,
		Phone:           req.Phone,
		City:            req.City,
		PrimaryLocation: req.PrimaryLocation,
		Mechanism:       pricing.Mechanism(req.Mechanism),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

func (h *PartnerHandler) List(c *gin.Context) {
	out, err := h.partner.List(c.Request.Context(), partner.Filter{
		City:   c.Query("city"),
		Status: partner.Status(c.Query("status")),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *PartnerHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "missing status")
		return
	}
	p, err := h.partner.UpdateStatus(c.Request.Context(), partner.StatusCommand{
		PartnerID: types.ID(id),
		Status:    partner.Status(req.Status),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}
