// README: Sender and customer registration handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier/internal/modules/customer"
	"courier/internal/modules/sender"
)

type AccountHandler struct {
	senders   *sender.Service
	customers *customer.Service
}

func NewAccountHandler(senders *sender.Service, customers *customer.Service) *AccountHandler {
	return &AccountHandler{senders: senders, customers: customers}
}

type registerSenderReq struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	PickupLocation  string  `json:"pickupLocation"`
	DestinationCity string  `json:"destinationCity"`
	ItemDescription string  `json:"itemDescription"`
	ItemWeightKg    float64 `json:"itemWeightKg"`
}

func (h *AccountHandler) RegisterSender(c *gin.Context) {
	var req registerSenderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := h.senders.Register(c.Request.Context(), sender.RegisterCommand(req))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, s)
}

func (h *AccountHandler) ListSenders(c *gin.Context) {
	out, err := h.senders.List(c.Request.Context(), sender.Filter{
		DestinationCity: c.Query("destinationCity"),
		Status:          sender.Status(c.Query("status")),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

type registerCustomerReq struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
}

func (h *AccountHandler) RegisterCustomer(c *gin.Context) {
	var req registerCustomerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cu, err := h.customers.Register(c.Request.Context(), customer.RegisterCommand{
		Kind:        customer.Kind(req.Kind),
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		City:        req.City,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, cu)
}

func (h *AccountHandler) ListCustomers(c *gin.Context) {
	out, err := h.customers.List(c.Request.Context(), customer.Kind(c.Query("kind")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}
