// README: Traveler handlers for register/list/get/status.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courier/internal/modules/traveler"
	"courier/internal/types"
)

type TravelerHandler struct {
	traveler *traveler.Service
}

func NewTravelerHandler(svc *traveler.Service) *TravelerHandler {
	return &TravelerHandler{traveler: svc}
}

type registerTravelerReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CurrentLocation string `json:"currentLocation"`
	DestinationCity string `json:"destinationCity"`
	DepartureDate   string `json:"departureDate"`
	TravellerType   string `json:"travellerType"`
	DeviceToken     string `json:"deviceToken"`
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *TravelerHandler) Register(c *gin.Context) {
	var req registerTravelerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	var departure time.Time
	if req.DepartureDate != "" {
		d, err := parseDate(req.DepartureDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid departureDate")
			return
		}
		departure = d
	}
	t, err := h.traveler.Register(c.Request.Context(), traveler.RegisterCommand{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		CurrentLocation: req.CurrentLocation,
		DestinationCity: req.DestinationCity,
		DepartureDate:   departure,
		TravellerType:   traveler.Type(req.TravellerType),
		DeviceToken:     req.DeviceToken,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

func (h *TravelerHandler) List(c *gin.Context) {
	out, err := h.traveler.List(c.Request.Context(), traveler.Filter{
		DestinationCity: c.Query("destinationCity"),
		CurrentLocation: c.Query("currentLocation"),
		Status:          traveler.Status(c.Query("status")),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *TravelerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.traveler.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TravelerHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "missing status")
		return
	}
	t, err := h.traveler.UpdateStatus(c.Request.Context(), traveler.StatusCommand{
		TravelerID: types.ID(id),
		Status:     traveler.Status(req.Status),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}
