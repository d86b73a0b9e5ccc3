// README: Order handlers for create/list/get/assign/advance/cancel.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier/internal/modules/order"
	"courier/internal/types"
)

type OrderHandler struct {
	order *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{order: svc}
}

type orderInfoReq struct {
	ProductName           string `json:"productName"`
	Description           string `json:"description"`
	OriginCity            string `json:"originCity"`
	DestinationCity       string `json:"destinationCity"`
	PreferredDeliveryDate string `json:"preferredDeliveryDate"`
}

type createOrderReq struct {
	BuyerID        string       `json:"buyerId"`
	DeliveryMethod string       `json:"deliveryMethod"`
	OrderInfo      orderInfoReq `json:"orderInfo"`
}

type assignReq struct {
	TravelerID string `json:"travelerId"`
	PartnerID  string `json:"partnerId"`
	ActorID    string `json:"actorId"`
}

type advanceReq struct {
	Status    string `json:"status"`
	ActorType string `json:"actorType"`
	ActorID   string `json:"actorId"`
}

type cancelReq struct {
	ActorType string `json:"actorType"`
	ActorID   string `json:"actorId"`
	Reason    string `json:"reason"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	info := order.OrderInfo{
		ProductName:     req.OrderInfo.ProductName,
		Description:     req.OrderInfo.Description,
		OriginCity:      req.OrderInfo.OriginCity,
		DestinationCity: req.OrderInfo.DestinationCity,
	}
	if req.OrderInfo.PreferredDeliveryDate != "" {
		d, err := parseDate(req.OrderInfo.PreferredDeliveryDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid preferredDeliveryDate")
			return
		}
		info.PreferredDeliveryDate = &d
	}
	o, err := h.order.Create(c.Request.Context(), order.CreateCommand{
		BuyerID:        types.ID(req.BuyerID),
		DeliveryMethod: order.DeliveryMethod(req.DeliveryMethod),
		Info:           info,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	out, err := h.order.List(c.Request.Context(), order.Filter{
		Status:         order.Status(c.Query("status")),
		DeliveryMethod: order.DeliveryMethod(c.Query("deliveryMethod")),
		BuyerID:        types.ID(c.Query("buyerId")),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.order.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

func (h *OrderHandler) Events(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	events, err := h.order.Events(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, events)
}

func (h *OrderHandler) Assign(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	o, err := h.order.Assign(c.Request.Context(), order.AssignCommand{
		OrderID:    types.ID(id),
		TravelerID: types.ID(req.TravelerID),
		PartnerID:  types.ID(req.PartnerID),
		ActorID:    optionalID(req.ActorID),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

func (h *OrderHandler) Advance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req advanceReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "missing status")
		return
	}
	o, err := h.order.Advance(c.Request.Context(), order.AdvanceCommand{
		OrderID:   types.ID(id),
		Status:    order.Status(req.Status),
		ActorType: req.ActorType,
		ActorID:   optionalID(req.ActorID),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req cancelReq
	// body is optional
	_ = c.ShouldBindJSON(&req)
	if req.ActorType == "" {
		req.ActorType = "buyer"
	}
	o, err := h.order.Cancel(c.Request.Context(), order.CancelCommand{
		OrderID:   types.ID(id),
		ActorType: req.ActorType,
		ActorID:   optionalID(req.ActorID),
		Reason:    req.Reason,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

func optionalID(v string) *types.ID {
	if v == "" {
		return nil
	}
	id := types.ID(v)
	return &id
}
