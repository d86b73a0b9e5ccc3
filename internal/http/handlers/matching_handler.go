// README: Matching views: traveler matches, board and match selection.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier/internal/modules/matching"
	"courier/internal/types"
)

type MatchingHandler struct {
	matching *matching.Service
}

func NewMatchingHandler(svc *matching.Service) *MatchingHandler {
	return &MatchingHandler{matching: svc}
}

func (h *MatchingHandler) Matches(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.matching.Matches(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *MatchingHandler) QuickMatches(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.matching.QuickMatch(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *MatchingHandler) Selection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sel, err := h.matching.Selection(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sel)
}

// Board always answers 200; load failures are reported inside the board.
func (h *MatchingHandler) Board(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.matching.Board(c.Request.Context()))
}
