package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courier/internal/config"
	"courier/internal/modules/customer"
	"courier/internal/modules/distance"
	"courier/internal/modules/matching"
	"courier/internal/modules/order"
	"courier/internal/modules/partner"
	"courier/internal/modules/pricing"
	"courier/internal/modules/sender"
	"courier/internal/modules/traveler"
)

type response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	travelers := traveler.NewService(traveler.NewMemoryStore())
	partners := partner.NewService(partner.NewMemoryStore())
	orders := order.NewService(order.NewMemoryStore(), travelers, partners)
	fees := pricing.NewService(config.PricingConfig{Currency: "ETB"})
	deps := ServerDeps{
		Traveler: travelers,
		Partner:  partners,
		Sender:   sender.NewService(sender.NewMemoryStore()),
		Customer: customer.NewService(customer.NewMemoryStore()),
		Order:    orders,
		Pricing:  fees,
		Matching: matching.NewService(
			matching.Sources{Orders: orders, Travelers: travelers, Partners: partners},
			distance.NewEstimator(nil), fees, config.MatchingConfig{}, nil),
	}
	return NewRouter(deps, []string{"http://localhost:3000"}, zap.NewNop())
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (int, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	code, resp := do(t, newTestRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)
}

func TestDeliveryFlow(t *testing.T) {
	r := newTestRouter(t)

	code, resp := do(t, r, http.MethodPost, "/api/travellers", map[string]any{
		"name": "Dawit", "phone": "0911", "currentLocation": "Dire Dawa",
		"destinationCity": "Addis Ababa", "departureDate": "2026-11-02",
	})
	require.Equal(t, http.StatusCreated, code, resp.Error)
	tr := decode[traveler.Traveler](t, resp.Data)
	assert.Equal(t, traveler.StatusPending, tr.Status)

	code, resp = do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"buyerId": "buyer-1",
		"orderInfo": map[string]any{
			"productName": "Coffee", "originCity": "Dire Dawa", "destinationCity": "Addis Ababa, Bole",
		},
	})
	require.Equal(t, http.StatusCreated, code, resp.Error)
	o := decode[order.Order](t, resp.Data)

	code, resp = do(t, r, http.MethodGet, "/api/orders/"+string(o.ID)+"/quick-matches", nil)
	require.Equal(t, http.StatusOK, code)
	matches := decode[[]traveler.Traveler](t, resp.Data)
	require.Len(t, matches, 1)
	assert.Equal(t, tr.ID, matches[0].ID)

	code, resp = do(t, r, http.MethodPost, "/api/orders/"+string(o.ID)+"/assign", map[string]any{"travelerId": tr.ID})
	require.Equal(t, http.StatusOK, code, resp.Error)
	assert.Equal(t, order.StatusAssigned, decode[order.Order](t, resp.Data).Status)

	code, _ = do(t, r, http.MethodPost, "/api/orders/"+string(o.ID)+"/status", map[string]any{"status": "delivered"})
	assert.Equal(t, http.StatusConflict, code)

	code, resp = do(t, r, http.MethodPost, "/api/orders/"+string(o.ID)+"/status", map[string]any{"status": "picked_up"})
	require.Equal(t, http.StatusOK, code, resp.Error)

	code, resp = do(t, r, http.MethodGet, "/api/orders/"+string(o.ID)+"/events", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]order.Event](t, resp.Data), 3)
}

func TestAssignRouteMismatchIsConflict(t *testing.T) {
	r := newTestRouter(t)
	_, resp := do(t, r, http.MethodPost, "/api/travellers", map[string]any{
		"name": "Sara", "email": "s@x", "currentLocation": "Adama", "destinationCity": "Hawassa",
	})
	tr := decode[traveler.Traveler](t, resp.Data)
	_, resp = do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"buyerId":   "b",
		"orderInfo": map[string]any{"productName": "Shoes", "originCity": "Adama", "destinationCity": "Gondar"},
	})
	o := decode[order.Order](t, resp.Data)

	code, resp := do(t, r, http.MethodPost, "/api/orders/"+string(o.ID)+"/assign", map[string]any{"travelerId": tr.ID})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, order.ErrRouteMismatch.Error(), resp.Error)
}

func TestErrorMapping(t *testing.T) {
	r := newTestRouter(t)

	code, _ := do(t, r, http.MethodGet, "/api/orders/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, r, http.MethodGet, "/api/orders/bad%20id", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodPost, "/api/partners", map[string]any{"name": "x", "phone": "1", "city": "Adama", "mechanism": "jetpack"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodGet, "/api/customers?kind=vip", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFeeQuote(t *testing.T) {
	r := newTestRouter(t)

	code, resp := do(t, r, http.MethodGet, "/api/fees/quote?mechanism=cycle-rider&distanceKm=10", nil)
	require.Equal(t, http.StatusOK, code)
	q := decode[pricing.Quote](t, resp.Data)
	assert.Equal(t, 80.0, q.Total.Amount)
	assert.Equal(t, "ETB", q.Total.Currency)

	code, resp = do(t, r, http.MethodGet, "/api/fees/quote?mechanism=unknown-type&distanceKm=10", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(resp.Data))

	code, _ = do(t, r, http.MethodGet, "/api/fees/quote?mechanism=cycle-rider&distanceKm=-2", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodGet, "/api/fees/quote?mechanism=cycle-rider&distanceKm=far", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	for _, d := range []string{"NaN", "Inf", "-Inf", "%2BInf"} {
		code, resp = do(t, r, http.MethodGet, "/api/fees/quote?mechanism=cycle-rider&distanceKm="+d, nil)
		assert.Equal(t, http.StatusBadRequest, code, d)
		assert.Equal(t, "error", resp.Status, d)

		code, resp = do(t, r, http.MethodGet, "/api/fees/selection-quote?distanceKm="+d, nil)
		assert.Equal(t, http.StatusBadRequest, code, d)
		assert.Equal(t, "error", resp.Status, d)
	}

	code, resp = do(t, r, http.MethodGet, "/api/fees/selection-quote?distanceKm=2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 70.0, decode[pricing.Quote](t, resp.Data).Total.Amount)

	code, resp = do(t, r, http.MethodGet, "/api/fees", nil)
	require.Equal(t, http.StatusOK, code)
	rows := decode[[]map[string]any](t, resp.Data)
	require.Len(t, rows, 3)
	assert.Equal(t, "cycle-rider", rows[0]["mechanism"])
}

func TestBoardAndSelection(t *testing.T) {
	r := newTestRouter(t)
	_, resp := do(t, r, http.MethodPost, "/api/partners", map[string]any{
		"name": "Meron", "phone": "1", "city": "Addis Ababa", "mechanism": "e-bike-rider",
	})
	require.Equal(t, "success", resp.Status, resp.Error)
	_, resp = do(t, r, http.MethodPost, "/api/orders", map[string]any{
		"buyerId":   "b",
		"orderInfo": map[string]any{"productName": "Cake", "originCity": "Addis Ababa", "destinationCity": "Addis Ababa, Bole"},
	})
	o := decode[order.Order](t, resp.Data)

	code, resp := do(t, r, http.MethodGet, "/api/board", nil)
	require.Equal(t, http.StatusOK, code)
	board := decode[matching.Board](t, resp.Data)
	require.Len(t, board.Orders, 1)
	assert.True(t, board.Orders[0].Local)
	require.Len(t, board.Orders[0].Partners, 1)
	assert.Equal(t, 75.0, board.Orders[0].Partners[0].Fee.Total.Amount) // 40 + 7*5

	code, resp = do(t, r, http.MethodGet, "/api/orders/"+string(o.ID)+"/selection", nil)
	require.Equal(t, http.StatusOK, code)
	sel := decode[matching.Selection](t, resp.Data)
	require.Len(t, sel.Partners, 1)
	assert.Equal(t, 100.0, sel.Partners[0].Fee.Total.Amount) // 50 + 10*5
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
