package marketplace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/modules/matching"
	"courier/internal/modules/order"
	"courier/internal/modules/partner"
	"courier/internal/modules/sender"
	"courier/internal/modules/traveler"
)

func writeEnvelope(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if code >= 300 {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "error": data})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": data})
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost:8080/"})
	assert.Equal(t, "http://localhost:8080", c.baseURL)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
}

func TestTravelersListSendsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/travellers", r.URL.Path)
		assert.Equal(t, "Adama", r.URL.Query().Get("destinationCity"))
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Empty(t, r.URL.Query().Get("currentLocation"))
		writeEnvelope(w, http.StatusOK, []traveler.Traveler{{ID: "t1", Name: "Abebe", DestinationCity: "Adama"}})
	}))
	defer srv.Close()

	got, err := NewClient(Config{BaseURL: srv.URL}).Travelers().List(context.Background(),
		traveler.Filter{DestinationCity: "Adama", Status: traveler.StatusActive})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Abebe", got[0].Name)
}

func TestListNullDataIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, nil)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	partners, err := c.Partners().List(context.Background(), partner.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, partners)
	assert.Empty(t, partners)

	senders, err := c.Senders().List(context.Background(), sender.Filter{})
	require.NoError(t, err)
	assert.Empty(t, senders)
}

func TestOrderGetErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/orders/missing":
			writeEnvelope(w, http.StatusNotFound, "order not found")
		case "/api/orders/broken":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		default:
			writeEnvelope(w, http.StatusOK, order.Order{ID: "o1", Status: order.StatusPending})
		}
	}))
	defer srv.Close()
	orders := NewClient(Config{BaseURL: srv.URL}).Orders()

	_, err := orders.Get(context.Background(), "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "order not found", apiErr.Message)

	_, err = orders.Get(context.Background(), "broken")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)

	o, err := orders.Get(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, o.Status)
}

func TestWatchOrderStopsAtTerminalStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		status := order.StatusInTransit
		if n >= 3 {
			status = order.StatusDelivered
		}
		if n >= 4 {
			status = order.StatusCompleted
		}
		writeEnvelope(w, http.StatusOK, order.Order{ID: "o1", Status: status})
	}))
	defer srv.Close()

	var seen []order.Status
	err := NewClient(Config{BaseURL: srv.URL}).Orders().WatchOrder(context.Background(), "o1", time.Millisecond,
		func(o *order.Order, err error) {
			require.NoError(t, err)
			seen = append(seen, o.Status)
		})
	require.NoError(t, err)
	assert.Equal(t, []order.Status{order.StatusInTransit, order.StatusInTransit, order.StatusDelivered, order.StatusCompleted}, seen)
}

func TestWatchOrderCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, order.Order{ID: "o1", Status: order.StatusPending})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := NewClient(Config{BaseURL: srv.URL}).Orders().WatchOrder(ctx, "o1", 10*time.Millisecond, func(*order.Order, error) {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubClientsSatisfyMatchingSources(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://example.invalid"})
	var _ matching.OrderSource = c.Orders()
	var _ matching.TravelerSource = c.Travelers()
	var _ matching.PartnerSource = c.Partners()
}
