package marketplace

import (
	"context"
	"net/url"
	"time"

	"courier/internal/modules/order"
	"courier/internal/modules/partner"
	"courier/internal/modules/sender"
	"courier/internal/modules/traveler"
	"courier/internal/types"
)

type OrderClient struct{ c *Client }

func (oc *OrderClient) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	q := url.Values{}
	setIf(q, "status", string(f.Status))
	setIf(q, "deliveryMethod", string(f.DeliveryMethod))
	setIf(q, "buyerId", string(f.BuyerID))
	out := []order.Order{}
	if err := oc.c.get(ctx, "/api/orders", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (oc *OrderClient) Get(ctx context.Context, id types.ID) (*order.Order, error) {
	var o order.Order
	if err := oc.c.get(ctx, "/api/orders/"+url.PathEscape(string(id)), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// WatchOrder polls the order every interval and hands each result to fn,
// starting immediately. It returns nil once the order reaches a terminal
// status and ctx.Err() when ctx is done.
func (oc *OrderClient) WatchOrder(ctx context.Context, id types.ID, interval time.Duration, fn func(*order.Order, error)) error {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		o, err := oc.Get(ctx, id)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fn(o, err)
		if err == nil && o.Status.Terminal() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

type TravelerClient struct{ c *Client }

func (tc *TravelerClient) List(ctx context.Context, f traveler.Filter) ([]traveler.Traveler, error) {
	q := url.Values{}
	setIf(q, "destinationCity", f.DestinationCity)
	setIf(q, "currentLocation", f.CurrentLocation)
	setIf(q, "status", string(f.Status))
	out := []traveler.Traveler{}
	if err := tc.c.get(ctx, "/api/travellers", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type PartnerClient struct{ c *Client }

func (pc *PartnerClient) List(ctx context.Context, f partner.Filter) ([]partner.Partner, error) {
	q := url.Values{}
	setIf(q, "city", f.City)
	setIf(q, "status", string(f.Status))
	out := []partner.Partner{}
	if err := pc.c.get(ctx, "/api/partners", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type SenderClient struct{ c *Client }

func (sc *SenderClient) List(ctx context.Context, f sender.Filter) ([]sender.Sender, error) {
	q := url.Values{}
	setIf(q, "destinationCity", f.DestinationCity)
	setIf(q, "status", string(f.Status))
	out := []sender.Sender{}
	if err := sc.c.get(ctx, "/api/senders", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func setIf(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}
