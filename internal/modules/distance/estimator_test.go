package distance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"courier/internal/types"
)

type fakeProvider struct {
	mu     sync.Mutex
	calls  int
	fail   map[string]error
	meters map[string]int
	delay  time.Duration
	active int32
	peak   int32
}

func (f *fakeProvider) Distance(ctx context.Context, origin, destination string) (int, time.Duration, error) {
	n := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	for {
		p := atomic.LoadInt32(&f.peak)
		if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
			break
		}
	}
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		}
	}
	if err := f.fail[origin]; err != nil {
		return 0, 0, err
	}
	return f.meters[origin], 12 * time.Minute, nil
}

func pairs(n int) []Pair {
	out := make([]Pair, n)
	for i := range out {
		out[i] = Pair{
			CandidateID: types.ID(fmt.Sprintf("c%d", i+1)),
			Origin:      fmt.Sprintf("origin-%d", i+1),
			Destination: "Addis Ababa",
		}
	}
	return out
}

func TestEstimateBatchSyntheticFallback(t *testing.T) {
	e := NewEstimator(nil)
	if !e.Synthetic() {
		t.Fatal("expected synthetic estimator")
	}
	got := e.EstimateBatch(context.Background(), pairs(3))

	wantKm := []float64{5, 7, 9}
	wantMin := []float64{15, 20, 25}
	for i, p := range pairs(3) {
		est, ok := got[p.CandidateID]
		if !ok {
			t.Fatalf("missing estimate for %s", p.CandidateID)
		}
		if est.DistanceKm != wantKm[i] || est.DurationMin != wantMin[i] || !est.IsEstimated {
			t.Errorf("pair %d: got %+v", i, est)
		}
	}
}

func TestEstimateBatchConvertsUnits(t *testing.T) {
	p := &fakeProvider{meters: map[string]int{"origin-1": 4250}}
	got := NewEstimator(p).EstimateBatch(context.Background(), pairs(1))
	est := got["c1"]
	if est.DistanceKm != 4.25 || est.DurationMin != 12 || est.IsEstimated {
		t.Errorf("unexpected estimate %+v", est)
	}
}

func TestEstimateBatchIsolatesFailures(t *testing.T) {
	p := &fakeProvider{
		meters: map[string]int{"origin-1": 1000, "origin-3": 3000},
		fail:   map[string]error{"origin-2": errors.New("network unreachable")},
	}
	got := NewEstimator(p).EstimateBatch(context.Background(), pairs(3))

	if len(got) != 2 {
		t.Fatalf("expected 2 estimates, got %d: %+v", len(got), got)
	}
	if _, ok := got["c2"]; ok {
		t.Error("failed candidate should be omitted")
	}
	if got["c1"].DistanceKm != 1 || got["c3"].DistanceKm != 3 {
		t.Errorf("unexpected estimates %+v", got)
	}
}

func TestEstimateBatchBoundsConcurrency(t *testing.T) {
	p := &fakeProvider{meters: map[string]int{}, delay: 20 * time.Millisecond}
	got := NewEstimator(p, WithConcurrency(2)).EstimateBatch(context.Background(), pairs(8))
	if len(got) != 8 {
		t.Fatalf("expected 8 estimates, got %d", len(got))
	}
	if peak := atomic.LoadInt32(&p.peak); peak > 2 {
		t.Errorf("peak concurrency %d exceeds limit 2", peak)
	}
}

func TestEstimateBatchCancelled(t *testing.T) {
	p := &fakeProvider{meters: map[string]int{}, delay: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := NewEstimator(p).EstimateBatch(ctx, pairs(3))
	if len(got) != 0 {
		t.Errorf("expected no estimates after cancel, got %+v", got)
	}
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]Estimate
}

func (m *mapCache) Get(_ context.Context, o, d string) (Estimate, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[cacheKey(o, d)]
	return e, ok, nil
}

func (m *mapCache) Set(_ context.Context, o, d string, e Estimate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[cacheKey(o, d)] = e
	return nil
}

func TestEstimateBatchUsesCache(t *testing.T) {
	p := &fakeProvider{meters: map[string]int{"origin-1": 2000}}
	c := &mapCache{data: map[string]Estimate{}}
	e := NewEstimator(p, WithCache(c))

	e.EstimateBatch(context.Background(), pairs(1))
	second := e.EstimateBatch(context.Background(), []Pair{{CandidateID: "other", Origin: "ORIGIN-1 ", Destination: "addis ababa"}})

	if p.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", p.calls)
	}
	if est := second["other"]; est.CandidateID != "other" || est.DistanceKm != 2 {
		t.Errorf("cached estimate not re-keyed: %+v", est)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("COURIER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("COURIER_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()

	c := NewRedisCache(client, time.Minute)
	origin := "test-origin-" + time.Now().Format("150405.000000")
	defer client.Del(ctx, cacheKey(origin, "Adama"))

	if _, ok, err := c.Get(ctx, origin, "Adama"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, origin, "Adama", Estimate{DistanceKm: 99, DurationMin: 80}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, origin, "adama")
	if err != nil || !ok || got.DistanceKm != 99 {
		t.Fatalf("expected hit, got %+v ok=%v err=%v", got, ok, err)
	}
}
