// README: Bench checks; environment probes, a scripted delivery flow over the HTTP API, and load checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client

	// ids created by earlier flow steps, keyed by role.
	ids map[string]string
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
		ids:   map[string]string{},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(time.DateOnly)
	return []TestCase{
		{Name: "Env: Postgres connect", Run: checkPostgres},
		{Name: "Env: Redis connect", Run: checkRedis},
		{Name: "Migration: apply (optional)", Run: applyMigration},
		{Name: "Migration: tables exist", Run: checkTables},
		{Name: "API: health", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodGet, "/health", nil, http.StatusOK, nil)
		}},

		createCase("Register: buyer", "buyer", "/api/customers", map[string]any{
			"kind": "buyer", "name": "Bench Buyer", "email": "buyer@bench.test", "city": "Mekelle",
		}),
		createCase("Register: traveler", "traveler", "/api/travellers", map[string]any{
			"name": "Bench Traveler", "email": "traveler@bench.test",
			"currentLocation": "Addis Ababa", "destinationCity": "Mekelle",
			"departureDate": tomorrow, "travellerType": "domestic",
		}),
		createCase("Register: partner", "partner", "/api/partners", map[string]any{
			"companyName": "Bench Riders", "phone": "+251900000000",
			"city": "Addis Ababa", "mechanism": "motorcycle-rider",
		}),
		{Name: "Register: traveler missing fields -> 400", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodPost, "/api/travellers", map[string]any{}, http.StatusBadRequest, nil)
		}},
		{Name: "Order: create", Run: func(ctx context.Context, r *Runner) Result {
			return r.createOrder(ctx, "order", "traveler")
		}},

		{Name: "Matching: traveler matches include registered traveler", Run: func(ctx context.Context, r *Runner) Result {
			var travelers []struct {
				ID string `json:"id"`
			}
			res := r.expect(ctx, http.MethodGet, "/api/orders/"+r.ids["order"]+"/matches", nil, http.StatusOK, &travelers)
			if res.Status != statusPass {
				return res
			}
			for _, t := range travelers {
				if t.ID == r.ids["traveler"] {
					return res
				}
			}
			res.Status, res.Note = statusFail, fmt.Sprintf("traveler %s not among %d matches", r.ids["traveler"], len(travelers))
			return res
		}},
		{Name: "Matching: selection view", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodGet, "/api/orders/"+r.ids["order"]+"/selection", nil, http.StatusOK, nil)
		}},
		{Name: "Matching: board loads without error", Run: func(ctx context.Context, r *Runner) Result {
			var b struct {
				Error string `json:"error"`
			}
			res := r.expect(ctx, http.MethodGet, "/api/board", nil, http.StatusOK, &b)
			if res.Status == statusPass && b.Error != "" {
				res.Status, res.Note = statusFail, b.Error
			}
			return res
		}},

		{Name: "Fees: motorcycle 4km = 90", Run: func(ctx context.Context, r *Runner) Result {
			var q struct {
				Total struct {
					Amount float64 `json:"amount"`
				} `json:"total"`
			}
			res := r.expect(ctx, http.MethodGet, "/api/fees/quote?mechanism=motorcycle-rider&distanceKm=4", nil, http.StatusOK, &q)
			if res.Status == statusPass && q.Total.Amount != 90 {
				res.Status, res.Note = statusFail, fmt.Sprintf("total=%v", q.Total.Amount)
			}
			return res
		}},
		{Name: "Fees: unknown mechanism -> null", Run: func(ctx context.Context, r *Runner) Result {
			var q *json.RawMessage
			res := r.expect(ctx, http.MethodGet, "/api/fees/quote?mechanism=drone&distanceKm=4", nil, http.StatusOK, &q)
			if res.Status == statusPass && q != nil {
				res.Status, res.Note = statusFail, "expected null data"
			}
			return res
		}},
		{Name: "Fees: negative distance -> 400", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodGet, "/api/fees/selection-quote?distanceKm=-1", nil, http.StatusBadRequest, nil)
		}},

		{Name: "Order: assign traveler", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodPost, "/api/orders/"+r.ids["order"]+"/assign",
				map[string]any{"travelerId": r.ids["traveler"]}, http.StatusOK, nil)
		}},
		advanceCase("picked_up"),
		advanceCase("in_transit"),
		advanceCase("delivered"),
		advanceCase("completed"),
		{Name: "Order: completed cannot be cancelled", Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodPost, "/api/orders/"+r.ids["order"]+"/cancel",
				map[string]any{"actorType": "buyer", "reason": "too late"}, http.StatusConflict, nil)
		}},
		{Name: "Order: events recorded", Run: func(ctx context.Context, r *Runner) Result {
			var events []json.RawMessage
			res := r.expect(ctx, http.MethodGet, "/api/orders/"+r.ids["order"]+"/events", nil, http.StatusOK, &events)
			if res.Status == statusPass && len(events) < 6 {
				res.Status = statusFail
			}
			res.Note = fmt.Sprintf("events=%d", len(events))
			return res
		}},

		{Name: "Concurrency: one assign wins", Run: concurrentAssign},

		{Name: "Load: fee quote throughput", Run: func(ctx context.Context, r *Runner) Result {
			return perfLoad(ctx, r, "/api/fees/quote?mechanism=cycle-rider&distanceKm=7")
		}},
		{Name: "Load: board throughput", Run: func(ctx context.Context, r *Runner) Result {
			return perfLoad(ctx, r, "/api/board")
		}},
	}
}

func checkPostgres(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusSkip, Note: "db not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func checkRedis(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: statusSkip, Note: "redis not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	return Result{Status: statusPass}
}

func applyMigration(ctx context.Context, r *Runner) Result {
	if !r.cfg.ApplyMigration {
		return Result{Status: statusSkip, Note: "apply-migration=false"}
	}
	if r.db == nil {
		return Result{Status: statusFail, Note: "db not configured"}
	}
	sql, err := os.ReadFile(r.cfg.MigrationPath)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	for _, s := range splitSQL(string(sql)) {
		if _, err := r.db.Exec(ctx, s); err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
	}
	return Result{Status: statusPass}
}

func checkTables(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: statusSkip, Note: "db not configured"}
	}
	tables, err := extractTables(r.cfg.MigrationPath)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	for _, t := range tables {
		var exists bool
		err := r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)", t,
		).Scan(&exists)
		if err != nil {
			return Result{Status: statusFail, Note: err.Error()}
		}
		if !exists {
			return Result{Status: statusFail, Note: "missing table: " + t}
		}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("tables=%d", len(tables))}
}

// createCase posts body and remembers the returned id under key.
func createCase(name, key, path string, body map[string]any) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var created struct {
				ID string `json:"id"`
			}
			res := r.expect(ctx, http.MethodPost, path, body, http.StatusCreated, &created)
			if res.Status == statusPass {
				r.ids[key] = created.ID
			}
			return res
		},
	}
}

func advanceCase(status string) TestCase {
	return TestCase{
		Name: "Order: advance to " + status,
		Run: func(ctx context.Context, r *Runner) Result {
			return r.expect(ctx, http.MethodPost, "/api/orders/"+r.ids["order"]+"/status",
				map[string]any{"status": status, "actorType": "traveler", "actorId": r.ids["traveler"]},
				http.StatusOK, nil)
		},
	}
}

func (r *Runner) createOrder(ctx context.Context, key, method string) Result {
	var created struct {
		ID string `json:"id"`
	}
	res := r.expect(ctx, http.MethodPost, "/api/orders", map[string]any{
		"buyerId":        r.ids["buyer"],
		"deliveryMethod": method,
		"orderInfo": map[string]any{
			"productName":     "Coffee beans",
			"originCity":      "Addis Ababa, Bole",
			"destinationCity": "Mekelle",
		},
	}, http.StatusCreated, &created)
	if res.Status == statusPass {
		r.ids[key] = created.ID
	}
	return res
}

// expect sends one request and passes when the response code is want.
// When out is non-nil the envelope data is decoded into it.
func (r *Runner) expect(ctx context.Context, method, path string, body any, want int, out any) Result {
	code, env, latency, err := r.do(ctx, method, path, body)
	if err != nil {
		return Result{Status: statusFail, Latency: latency, Note: err.Error()}
	}
	note := fmt.Sprintf("status=%d", code)
	if code != want {
		if env.Error != "" {
			note += " error=" + env.Error
		}
		return Result{Status: statusFail, Latency: latency, Note: note}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return Result{Status: statusFail, Latency: latency, Note: "decode: " + err.Error()}
		}
	}
	return Result{Status: statusPass, Latency: latency, Note: note}
}

func (r *Runner) do(ctx context.Context, method, path string, body any) (int, envelope, time.Duration, error) {
	var env envelope
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, env, 0, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, env, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, env, time.Since(start), err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	latency := time.Since(start)
	if err != nil {
		return resp.StatusCode, env, latency, err
	}
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env, latency, nil
}

func concurrentAssign(ctx context.Context, r *Runner) Result {
	if res := r.createOrder(ctx, "race", "traveler"); res.Status != statusPass {
		res.Note = "create order: " + res.Note
		return res
	}
	path := "/api/orders/" + r.ids["race"] + "/assign"
	body := map[string]any{"travelerId": r.ids["traveler"]}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succ, lost := 0, 0
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, _, _, err := r.do(ctx, http.MethodPost, path, body)
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			switch code {
			case http.StatusOK:
				succ++
			case http.StatusConflict:
				lost++
			}
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("success=%d conflict=%d", succ, lost)
	if succ != 1 {
		return Result{Status: statusFail, Note: note}
	}
	return Result{Status: statusPass, Note: note}
}

func perfLoad(ctx context.Context, r *Runner, path string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				code, _, _, err := r.do(ctx, http.MethodGet, path, nil)
				mu.Lock()
				if err != nil || code != http.StatusOK {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

var createTableRe = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	matches := createTableRe.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
