// README: Entry point; loads config, wires stores and services, serves the HTTP API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"courier/internal/config"
	httptransport "courier/internal/http"
	"courier/internal/infra"
	"courier/internal/logger"
	"courier/internal/maps"
	"courier/internal/modules/customer"
	"courier/internal/modules/distance"
	"courier/internal/modules/matching"
	"courier/internal/modules/notification"
	"courier/internal/modules/order"
	"courier/internal/modules/partner"
	"courier/internal/modules/pricing"
	"courier/internal/modules/sender"
	"courier/internal/modules/traveler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("api stopped", zap.Error(err))
	}
}

type repositories struct {
	travelers traveler.Repository
	partners  partner.Repository
	senders   sender.Repository
	customers customer.Repository
	orders    order.Repository
}

func run(ctx context.Context, cfg config.Config, zl *zap.Logger) error {
	fees := pricing.NewService(cfg.Pricing)

	var repos repositories
	switch cfg.Storage {
	case "memory":
		zl.Warn("using in-memory storage; data is lost on restart")
		repos = repositories{
			travelers: traveler.NewMemoryStore(),
			partners:  partner.NewMemoryStore(),
			senders:   sender.NewMemoryStore(),
			customers: customer.NewMemoryStore(),
			orders:    order.NewMemoryStore(),
		}
	default:
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer dbPool.Close()
		repos = postgresRepositories(dbPool)
		if err := fees.Reload(ctx, pricing.NewStore(dbPool)); err != nil {
			return err
		}
	}

	estimator := newEstimator(cfg, zl)

	var notifier order.Notifier = notification.Nop{}
	if cfg.Firebase.ProjectID != "" {
		msgClient, err := infra.NewFirebaseMessaging(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			zl.Warn("firebase messaging disabled", zap.Error(err))
		} else {
			notifier = notification.NewFCM(msgClient, zl)
		}
	}

	travelerSvc := traveler.NewService(repos.travelers)
	partnerSvc := partner.NewService(repos.partners)
	orderSvc := order.NewService(repos.orders, travelerSvc, partnerSvc,
		order.WithNotifier(notifier), order.WithLogger(zl))
	matchingSvc := matching.NewService(
		matching.Sources{Orders: orderSvc, Travelers: travelerSvc, Partners: partnerSvc},
		estimator, fees, cfg.Matching, zl)

	server := httptransport.NewServer(cfg.HTTP.Addr, httptransport.ServerDeps{
		Traveler: travelerSvc,
		Partner:  partnerSvc,
		Sender:   sender.NewService(repos.senders),
		Customer: customer.NewService(repos.customers),
		Order:    orderSvc,
		Matching: matchingSvc,
		Pricing:  fees,
	}, cfg.HTTP.AllowedOrigins, zl)

	return server.Run(ctx, 10*time.Second)
}

func postgresRepositories(db *pgxpool.Pool) repositories {
	return repositories{
		travelers: traveler.NewStore(db),
		partners:  partner.NewStore(db),
		senders:   sender.NewStore(db),
		customers: customer.NewStore(db),
		orders:    order.NewStore(db),
	}
}

// newEstimator falls back to synthetic estimates when no maps key is set or
// the maps client cannot be built.
func newEstimator(cfg config.Config, zl *zap.Logger) *distance.Estimator {
	opts := []distance.Option{
		distance.WithConcurrency(cfg.Matching.DistanceConcurrency),
		distance.WithLogger(zl),
	}
	if rc := infra.NewRedis(cfg.Redis.Addr); rc != nil {
		ttl := time.Duration(cfg.Redis.DistanceTTLSeconds) * time.Second
		opts = append(opts, distance.WithCache(distance.NewRedisCache(rc, ttl)))
	}

	if cfg.Maps.APIKey == "" {
		zl.Info("no maps api key; distance estimates are synthetic")
		return distance.NewEstimator(nil, opts...)
	}
	svc, err := maps.NewDistanceService(cfg.Maps.APIKey)
	if err != nil {
		zl.Warn("maps client unavailable; distance estimates are synthetic", zap.Error(err))
		return distance.NewEstimator(nil, opts...)
	}
	return distance.NewEstimator(svc, opts...)
}
