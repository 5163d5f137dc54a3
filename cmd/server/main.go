// Command server runs the registration gateway: an internal HTTP API that
// provisions game accounts for Telegram identities and pushes them to the
// legacy game server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/ustwan/tzr-host-api-sub001/internal/platform/config"
	"github.com/ustwan/tzr-host-api-sub001/internal/platform/database"
	"github.com/ustwan/tzr-host-api-sub001/internal/platform/health"
	"github.com/ustwan/tzr-host-api-sub001/internal/platform/kafka/producer"
	"github.com/ustwan/tzr-host-api-sub001/internal/platform/logger"
	redisclient "github.com/ustwan/tzr-host-api-sub001/internal/platform/redis"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/audit"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/gameserver"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/handler"
	registermetrics "github.com/ustwan/tzr-host-api-sub001/internal/register/metrics"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/membership"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/queue"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/service"
	userstore "github.com/ustwan/tzr-host-api-sub001/internal/register/store/user"
	"github.com/ustwan/tzr-host-api-sub001/migrations"
	"github.com/ustwan/tzr-host-api-sub001/pkg/platform/middleware/metadata"
	request "github.com/ustwan/tzr-host-api-sub001/pkg/platform/middleware/request"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing api-father",
		"addr", cfg.Addr,
		"game_server", cfg.GameServer.Host,
		"telegram_gate", cfg.Telegram.Enabled(),
	)

	// Relational store. Without a configured database the gateway still
	// serves traffic from the in-memory store, which is how the dev stand
	// and the handler tests run.
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.Database.DSN()
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	var users service.UserStore
	if pool != nil {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := migrations.Apply(migrateCtx, pool.DB()); err != nil {
			cancel()
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		cancel()
		users = userstore.NewPostgres(pool.DB())
	} else {
		log.Warn("no database configured, using in-memory user store")
		users = userstore.NewInMemory()
	}

	// Redis carries the downstream worker queue. Optional: a missing broker
	// degrades to a no-op queue rather than blocking registrations.
	rdb, err := redisclient.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}

	var outbox service.OutboxQueue = queue.Noop{}
	if rdb != nil {
		outbox = queue.NewRedis(rdb, cfg.QueueRequests)
	} else {
		log.Warn("no redis configured, registration events will be dropped")
	}

	var verifier service.MembershipVerifier = membership.Noop{}
	if cfg.Telegram.Enabled() {
		verifier = membership.NewTelegram(membership.Config{
			BotToken: cfg.Telegram.BotToken,
			GroupID:  cfg.Telegram.RequiredGroupID,
			Logger:   log,
		})
	}

	var auditor audit.Publisher = audit.Noop{}
	var kafkaProducer *producer.Producer
	if cfg.Kafka.Brokers != "" {
		kafkaProducer, err = producer.New(producer.Config{
			Brokers:         cfg.Kafka.Brokers,
			Retries:         3,
			DeliveryTimeout: 10 * time.Second,
		}, log)
		if err != nil {
			log.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		auditor = audit.NewKafka(kafkaProducer, cfg.Kafka.AuditTopic, log)
	}

	game := gameserver.NewClient(gameserver.Config{}, log)
	metrics := registermetrics.New()

	svc := service.New(users, verifier, outbox, game,
		service.WithLogger(log),
		service.WithMetrics(metrics),
		service.WithAuditPublisher(auditor),
	)

	router := chi.NewRouter()
	router.Use(request.RequestID)
	router.Use(request.Recovery(log))
	router.Use(request.Logger(log))

	meta := &metadata.Middleware{TrustXFF: os.Getenv("TRUST_XFF") == "true"}
	router.Use(meta.Handler)

	h := handler.New(svc, handler.GameEndpoint{
		Host: cfg.GameServer.Host,
		Port: cfg.GameServer.Port,
	}, log)
	h.Register(router)

	hc := health.New(os.Getenv("APP_ENV"))
	if pool != nil {
		hc.RegisterCheck("database", pool.Health)
	}
	if rdb != nil {
		hc.RegisterCheck("redis", rdb.Health)
	}
	hc.Register(router)

	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if pool != nil || rdb != nil {
		g.Go(func() error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if pool != nil {
						pool.RecordPoolStats()
					}
					if rdb != nil {
						rdb.RecordPoolStats()
					}
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
	}

	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Error("kafka producer close failed", "error", err)
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("redis close failed", "error", err)
		}
	}
	if pool != nil {
		if err := pool.Close(); err != nil {
			log.Error("database close failed", "error", err)
		}
	}

	log.Info("server stopped")
}
