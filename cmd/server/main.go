package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"bicns/internal/bootstrap"
	controllerhandler "bicns/internal/controller/handler"
	controllermetrics "bicns/internal/controller/metrics"
	"bicns/internal/controller/pricing"
	controllerservice "bicns/internal/controller/service"
	"bicns/internal/events/publisher"
	"bicns/internal/events/worker"
	feetokenhandler "bicns/internal/feetoken/handler"
	feetokenservice "bicns/internal/feetoken/service"
	jwttoken "bicns/internal/jwt_token"
	metadatacache "bicns/internal/metadata/cache"
	metadatahandler "bicns/internal/metadata/handler"
	metadataservice "bicns/internal/metadata/service"
	"bicns/internal/platform/config"
	"bicns/internal/platform/httpserver"
	"bicns/internal/platform/kafka"
	"bicns/internal/platform/logger"
	"bicns/internal/platform/metrics"
	platformredis "bicns/internal/platform/redis"
	registrarhandler "bicns/internal/registrar/handler"
	registrarmetrics "bicns/internal/registrar/metrics"
	registrarservice "bicns/internal/registrar/service"
	registryhandler "bicns/internal/registry/handler"
	registryservice "bicns/internal/registry/service"
	resolverhandler "bicns/internal/resolver/handler"
	resolverservice "bicns/internal/resolver/service"
	reversehandler "bicns/internal/reverse/handler"
	reverseservice "bicns/internal/reverse/service"
	httptransport "bicns/internal/transport/http"
	wrapperhandler "bicns/internal/wrapper/handler"
	wrappermetrics "bicns/internal/wrapper/metrics"
	wrapperservice "bicns/internal/wrapper/service"
	"bicns/pkg/domain"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	admin, err := domain.ParseAddress(cfg.AdminAddress)
	if err != nil {
		return fmt.Errorf("BICNS_ADMIN_ADDRESS: %w", err)
	}
	addrs := bootstrap.Addresses{
		Admin:      admin,
		Registrar:  domain.SystemAddress("registrar"),
		Wrapper:    domain.SystemAddress("wrapper"),
		Controller: domain.SystemAddress("controller"),
		Reverse:    domain.SystemAddress("reverse"),
	}
	resolverAddr := domain.SystemAddress("resolver")

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	m := metrics.New()

	var metadataCache metadataservice.Cache = metadatacache.NewLocal(metadataservice.DefaultTTL, metadatacache.DefaultCleanupInterval)
	metadataTTL := metadataservice.DefaultTTL
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		metadataCache = metadatacache.NewRedis(redisClient.Client, "bicns:metadata:")
		metadataTTL = cfg.Redis.CacheTTL
		log.Info("metadata cache uses redis")
	}

	registry := registryservice.New(st.registry, st.runner, st.outbox,
		registryservice.WithLogger(log))
	registrar := registrarservice.New(st.registrar, registry, st.runner, st.outbox, addrs.Registrar, admin,
		registrarservice.WithLogger(log),
		registrarservice.WithMetrics(registrarmetrics.New(m.Registry)))
	wrapper := wrapperservice.New(st.wrapper, registry, registrar, st.runner, st.outbox, addrs.Wrapper, admin,
		wrapperservice.WithLogger(log),
		wrapperservice.WithMetrics(wrappermetrics.New(m.Registry)),
		wrapperservice.WithTracer(otel.Tracer("bicns/wrapper")))
	resolver := resolverservice.New(st.resolver, registry, wrapper, st.runner, st.outbox, resolverAddr,
		resolverservice.WithLogger(log),
		resolverservice.WithTrusted(addrs.Controller, addrs.Reverse),
		resolverservice.WithObserver(metadataservice.NewInvalidator(metadataCache, log)))
	token := feetokenservice.New(st.token, st.tokenRunner, feetokenservice.WithLogger(log))
	reverse := reverseservice.New(registry, resolver, st.runner, st.outbox, addrs.Reverse,
		reverseservice.WithLogger(log))

	controller, err := controllerservice.New(st.controller, controllerservice.Components{
		Registrar: registrar,
		Registry:  registry,
		Wrapper:   wrapper,
		Resolver:  resolver,
		Oracle:    pricing.NewLinear(cfg.Controller.PricePerSecond),
		Token:     token,
	}, st.runner, st.outbox, addrs.Controller,
		controllerservice.WithLogger(log),
		controllerservice.WithMetrics(controllermetrics.New(m.Registry)),
		controllerservice.WithTracer(otel.Tracer("bicns/controller")),
		controllerservice.WithCommitmentAges(
			uint64(cfg.Controller.MinCommitmentAge/time.Second),
			uint64(cfg.Controller.MaxCommitmentAge/time.Second)),
	)
	if err != nil {
		return err
	}

	if err := bootstrap.New(st.runner, st.registry, registry, registrar, wrapper, addrs, log).Run(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	health := map[string]httptransport.HealthCheck{"store": st.health}
	if redisClient != nil {
		health["redis"] = redisClient.Health
	}

	metadata := metadataservice.New(wrapper, resolver,
		metadataservice.WithLogger(log),
		metadataservice.WithCache(metadataCache, metadataTTL))

	var pub worker.Publisher = publisher.NewLog(log)
	kafkaClient, err := kafka.New(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	if kafkaClient != nil {
		defer kafkaClient.Close()
		if err := kafkaClient.EnsureTopic(ctx, kafka.DefaultPartitions, kafka.DefaultReplication); err != nil {
			return err
		}
		pub = publisher.NewKafka(kafkaClient, kafkaClient.Topic())
		health["kafka"] = kafkaClient.Health
		log.Info("events publish to kafka", "topic", kafkaClient.Topic())
	}
	outboxWorker := worker.New(st.outbox, pub,
		worker.WithLogger(log),
		worker.WithMetrics(m),
		worker.WithPollInterval(cfg.Outbox.PollInterval),
		worker.WithBatchSize(cfg.Outbox.BatchSize))

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	registryH := registryhandler.New(registry, log)
	registrarH := registrarhandler.New(registrar, log)
	wrapperH := wrapperhandler.New(wrapper, log)
	controllerH := controllerhandler.New(controller, log)
	resolverH := resolverhandler.New(resolver, log)
	tokenH := feetokenhandler.New(token, log)
	reverseH := reversehandler.New(reverse, log)
	metadataH := metadatahandler.New(metadata, log)

	router := httptransport.NewRouter(httptransport.Config{
		Logger:     log,
		Validator:  jwttoken.NewJWTServiceAdapter(jwtService),
		AdminToken: cfg.AdminToken,
		Metrics:    m,
		Health:     health,
		Public:     []httptransport.PublicRoutes{registryH, registrarH, wrapperH, controllerH, resolverH, tokenH, metadataH},
		Caller:     []httptransport.CallerRoutes{registryH, registrarH, wrapperH, controllerH, resolverH, tokenH, reverseH},
		Admin:      []httptransport.AdminRoutes{tokenH},
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, log)
	})
	g.Go(func() error {
		return outboxWorker.Run(gctx)
	})
	return g.Wait()
}
