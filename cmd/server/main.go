package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"dataforall/internal/api"
	"dataforall/internal/denuncias"
	"dataforall/internal/platform/config"
	"dataforall/internal/platform/httpserver"
	"dataforall/internal/platform/i18n"
	"dataforall/internal/platform/logger"
	"dataforall/internal/platform/metrics"
	platformotel "dataforall/internal/platform/otel"
	"dataforall/internal/platform/redis"
	"dataforall/internal/ratelimit"
	"dataforall/internal/recent"
	"dataforall/internal/session"
	"dataforall/internal/tracking"
	httptransport "dataforall/internal/transport/http"
	"dataforall/internal/web"
	"dataforall/internal/web/templates"
	"dataforall/pkg/platform/circuit"
)

const (
	tokenIssuer   = "dataforall"
	tokenAudience = "dataforall-web"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := platformotel.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("flushing traces failed", "error", err)
		}
	}()

	trustedProxies, err := cfg.Server.TrustedProxyPrefixes()
	if err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	source, err := buildSource(cfg, log, m)
	if err != nil {
		return err
	}

	var store recent.Store
	if redisClient != nil {
		store = recent.NewRedisStore(redisClient, cfg.Recent.Max, cfg.Recent.TTL)
		log.Info("recent folios stored in redis", "addr", redisClient.Addr())
	} else {
		store = recent.NewMemoryStore(cfg.Recent.Max, cfg.Recent.TTL)
	}

	svc, err := tracking.New(source,
		tracking.WithRecentStore(store),
		tracking.WithLocation(cfg.Server.Location()),
		tracking.WithLogger(log),
		tracking.WithMetrics(m),
	)
	if err != nil {
		return err
	}

	if cfg.UsesDefaultSessionKey() {
		log.Warn("using the development session signing key; set DFA_SESSION_KEY")
	}
	tokens := session.NewTokenService(cfg.Session.SigningKey, tokenIssuer, tokenAudience)
	sessions := session.NewManager(tokens, session.Config{TTL: cfg.Session.TTL, Secure: cfg.Session.SecureCookies}, log, m)

	printer, err := i18n.NewPrinter()
	if err != nil {
		return err
	}
	views, err := templates.New(printer)
	if err != nil {
		return err
	}

	limiter := ratelimit.New(cfg.Server.ClientRate, cfg.Server.ClientBurst,
		ratelimit.WithLogger(log),
		ratelimit.WithMetrics(m),
	)
	routerCfg := httptransport.Config{
		Logger:         log,
		Metrics:        m,
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      limiter.Handler,
		Session:        sessions.Middleware,
		TrustedProxies: trustedProxies,
	}
	if redisClient != nil {
		routerCfg.Redis = redisClient
	}
	router := httptransport.NewRouter(routerCfg,
		api.New(svc, source, log),
		web.New(svc, sessions, store, views, log, m),
	)
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting dataforall", "addr", cfg.Server.Addr, "denuncias_url", cfg.Denuncias.URL)
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout)
	})
	if cfg.Denuncias.URL != "" && cfg.Denuncias.CacheTTL > 0 {
		g.Go(func() error {
			// Warm the cache so the first citizen does not pay for the fetch.
			if _, err := source.Fetch(gctx); err != nil {
				log.Warn("initial denuncias fetch failed", "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

// buildSource picks the embedded dataset when no upstream is configured.
// Otherwise the HTTP source is paced and cached, and the fallback sits on
// top so demonstration data is never cached in place of live data.
func buildSource(cfg *config.Config, log *slog.Logger, m *metrics.Metrics) (denuncias.Source, error) {
	embedded, err := denuncias.NewEmbeddedSource()
	if err != nil {
		return nil, err
	}
	if cfg.Denuncias.URL == "" {
		log.Info("no DFA_DENUNCIAS_URL set; serving demonstration data")
		return embedded, nil
	}

	live := denuncias.NewHTTPSource(cfg.Denuncias.URL, cfg.Denuncias.Timeout,
		denuncias.WithRateLimit(cfg.Denuncias.RatePerSecond, cfg.Denuncias.Burst),
		denuncias.WithMetrics(m),
		denuncias.WithLogger(log),
	)
	var source denuncias.Source = denuncias.NewCachedSource(live, cfg.Denuncias.CacheTTL, m)
	if cfg.Denuncias.Fallback {
		breaker := circuit.New("denuncias",
			circuit.WithFailureThreshold(cfg.Denuncias.BreakerThreshold),
			circuit.WithCooldown(cfg.Denuncias.BreakerCooldown),
		)
		source = denuncias.NewFallbackSource(source, embedded, log,
			denuncias.WithBreaker(breaker),
			denuncias.WithFallbackMetrics(m),
		)
	}
	return source, nil
}
