// Binario principal del broker SSO.
//
// Wiring completo: config -> store -> cache -> managers -> services ->
// controllers -> router, más el server de métricas y el sweep periódico
// de filas vencidas. Todo lo operable vive en config.yaml / env.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	rdb "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/unosign/internal/bootstrap"
	"github.com/dropDatabas3/unosign/internal/broker"
	"github.com/dropDatabas3/unosign/internal/cache"
	"github.com/dropDatabas3/unosign/internal/catalog"
	"github.com/dropDatabas3/unosign/internal/config"
	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/email"
	"github.com/dropDatabas3/unosign/internal/entitlement"
	adminctrl "github.com/dropDatabas3/unosign/internal/http/controllers/admin"
	authctrl "github.com/dropDatabas3/unosign/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/unosign/internal/http/controllers/health"
	oauthctrl "github.com/dropDatabas3/unosign/internal/http/controllers/oauth"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	"github.com/dropDatabas3/unosign/internal/http/router"
	adminsvc "github.com/dropDatabas3/unosign/internal/http/services/admin"
	authsvc "github.com/dropDatabas3/unosign/internal/http/services/auth"
	healthsvc "github.com/dropDatabas3/unosign/internal/http/services/health"
	oauthsvc "github.com/dropDatabas3/unosign/internal/http/services/oauth"
	"github.com/dropDatabas3/unosign/internal/metrics"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"github.com/dropDatabas3/unosign/internal/otp"
	"github.com/dropDatabas3/unosign/internal/rate"
	"github.com/dropDatabas3/unosign/internal/session"
	"github.com/dropDatabas3/unosign/internal/store/adapters/memory"
	"github.com/dropDatabas3/unosign/internal/store/adapters/pg"
	"github.com/dropDatabas3/unosign/internal/store/core"
	"github.com/dropDatabas3/unosign/internal/token"
)

// version se inyecta en build con -ldflags "-X main.version=...".
var version = "dev"

// sweepInterval define cada cuánto se barren OTPs, sesiones y códigos vencidos.
// La expiración real es lazy (se tombstonea al leer); el sweep solo acota el
// crecimiento de las tablas.
const sweepInterval = 5 * time.Minute

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

func main() {
	var (
		flagConfigPath = flag.String("config", "", "ruta a config.yaml (fallback: $CONFIG_PATH o configs/config.yaml)")
		flagEnvFile    = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
	)
	flag.Parse()

	if fileExists(*flagEnvFile) {
		if err := godotenv.Load(*flagEnvFile); err == nil {
			log.Printf("dotenv: cargado %s", *flagEnvFile)
		}
	}

	cfgPath := *flagConfigPath
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath == "" && fileExists("configs/config.yaml") {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: "unosign",
		Version:     version,
	})
	defer func() { _ = logger.Sync() }()
	zl := logger.L()

	ctx := context.Background()

	// ---- Store ----
	var (
		rowStore   core.RowStore
		storePing  healthsvc.Pinger
		closeStore func()
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pgStore, err := pg.New(ctx, cfg.Storage.Postgres.DSN, cfg.Storage.Postgres.MaxOpenConns)
		if err != nil {
			zl.Fatal("store postgres", logger.Err(err))
		}
		rowStore = pgStore
		storePing = pgStore
		closeStore = pgStore.Close
		zl.Info("store postgres listo")
	default:
		rowStore = memory.New()
		zl.Warn("store en memoria: los datos se pierden al reiniciar")
	}
	if closeStore != nil {
		defer closeStore()
	}

	// ---- Cache ----
	cc, err := cache.New(cache.Config{
		Kind:   cfg.Cache.Kind,
		Addr:   cfg.Cache.Redis.Addr,
		DB:     cfg.Cache.Redis.DB,
		Prefix: cfg.Cache.Redis.Prefix,
	})
	if err != nil {
		zl.Fatal("cache", logger.Err(err))
	}
	defer func() { _ = cc.Close() }()

	// ---- Rate limiters ----
	// Con redis el contador es compartido entre réplicas; en memoria cada
	// instancia cuenta lo suyo.
	var loginLimiter, verifyLimiter rate.Limiter
	if cfg.Rate.Enabled {
		loginWindow, _ := time.ParseDuration(cfg.Rate.Login.Window)
		verifyWindow, _ := time.ParseDuration(cfg.Rate.Verify.Window)
		if rc, ok := cc.(interface{ Raw() *rdb.Client }); ok {
			loginLimiter = rate.NewRedisLimiter(rc.Raw(), cfg.Cache.Redis.Prefix, cfg.Rate.Login.Limit, loginWindow)
			verifyLimiter = rate.NewRedisLimiter(rc.Raw(), cfg.Cache.Redis.Prefix, cfg.Rate.Verify.Limit, verifyWindow)
		} else {
			loginLimiter = rate.NewMemoryLimiter(cfg.Rate.Login.Limit, loginWindow)
			verifyLimiter = rate.NewMemoryLimiter(cfg.Rate.Verify.Limit, verifyWindow)
		}
	}

	// ---- Email ----
	var sender email.Sender
	if cfg.SMTP.Host != "" {
		s := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		s.TLSMode = cfg.SMTP.TLS
		s.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
		sender = s
	} else {
		sender = email.EchoSender{}
		zl.Warn("smtp sin configurar: los códigos OTP salen por log (solo dev)")
	}

	// ---- Managers de dominio ----
	dir := directory.New(rowStore)
	otpMgr := otp.New(rowStore, sender, cfg.App.Name, cfg.Auth.OTPTTL)
	sessions := session.New(rowStore, cfg.Auth.SessionTTL)
	cat := catalog.New(rowStore, cfg.Catalog.CacheTTL)
	gate := entitlement.New(rowStore)
	codes := broker.New(rowStore, cfg.Broker.CodeTTL)
	issuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer)

	if err := bootstrap.EnsureAdmin(ctx, dir, cfg.Bootstrap.AdminEmail); err != nil {
		zl.Fatal("bootstrap admin", logger.Err(err))
	}

	// ---- Services + controllers ----
	cookie := helpers.SessionCookie{
		Name:     cfg.Auth.Cookie.Name,
		Domain:   cfg.Auth.Cookie.Domain,
		SameSite: helpers.ParseSameSite(cfg.Auth.Cookie.SameSite),
		Secure:   cfg.Auth.Cookie.Secure,
	}

	authServices := authsvc.NewServices(authsvc.Deps{
		Directory:  dir,
		OTP:        otpMgr,
		Sessions:   sessions,
		Issuer:     issuer,
		SessionTTL: cfg.Auth.SessionTTL,
	})
	oauthServices := oauthsvc.NewServices(oauthsvc.Deps{
		Catalog:     cat,
		Gate:        gate,
		Broker:      codes,
		Sessions:    sessions,
		Directory:   dir,
		Issuer:      issuer,
		ExchangeTTL: cfg.Broker.ExchangeTokenTTL,
	})
	adminServices := adminsvc.NewServices(adminsvc.Deps{
		Directory: dir,
		Gate:      gate,
		Catalog:   cat,
	})
	healthService := healthsvc.New(healthsvc.Deps{
		Store:   storePing,
		Cache:   cc,
		Version: version,
	})

	handler := router.New(router.Deps{
		Auth:               authctrl.NewControllers(authServices, cookie),
		OAuth:              oauthctrl.NewControllers(oauthServices),
		Admin:              adminctrl.NewControllers(adminServices),
		Health:             healthctrl.NewController(healthService),
		Issuer:             issuer,
		CookieName:         cfg.Auth.Cookie.Name,
		Sessions:           sessions,
		Directory:          dir,
		LoginLimiter:       loginLimiter,
		VerifyLimiter:      verifyLimiter,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		zl.Fatal("metrics", logger.Err(err))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:        cfg.Server.MetricsAddr,
		Handler:     metricsMux,
		ReadTimeout: 10 * time.Second,
	}

	rootCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zl.Info("http server up",
			logger.String("addr", cfg.Server.Addr),
			logger.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		zl.Info("metrics server up", logger.String("addr", cfg.Server.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		runSweeper(gctx, zl, otpMgr, sessions, codes)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutdown: drenando conexiones")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shCtx)
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		zl.Fatal("server", logger.Err(err))
	}
	zl.Info("shutdown completo")
}

// runSweeper barre periódicamente las filas vencidas de otps, sessions y
// auth_codes hasta que el contexto se cancele.
func runSweeper(ctx context.Context, zl *zap.Logger, otps *otp.Manager, sessions *session.Manager, codes *broker.Broker) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		total := 0
		for _, sweep := range []func(context.Context) (int, error){
			otps.CleanupExpired,
			sessions.CleanupExpired,
			codes.CleanupExpired,
		} {
			n, err := sweep(ctx)
			if err != nil {
				zl.Warn("sweep", logger.Err(err))
				continue
			}
			total += n
		}
		if total > 0 {
			zl.Info("sweep: filas vencidas purgadas", logger.Count(total))
		}
	}
}
