package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	glog "github.com/labstack/gommon/log"

	"github.com/MelaShop/Mela-Shop-bd/external/resend"
	"github.com/MelaShop/Mela-Shop-bd/external/whatsapp"
	"github.com/MelaShop/Mela-Shop-bd/internal/config"
	"github.com/MelaShop/Mela-Shop-bd/internal/db"
	"github.com/MelaShop/Mela-Shop-bd/internal/middleware"
	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
	"github.com/MelaShop/Mela-Shop-bd/internal/services"
	"github.com/MelaShop/Mela-Shop-bd/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("MELA_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, nil)
	if err != nil {
		log.Fatal(err)
	}

	e := newEcho(cfg.AllowOrigins)
	e.Logger.SetLevel(glog.INFO)

	// ======================
	// INFRA
	// ======================
	kv, closeKV, err := openKV(ctx, cfg.Store)
	if err != nil {
		e.Logger.Fatal(err)
	}
	defer closeKV()
	store := repository.NewStore(kv, e.Logger)

	// ======================
	// REPOSITORIES
	// ======================
	productRepo := repository.NewProductRepository(store)
	cartRepo := repository.NewCartRepository(store)
	orderRepo := repository.NewOrderRepository(store, cartRepo)
	settingsRepo := repository.NewSettingsRepository(store, cfg.Shop.DefaultLogo)
	profileRepo := repository.NewProfileRepository(store)
	draftRepo := repository.NewDraftRepository(store)

	// ======================
	// EXTERNALS
	// ======================
	feed := services.NewOrderFeed(e.Logger)
	notifiers := services.MultiNotifier{feed}
	if cfg.Resend.APIKey != "" {
		mailer, err := resend.NewResendMailer(cfg.Resend.APIKey, cfg.Resend.From)
		if err != nil {
			e.Logger.Fatal(err)
		}
		notifiers = append(notifiers, services.NewMailNotifier(mailer, cfg.Shop.OfficialEmail))
	}
	links := whatsapp.NewLinkBuilder(cfg.Shop.WhatsApp)

	// ======================
	// SERVICES
	// ======================
	fees := services.DeliveryFees{
		model.DeliveryInside:  cfg.Delivery.Inside,
		model.DeliveryOutside: cfg.Delivery.Outside,
	}
	authSvc, err := services.NewAuthService(cfg.Admin.Passphrase, e.Logger)
	if err != nil {
		e.Logger.Fatal(err)
	}
	a := &app{
		Catalog:   services.NewCatalogService(productRepo),
		Carts:     services.NewCartService(cartRepo, productRepo),
		Orders:    services.NewOrderService(orderRepo, fees, notifiers, links, cfg.Shop.Name, e.Logger),
		Inventory: services.NewInventoryService(productRepo, draftRepo, e.Logger),
		Settings: services.NewSettingsService(settingsRepo, services.ShopInfo{
			StoreName:     cfg.Shop.Name,
			WhatsApp:      cfg.Shop.WhatsApp,
			OfficialEmail: cfg.Shop.OfficialEmail,
			BKashNumber:   cfg.Shop.BKashNumber,
			FacebookPage:  cfg.Shop.FacebookPage,
		}, fees),
		Profiles: services.NewProfileService(profileRepo),
		Auth:     authSvc,
		Reports:  services.NewReportService(orderRepo, productRepo),
		Feed:     feed,
		Hero: services.NewHeroRotator(cfg.HeroPeriod, func(ctx context.Context) []string {
			return services.HeroImages(productRepo.List(ctx), settingsRepo.DefaultLogo)
		}),
		JWT: middleware.NewJWTAuth(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL),
	}

	// ======================
	// ROUTES
	// ======================
	registerRoutes(e, a)
	for _, r := range e.Routes() {
		e.Logger.Debugj(glog.JSON{"method": r.Method, "path": r.Path})
	}

	go a.Hero.Run(ctx)

	// ======================
	// SERVER
	// ======================
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           telemetry.Handler(e, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		e.Logger.Infoj(glog.JSON{"op": "listen", "addr": srv.Addr, "store": cfg.Store.Backend})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	e.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}

// openKV connects the configured store backend.
func openKV(ctx context.Context, cfg config.StoreConfig) (repository.KV, func(), error) {
	switch cfg.Backend {
	case config.BackendRedis:
		kv, err := repository.NewRedisKV(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { kv.Close() }, nil
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresKV(pool), pool.Close, nil
	default:
		return repository.NewMemoryKV(), func() {}, nil
	}
}
