package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boighor-storefront/config"
	"boighor-storefront/internal/backend"
	"boighor-storefront/internal/delivery/http/middleware"
	v1 "boighor-storefront/internal/delivery/http/v1"
	"boighor-storefront/internal/domain"
	"boighor-storefront/internal/infrastructure/cache"
	"boighor-storefront/internal/persist"
	"boighor-storefront/internal/store"
	"boighor-storefront/internal/visitor"
	"boighor-storefront/pkg/logger"
	"boighor-storefront/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Remote bookstore API client
	backendClient := backend.New(cfg.BackendURL, cfg.BackendTimeout)

	// Durable snapshot storage: Postgres when a DSN is configured, local
	// files otherwise.
	var snapshots domain.SnapshotStore
	if cfg.DBUrl != "" {
		pgStore, err := persist.NewPostgresStore(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to snapshot database")
		}
		defer pgStore.Close()
		snapshots = pgStore
		log.Info().Msg("Snapshot storage: PostgreSQL")
	} else {
		fileStore, err := persist.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize snapshot directory")
		}
		snapshots = fileStore
		log.Info().Str("dir", cfg.DataDir).Msg("Snapshot storage: filesystem")
	}

	// Shared caches: one for the catalog listing, one backing the visitor
	// session registry.
	catalogCache := cache.NewMemoryCache(cfg.CacheCatalogTTL, 2*cfg.CacheCatalogTTL)
	visitorCache := cache.NewMemoryCache(cfg.VisitorTTL, 10*time.Minute)

	// Each visitor gets an isolated store set; sessions hydrate from the
	// snapshot storage so reloads keep cart, wishlist and credential.
	registry := visitor.NewRegistry(visitorCache, cfg.VisitorTTL, func(visitorID string) *visitor.Stores {
		session := store.NewSessionStore(backendClient, snapshots, visitorID, *log)
		owner := visitorID
		if user := session.User(); user != nil {
			owner = user.ID
		}
		return &visitor.Stores{
			VisitorID: visitorID,
			Session:   session,
			Catalog:   store.NewCatalogStore(backendClient, session, catalogCache, cfg.CacheCatalogTTL, *log),
			Cart:      store.NewCartStore(snapshots, owner, cfg.MaxCartQuantity, *log),
			Wishlist:  store.NewWishlistStore(snapshots, owner, *log),
			Reviews:   store.NewReviewStore(backendClient, session, cfg.ReviewPageSize, *log),
		}
	})

	// Handlers
	authHandler := v1.NewAuthHandler(snapshots, cfg.CookieDomain, cfg.CookieSecure, cfg.CookieMaxAge)
	catalogHandler := v1.NewCatalogHandler(backendClient)
	cartHandler := v1.NewCartHandler(backendClient)
	wishlistHandler := v1.NewWishlistHandler(backendClient)
	reviewHandler := v1.NewReviewHandler()
	sliderHandler := v1.NewSliderHandler(backendClient)

	mux := http.NewServeMux()

	// Auth + cookie mirror
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/v1/auth/session", authHandler.Session)

	// Catalog (public)
	mux.HandleFunc("GET /api/v1/books", catalogHandler.ListBooks)
	mux.HandleFunc("GET /api/v1/books/{id}", catalogHandler.GetBook)
	mux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories)
	mux.HandleFunc("GET /api/v1/sliders", sliderHandler.List)

	// Reviews
	mux.HandleFunc("GET /api/v1/books/{id}/reviews", reviewHandler.List)
	mux.HandleFunc("POST /api/v1/books/{id}/reviews", reviewHandler.Add)
	mux.HandleFunc("PUT /api/v1/reviews/{reviewId}", reviewHandler.Update)
	mux.HandleFunc("DELETE /api/v1/reviews/{reviewId}", reviewHandler.Delete)

	// Cart
	mux.HandleFunc("GET /api/v1/cart", cartHandler.Get)
	mux.HandleFunc("POST /api/v1/cart", cartHandler.Add)
	mux.HandleFunc("PUT /api/v1/cart/{bookId}", cartHandler.SetQuantity)
	mux.HandleFunc("DELETE /api/v1/cart/{bookId}", cartHandler.Remove)
	mux.HandleFunc("DELETE /api/v1/cart", cartHandler.Clear)

	// Wishlist
	mux.HandleFunc("GET /api/v1/wishlist", wishlistHandler.Get)
	mux.HandleFunc("POST /api/v1/wishlist", wishlistHandler.Add)
	mux.HandleFunc("DELETE /api/v1/wishlist/{bookId}", wishlistHandler.Remove)
	mux.HandleFunc("DELETE /api/v1/wishlist", wishlistHandler.Clear)
	mux.HandleFunc("POST /api/v1/wishlist/{bookId}/move-to-cart", wishlistHandler.MoveToCart)

	// Seller area (role seller, enforced by the route guard)
	mux.HandleFunc("POST /seller/books", catalogHandler.CreateBook)
	mux.HandleFunc("PUT /seller/books/{id}", catalogHandler.UpdateBook)
	mux.HandleFunc("DELETE /seller/books/{id}", catalogHandler.DeleteBook)

	// Admin area (role admin)
	mux.HandleFunc("POST /admin/books", catalogHandler.CreateBook)
	mux.HandleFunc("PUT /admin/books/{id}", catalogHandler.UpdateBook)
	mux.HandleFunc("DELETE /admin/books/{id}", catalogHandler.DeleteBook)
	mux.HandleFunc("POST /admin/categories", catalogHandler.CreateCategory)
	mux.HandleFunc("POST /admin/sliders", sliderHandler.Create)
	mux.HandleFunc("PUT /admin/sliders/{id}", sliderHandler.Update)
	mux.HandleFunc("DELETE /admin/sliders/{id}", sliderHandler.Delete)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Rate limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitPerSec),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Chain: gzip -> rate limit -> request logger -> CORS -> visitor
	// session -> route guard -> mux
	handler := middleware.RouteGuard(mux)
	handler = middleware.NewVisitorSession(registry, cfg.VisitorTTL, cfg.CookieSecure)(handler)
	handler = middleware.NewCORSMiddleware(cfg)(handler)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("boighor-storefront", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop("boighor-storefront")
}
