package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uchu51/restobar-backend/internal/modules/caja"
	"github.com/uchu51/restobar-backend/internal/modules/catalog"
	"github.com/uchu51/restobar-backend/internal/modules/loyalty"
	"github.com/uchu51/restobar-backend/internal/modules/orders"
	"github.com/uchu51/restobar-backend/internal/modules/payments"
	"github.com/uchu51/restobar-backend/internal/modules/promotions"
	"github.com/uchu51/restobar-backend/internal/snapshot"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment as-is")
	}

	ctx := context.Background()

	// ── Persistence ─────────────────────────────────────────
	snap := snapshot.NewNoop()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Successfully connected to the database!")

		snap, err = snapshot.NewPostgresStore(db)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("DATABASE_URL not set, running without persistence")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Phase 1: Catalog ────────────────────────────────────
	catalogRepo, err := catalog.NewMemoryRepository(ctx, snap)
	if err != nil {
		log.Fatal(err)
	}
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Phase 2: Order Lifecycle ────────────────────────────
	ordersRepo, err := orders.NewMemoryRepository(ctx, snap)
	if err != nil {
		log.Fatal(err)
	}
	ordersService := orders.NewService(ordersRepo, catalogService)
	orders.NewHandler(ordersService).RegisterRoutes(router)

	// ── Phase 3: Promotions & Loyalty ───────────────────────
	promoRepo, err := promotions.NewMemoryRepository(ctx, snap)
	if err != nil {
		log.Fatal(err)
	}
	promoService := promotions.NewService(promoRepo, ordersService, catalogService)
	promotions.NewHandler(promoService).RegisterRoutes(router)

	loyaltyRepo, err := loyalty.NewMemoryRepository(ctx, snap)
	if err != nil {
		log.Fatal(err)
	}
	loyaltyService := loyalty.NewService(loyaltyRepo, ordersService)
	loyalty.NewHandler(loyaltyService).RegisterRoutes(router)

	// ── Phase 4: Caja & Payments ────────────────────────────
	cajaRepo, err := caja.NewMemoryRepository(ctx, snap)
	if err != nil {
		log.Fatal(err)
	}
	cajaService := caja.NewService(cajaRepo)
	caja.NewHandler(cajaService).RegisterRoutes(router)

	paymentsService := payments.NewService(ordersService, catalogService, cajaService, loyaltyService)
	payments.NewHandler(paymentsService).RegisterRoutes(router)

	if os.Getenv("METRICS_ENABLED") == "true" {
		router.Handle("/metrics", promhttp.Handler())
	}

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Restobar API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
