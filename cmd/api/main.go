package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-resto-orders/internal/admin"
	"github.com/ariefcatur/go-resto-orders/internal/config"
	"github.com/ariefcatur/go-resto-orders/internal/customers"
	"github.com/ariefcatur/go-resto-orders/internal/httpx"
	"github.com/ariefcatur/go-resto-orders/internal/identity"
	kafkax "github.com/ariefcatur/go-resto-orders/internal/kafka"
	"github.com/ariefcatur/go-resto-orders/internal/menu"
	"github.com/ariefcatur/go-resto-orders/internal/orders"
	"github.com/ariefcatur/go-resto-orders/internal/payments"
	"github.com/ariefcatur/go-resto-orders/internal/postgres"
	"github.com/ariefcatur/go-resto-orders/internal/redisx"
	"github.com/ariefcatur/go-resto-orders/internal/reservations"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, postgres.PoolSizes{
		MaxConns: cfg.PGMaxConns,
		MinConns: cfg.PGMinConns,
	})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	tracking := &redisx.TrackingCache{RDB: rdb}

	// Kafka producers, one writer per topic
	prodStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicStatusChanged, 1024)
	prodStatus.Start(ctx)
	prodCreated := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	prodCreated.Start(ctx)

	// External providers
	users := identity.NewClient(cfg.IdentityBaseURL)
	pay := payments.NewClient(cfg.PaymentsBaseURL)
	auth := identity.HeaderAuth{}

	// Repos & services
	orderRepo := &orders.Repo{DB: db}
	adminRepo := &admin.Repo{DB: db}
	menuRepo := &menu.Repo{DB: db}
	resSvc := &reservations.Service{Store: &reservations.Repo{DB: db}}
	custSvc := &customers.Service{
		Directory: users,
		Facts:     &customers.Repo{DB: db},
		Admin:     adminRepo,
	}
	engine := &orders.Engine{
		Store:   orderRepo,
		Cache:   tracking,
		Events:  prodStatus,
		Service: cfg.ServiceName,
	}

	router := httpx.NewRouter()
	(&httpx.OrdersHandler{
		Store:         orderRepo,
		Engine:        engine,
		Payments:      pay,
		Auth:          auth,
		Admin:         adminRepo,
		Tracking:      tracking,
		Events:        prodCreated,
		Service:       cfg.ServiceName,
		PublicBaseURL: cfg.PublicBaseURL,
		Currency:      cfg.Currency,
	}).Register(router)
	(&httpx.ReservationsHandler{
		Service:   resSvc,
		Auth:      auth,
		Admin:     adminRepo,
		Directory: users,
	}).Register(router)
	(&httpx.MenuHandler{Repo: menuRepo, Auth: auth, Admin: adminRepo}).Register(router)
	(&httpx.CustomersHandler{Service: custSvc, Auth: auth}).Register(router)
	(&httpx.AdminHandler{Repo: adminRepo, Auth: auth}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prodStatus.Close() // close inbox -> flush & close writer
	prodCreated.Close()
	cancel() // stop producer loops
	prodStatus.WaitClosed()
	prodCreated.WaitClosed()
}
