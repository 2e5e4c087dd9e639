package main

import (
	"context"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/config"
	"github.com/vaishnavicode/rentagora/internal/db"
	"github.com/vaishnavicode/rentagora/internal/es"
	"github.com/vaishnavicode/rentagora/internal/httpserver"
	"github.com/vaishnavicode/rentagora/internal/logging"
	"github.com/vaishnavicode/rentagora/internal/mykafka"
	"github.com/vaishnavicode/rentagora/internal/repo"
	"github.com/vaishnavicode/rentagora/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	config.MustNonEmpty(cfg.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(cfg.DB_HOST, "DB_HOST")
	config.MustNonEmpty(cfg.DB_NAME, "DB_NAME")

	logger := logging.New(cfg.LogLevel)
	ctx := logging.IntoContext(context.Background(), logger)

	database, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(database); err != nil {
		log.Fatalf("seed lookups: %v", err)
	}

	var esClient *elasticsearch.Client
	if cfg.ES_URL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
			esClient = nil
		}
	}

	producer := mykafka.NewProducer(cfg.KAFKA_BROKERS)
	defer producer.Close()

	r := repo.New(database)

	authSvc := &service.AuthService{Repo: r, JWTSecret: []byte(cfg.JWT_SECRET), Producer: producer}
	catalogSvc := &service.CatalogService{Repo: r, Producer: producer, ES: esClient, ESIndex: cfg.ES_INDEX}
	cartSvc := &service.CartService{Repo: r}
	orderSvc := &service.OrderService{Repo: r, Producer: producer}
	if err := orderSvc.LoadLookups(ctx); err != nil {
		log.Fatalf("load lookups: %v", err)
	}

	e := echo.New()
	e.HideBanner = true

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Catalog: catalogSvc},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc, Orders: orderSvc},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc},
		SearchHandler:  &httpserver.SearchHTTP{ES: esClient, Index: cfg.ES_INDEX},
		LookupHandler:  &httpserver.LookupHTTP{Repo: r},
		AuthMW:         &httpserver.AuthMiddleware{Auth: authSvc},
		Logger:         logger,
	})

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.ServerPort)))
}
