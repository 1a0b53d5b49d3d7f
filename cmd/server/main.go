package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/evgorin/nft-storefront/internal/asset"      // item collections
	"github.com/evgorin/nft-storefront/internal/config"     // internal config loader
	"github.com/evgorin/nft-storefront/internal/database"   // MySQL connector
	"github.com/evgorin/nft-storefront/internal/handler"    // HTTP handlers
	"github.com/evgorin/nft-storefront/internal/market"     // listing engine
	"github.com/evgorin/nft-storefront/internal/middleware" // rate limiting and caching
	"github.com/evgorin/nft-storefront/internal/queue"      // event consumer
	"github.com/evgorin/nft-storefront/internal/repository" // DB repositories
	"github.com/evgorin/nft-storefront/internal/router"     // route registration
	queue_publisher "github.com/evgorin/nft-storefront/internal/service" // event sink
	"github.com/evgorin/nft-storefront/internal/vault"      // payment vaults
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	sales := repository.NewSaleRepo(db)

	// The live marketplace state: one engine registry scoped to the
	// configured asset family, plus its item and vault collaborators.
	// Every engine event flows to RabbitMQ through the broker sink.
	sink := queue_publisher.NewBrokerSink()
	storefronts := market.NewRegistry(market.Kind(cfg.AssetKind), sink)
	assets := asset.NewRegistry(market.Kind(cfg.AssetKind))
	vaults := vault.NewRegistry()

	// Consume marketplace events into logs/marketplace.log in the background.
	go func() {
		if err := queue.StartMarketplaceConsumer(); err != nil {
			log.Printf("marketplace-consumer: %v", err)
		}
	}()

	// Redis-backed middleware degrade to no-ops when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable; rate limiting and caching disabled")
	}
	ratelimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterMarket(e, handler.NewMarketHandler(storefronts, assets, vaults, sales), cfg.JWTSecret, ratelimit, cache)

	addr := ":" + cfg.Port                                                       // Address string with port
	log.Printf("listening on %s (env=%s, asset=%s)", addr, cfg.Env, cfg.AssetKind) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
