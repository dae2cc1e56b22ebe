package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/pokechain-api/internal/catalog"
	"github.com/KirkDiggler/pokechain-api/internal/chain"
	"github.com/KirkDiggler/pokechain-api/internal/config"
	enginebattle "github.com/KirkDiggler/pokechain-api/internal/engine/battle"
	enginecapture "github.com/KirkDiggler/pokechain-api/internal/engine/capture"
	"github.com/KirkDiggler/pokechain-api/internal/engine/incubation"
	"github.com/KirkDiggler/pokechain-api/internal/engine/marketplace"
	"github.com/KirkDiggler/pokechain-api/internal/engine/progression"
	"github.com/KirkDiggler/pokechain-api/internal/errors"
	"github.com/KirkDiggler/pokechain-api/internal/handlers/pokechain/v1alpha1"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/battle"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/breeding"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/capture"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/collection"
	"github.com/KirkDiggler/pokechain-api/internal/orchestrators/market"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/clock"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/idgen"
	"github.com/KirkDiggler/pokechain-api/internal/pkg/rng"
	redisclient "github.com/KirkDiggler/pokechain-api/internal/redis"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/creature"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/egg"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/encounter"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/listing"
	"github.com/KirkDiggler/pokechain-api/internal/repositories/sales"
)

const redisPingTimeout = 5 * time.Second

// dependencies is everything the gRPC server needs plus what must be
// released on shutdown
type dependencies struct {
	Handler *v1alpha1.Handler

	closers []func()
}

// Close releases resources in reverse order of acquisition
func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	deps := &dependencies{}
	handler, err := wire(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Handler = handler
	return deps, nil
}

func wire(ctx context.Context, cfg *config.Config, deps *dependencies) (*v1alpha1.Handler, error) {
	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, &redisclient.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		UseTLS:   cfg.Redis.UseTLS,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}
	deps.closers = append(deps.closers, func() { _ = redisClient.Close() }) // nolint:errcheck // shutdown

	if err := redisclient.Ping(ctx, redisClient, redisPingTimeout); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}

	clk := clock.New()
	roller := rng.Default()

	cat, err := catalog.Default()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	typeChart, err := loadTypeChart(cfg.Game.TypeChartFile)
	if err != nil {
		return nil, err
	}

	// Repositories
	creatureRepo, err := creature.NewRedis(&creature.RedisConfig{Client: redisClient, Clock: clk})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create creature repository")
	}
	encounterRepo, err := encounter.NewRedisRepository(&encounter.Config{Client: redisClient, Clock: clk})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create encounter repository")
	}
	eggRepo, err := egg.NewRedis(&egg.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create egg repository")
	}
	listingRepo, err := listing.NewRedis(&listing.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create listing repository")
	}

	salesRepo, err := buildSalesRepository(ctx, cfg, deps)
	if err != nil {
		return nil, err
	}

	balances, err := buildBalanceReader(ctx, cfg, deps)
	if err != nil {
		return nil, err
	}

	// Engines
	calculator, err := enginebattle.NewCalculator(&enginebattle.CalculatorConfig{
		TypeChart: typeChart,
		Roller:    roller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create damage calculator")
	}
	progressionEngine, err := progression.NewEngine(cfg.Game.GrowthRate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create progression engine")
	}
	captureEngine, err := enginecapture.NewEngine(roller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create capture engine")
	}
	tracker, err := incubation.NewTracker(&incubation.Config{
		RequiredSteps: cfg.Game.HatchSteps,
		Roller:        roller,
		Species:       cat,
		Clock:         clk,
		IDGenerator:   idgen.NewUUID(idgen.PrefixEgg),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create incubation tracker")
	}
	ledger, err := marketplace.NewLedger(&marketplace.Config{
		FeePercent:  cfg.Game.FeePercent,
		Clock:       clk,
		IDGenerator: idgen.NewUUID(idgen.PrefixListing),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create marketplace ledger")
	}

	bus := events.NewBus()
	creatureIDs := idgen.NewUUID(idgen.PrefixCreature)

	// Orchestrators
	collectionService, err := collection.NewOrchestrator(&collection.Config{
		CreatureRepo: creatureRepo,
		Catalog:      cat,
		Progression:  progressionEngine,
		IDGenerator:  creatureIDs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create collection orchestrator")
	}
	battleService, err := battle.NewOrchestrator(&battle.Config{
		CreatureRepo:  creatureRepo,
		EncounterRepo: encounterRepo,
		Catalog:       cat,
		Calculator:    calculator,
		Progression:   progressionEngine,
		Roller:        roller,
		EventBus:      bus,
		IDGenerator:   creatureIDs,
		EncounterTTL:  cfg.Game.EncounterTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle orchestrator")
	}
	captureService, err := capture.NewOrchestrator(&capture.Config{
		CreatureRepo:  creatureRepo,
		EncounterRepo: encounterRepo,
		Engine:        captureEngine,
		EventBus:      bus,
		IDGenerator:   creatureIDs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create capture orchestrator")
	}
	breedingService, err := breeding.NewOrchestrator(&breeding.Config{
		CreatureRepo: creatureRepo,
		EggRepo:      eggRepo,
		ListingRepo:  listingRepo,
		Tracker:      tracker,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create breeding orchestrator")
	}
	marketService, err := market.NewOrchestrator(&market.Config{
		ListingRepo:  listingRepo,
		CreatureRepo: creatureRepo,
		EggRepo:      eggRepo,
		SalesRepo:    salesRepo,
		Ledger:       ledger,
		Balances:     balances,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create market orchestrator")
	}

	subscriptions := breeding.Subscribe(bus, breedingService)
	deps.closers = append(deps.closers, func() {
		for _, id := range subscriptions {
			_ = bus.Unsubscribe(id) // nolint:errcheck // shutdown
		}
	})

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CollectionService: collectionService,
		BattleService:     battleService,
		CaptureService:    captureService,
		BreedingService:   breedingService,
		MarketService:     marketService,
		Catalog:           cat,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create handler")
	}
	return handler, nil
}

func loadTypeChart(path string) (*enginebattle.TypeChart, error) {
	if path == "" {
		return enginebattle.DefaultTypeChart(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open type chart %s", path)
	}
	defer func() { _ = f.Close() }() // nolint:errcheck // read-only

	chart, err := enginebattle.LoadTypeChart(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load type chart %s", path)
	}
	slog.Info("Loaded type chart", "path", path)
	return chart, nil
}

func buildSalesRepository(ctx context.Context, cfg *config.Config, deps *dependencies) (sales.Repository, error) {
	if cfg.Postgres.DSN == "" {
		slog.Warn("No postgres DSN configured, sale history is kept in memory")
		return sales.NewInMemory(), nil
	}
	store, err := sales.NewPostgres(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect sale history store")
	}
	deps.closers = append(deps.closers, store.Close)
	return store, nil
}

func buildBalanceReader(ctx context.Context, cfg *config.Config, deps *dependencies) (chain.BalanceReader, error) {
	if cfg.Chain.RPCURL == "" {
		slog.Warn("No chain RPC configured, purchases must supply the buyer balance")
		return nil, nil
	}
	dialCtx, cancel := context.WithTimeout(ctx, cfg.Chain.Timeout)
	defer cancel()

	client, err := chain.Dial(dialCtx, cfg.Chain.RPCURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect chain rpc")
	}
	deps.closers = append(deps.closers, client.Close)
	return client, nil
}
