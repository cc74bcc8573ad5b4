package components

import (
	"context"
	"fmt"
	"log/slog"

	"cridaa-booking/internal/domain/slot"
	"cridaa-booking/internal/infra/db"
	"cridaa-booking/internal/infra/slotstore"
	"cridaa-booking/internal/infra/userstore"
	"cridaa-booking/internal/pkg/clock"
	"cridaa-booking/internal/pkg/config"
	"cridaa-booking/internal/usecase"
	"cridaa-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
	),
	fx.Invoke(seedSlots),
)

// Persistence bundles the store implementations selected by SLOT_STORE.
// The backing connections are only opened for the selected backend.
type Persistence struct {
	fx.Out

	SlotStore  usecase.SlotStore
	SlotReader queries.SlotReader
	UserRepo   usecase.UserRepository
}

func NewPersistence(lc fx.Lifecycle, cfg config.Config) (Persistence, error) {
	switch cfg.Slots.Store {
	case config.StorePostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return Persistence{}, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.EnsureSchema(context.Background(), pool); err != nil {
			cleanup()
			return Persistence{}, fmt.Errorf("ensure schema: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		store := slotstore.NewPostgresStore(pool)
		return Persistence{
			SlotStore:  store,
			SlotReader: store,
			UserRepo:   userstore.NewPostgresStore(pool),
		}, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return Persistence{}, fmt.Errorf("connect redis: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return rdb.Close()
			},
		})
		store := slotstore.NewRedisStore(rdb)
		return Persistence{
			SlotStore:  store,
			SlotReader: store,
			UserRepo:   userstore.NewMemoryStore(),
		}, nil

	case config.StoreMemory:
		store := slotstore.NewMemoryStore()
		return Persistence{
			SlotStore:  store,
			SlotReader: store,
			UserRepo:   userstore.NewMemoryStore(),
		}, nil

	default:
		return Persistence{}, fmt.Errorf("unknown slot store %q", cfg.Slots.Store)
	}
}

// seedSlots populates the schedule on startup. Stores skip seeding when
// slots already exist, so restarts never reset booking state.
func seedSlots(lc fx.Lifecycle, cfg config.Config, store usecase.SlotStore, clk clock.Clock) {
	if !cfg.Slots.SeedOnStart {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			schedule := slot.DefaultSchedule(clk.Now(), cfg.Slots.SeedDays)
			if err := store.Seed(ctx, schedule); err != nil {
				return fmt.Errorf("seed slots: %w", err)
			}
			slog.Info("Slot schedule seeded", "days", cfg.Slots.SeedDays, "store", cfg.Slots.Store)
			return nil
		},
	})
}
