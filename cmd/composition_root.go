package cmd

import (
	"context"
	"log/slog"
	"os"

	"quickbite/internal/adapters/in/http"
	"quickbite/internal/adapters/out/eventbus"
	"quickbite/internal/adapters/out/kafkafeed"
	"quickbite/internal/adapters/out/notifier"
	"quickbite/internal/adapters/out/postgres"
	"quickbite/internal/adapters/out/postgres/restaurantrepo"
	"quickbite/internal/adapters/out/redisbus"
	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/application/usecases/queries"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
	"quickbite/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	bus        ports.EventBus
	notifier   ports.Notifier
	feed       ports.LifecycleFeed
	directory  ports.RestaurantDirectory
	planner    services.DispatchPlanner
	board      *services.OfferBoard
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var bus ports.EventBus
	if configs.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		bus = redisbus.NewRedisBus(client, logger)
	} else {
		bus = eventbus.NewInProcessBus(logger)
	}

	var feed ports.LifecycleFeed = noopLifecycleFeed{}
	if configs.KafkaHost != "" {
		feed = kafkafeed.NewFeed([]string{configs.KafkaHost}, configs.KafkaOrderChangedTopic, logger)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		bus:        bus,
		notifier:   notifier.NewSlogNotifier(logger),
		feed:       feed,
		directory:  restaurantrepo.NewGormRestaurantDirectory(gormDB),
		planner:    services.NewDispatchPlanner(),
		board:      services.NewOfferBoard(),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// Close releases outbound resources. Pending lifecycle events are flushed
// before the Kafka writer shuts down.
func (c *CompositionRoot) Close() error {
	return c.feed.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderWalletUoWFactory = FuncOrderWalletUoWFactory(func() commands.OrderWalletUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.bus, c.feed)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.bus, c.feed)
}

func (c *CompositionRoot) CreateStartPreparingCommandHandler() commands.StartPreparingCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartPreparingCommandHandler(f, c.bus, c.feed)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, c.directory, c.planner, c.board, c.bus, c.notifier)
}

func (c *CompositionRoot) CreateRequestRiderCommandHandler() commands.RequestRiderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestRiderCommandHandler(f, c.CreateDispatchOrderCommandHandler(), c.bus, c.feed, c.logger)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOfferCommandHandler(f, c.board, c.bus, c.notifier, c.feed)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderWalletUoWFactory = FuncOrderWalletUoWFactory(func() commands.OrderWalletUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.board, c.bus, c.feed)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.OrderWalletUoWFactory = FuncOrderWalletUoWFactory(func() commands.OrderWalletUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.bus, c.notifier, c.feed)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterCourierCommandHandler() commands.RegisterCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateSweepDispatchCommandHandler() commands.SweepDispatchCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepDispatchCommandHandler(f, c.CreateDispatchOrderCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletBalanceQueryHandler() queries.GetWalletBalanceQueryHandler {
	return queries.NewGetWalletBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletTransactionsQueryHandler() queries.GetWalletTransactionsQueryHandler {
	return queries.NewGetWalletTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreateStartPreparingCommandHandler(),
		c.CreateRequestRiderCommandHandler(),
		c.CreateAcceptOfferCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateRateOrderCommandHandler(),
		c.CreateRegisterCourierCommandHandler(),
		c.CreateUpdateCourierLocationCommandHandler(),
		c.CreateSetCourierAvailabilityCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetWalletBalanceQueryHandler(),
		c.CreateGetWalletTransactionsQueryHandler(),
		c.bus,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepDispatchCommandHandler(), c.logger)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderWalletUoWFactory func() commands.OrderWalletUoW

func (f FuncOrderWalletUoWFactory) Create() commands.OrderWalletUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// noopLifecycleFeed stands in when no Kafka broker is configured.
type noopLifecycleFeed struct{}

func (noopLifecycleFeed) Publish(context.Context, kernel.UUID, string, any) {}

func (noopLifecycleFeed) Close() error { return nil }
