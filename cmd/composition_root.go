package cmd

import (
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "agromarket/internal/adapters/in/http"
	"agromarket/internal/adapters/out/postgres"
	"agromarket/internal/adapters/out/redis/notifier"
	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/ports"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	emitter    ports.NotificationEmitter
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, redisClient *redis.Client) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	emitter, err := notifier.NewRedisEmitter(redisClient)
	if err != nil {
		logger.Error("failed to create notification emitter", "error", err)
		os.Exit(1)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		emitter:    emitter,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.CreateGetBuyerOrdersQueryHandler(),
		c.CreateGetTakeableOrdersQueryHandler(),
		c.CreateGetAssignedOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.emitter, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.emitter, c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.emitter, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.emitter, c.logger)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBuyerOrdersQueryHandler() queries.GetBuyerOrdersQueryHandler {
	return queries.NewGetBuyerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTakeableOrdersQueryHandler() queries.GetTakeableOrdersQueryHandler {
	return queries.NewGetTakeableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignedOrdersQueryHandler() queries.GetAssignedOrdersQueryHandler {
	return queries.NewGetAssignedOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
