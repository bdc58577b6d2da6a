package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/tablecraft/restaurant-admin/internal/menu"
	"github.com/tablecraft/restaurant-admin/internal/mongo"
	"github.com/tablecraft/restaurant-admin/internal/order"
)

const (
	appNamespace = "ADMIN"
	appName      = "restaurant-admin"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	baseRepo := mongo.NewBaseRepo(config, logger)
	if err := baseRepo.Start(ctx); err != nil {
		log.Fatalf("%s(%s) cannot start base repository: %v", appName, appVersion, err)
	}

	db := baseRepo.GetDatabase()
	if db == nil {
		log.Fatalf("%s(%s) cannot initialize repository database: %v", appName, appVersion, errors.New("repository database is nil"))
	}

	menuItemRepo := mongo.NewMenuItemRepo(db)
	orderRepo := mongo.NewOrderRepo(db)

	menuHandler := menu.NewHandler(menuItemRepo, config, logger)
	orderHandler := order.NewHandler(orderRepo, menuItemRepo, config, logger)

	indexHooks := apt.LifecycleHooks{
		OnStart: func(ctx context.Context) error {
			if err := menuItemRepo.EnsureIndexes(ctx); err != nil {
				return err
			}
			return orderRepo.EnsureIndexes(ctx)
		},
	}

	lifecycles := []interface{}{
		apt.LifecycleHooks{OnStop: baseRepo.Stop},
		indexHooks,
	}

	demoEnabled, _ := config.GetString("seeding.demo")
	if demoEnabled == "true" {
		logger.Info("Demo seeding enabled")
		lifecycles = append(lifecycles, apt.LifecycleHooks{
			OnStart: menu.SeedingFunc(appName, baseRepo.GetDatabase, logger),
		})
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", menuHandler, orderHandler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		_ = baseRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
