package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/SergeyBogomolovv/wholesale-order-service/docs"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/app"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/config"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/handler"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/middleware"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/repo"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/service"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/storage"
	"github.com/SergeyBogomolovv/wholesale-order-service/pkg/cache"
	"github.com/SergeyBogomolovv/wholesale-order-service/pkg/trm"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// @title           Wholesale Order Service API
// @version         1.0
// @description     Документация HTTP API
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := storage.Open(ctx, conf)
	panicIfErr("failed to open storage", err)
	defer db.Close()
	logger.Info("storage opened", slog.String("driver", conf.Storage.Driver))

	orderRepo := repo.NewSQLRepo(db)
	txManager := trm.NewManager(db)
	orderCache := newCache(logger, conf)

	numbers := service.NewNumberGenerator(orderRepo, conf.Orders.TimeZone)
	orderService := service.NewOrderService(logger, txManager, orderRepo, orderRepo, numbers, orderCache, conf.Orders)

	handler.RegisterMetrics(prometheus.DefaultRegisterer)
	middleware.RegisterMetrics(prometheus.DefaultRegisterer)
	cache.RegisterMetrics(prometheus.DefaultRegisterer)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(handler.NewHTTPHandler(logger, orderService))
	if conf.Kafka.Enabled {
		app.SetConsumers(handler.NewKafkaHandler(logger, conf.Kafka, orderService))
	}
	app.SetStarters(orderCache, cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity})

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

type startableCache interface {
	service.Cache
	Start(ctx context.Context) error
}

func newCache(logger *slog.Logger, conf config.Config) startableCache {
	switch conf.Cache.Driver {
	case "redis":
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{conf.Redis.Addr},
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		return cache.NewRedisCache(logger, client, conf.Redis.Prefix, conf.Cache.TTL)
	default:
		return cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	}
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
