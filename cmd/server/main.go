package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/handler"
	"github.com/iliyamo/cinema-box-office/internal/logging"
	"github.com/iliyamo/cinema-box-office/internal/middleware"
	"github.com/iliyamo/cinema-box-office/internal/notify"
	"github.com/iliyamo/cinema-box-office/internal/queue"
	"github.com/iliyamo/cinema-box-office/internal/router"
	"github.com/iliyamo/cinema-box-office/internal/service"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Env, cfg.LogLevel)

	svc := service.New(cfg.BcryptCost, log)
	svc.SubscribeDefaults(log)
	if cfg.SeedData {
		if err := svc.Seed(); err != nil {
			log.WithError(err).Fatal("seed failed")
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unreachable; rate limiting and response cache disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}
	purger := middleware.NewCachePurger(cfg.Cache, rdb, log.WithField("component", "cache"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Broker.Enabled {
		svc.Bus.Subscribe("broker", notify.BrokerForwarder{
			Pub:     queue.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue),
			Timeout: 5 * time.Second,
		})
		consumer := &queue.Consumer{
			URL:     cfg.Broker.URL,
			Queue:   cfg.Broker.Queue,
			LogPath: cfg.Broker.BookingLog,
			Log:     log.WithField("component", "booking-consumer"),
		}
		g.Go(func() error { return consumer.Run(ctx) })
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log.WithField("component", "http")))
	e.Use(middleware.NewTokenBucket(cfg.RateLimit, rdb, log.WithField("component", "ratelimit")))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, svc.Accounts))
	router.RegisterPublic(e, handler.NewPublicHandler(svc.Catalog, svc.Reviews), middleware.NewRedisCache(cfg.Cache, rdb))
	router.RegisterCustomer(e, handler.NewCustomerHandler(svc.Booking, svc.Accounts, svc.Reviews, purger), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(svc.Catalog, purger), cfg.JWTSecret)

	addr := ":" + cfg.Port
	g.Go(func() error {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server stopped")
}
