package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/amaumene/gomovies/internal/config"
	"github.com/amaumene/gomovies/internal/constants"
	"github.com/amaumene/gomovies/internal/handlers"
	"github.com/amaumene/gomovies/internal/middleware"
	"github.com/amaumene/gomovies/pkg/logger"
	"github.com/amaumene/gomovies/pkg/netutil"
)

func newRouter(cfg *config.Config, log logger.Logger, h *handlers.Handler) *gin.Engine {
	if logger.ParseLevel(cfg.LogLevel) != logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip())

	h.RegisterRoutes(r)
	return r
}

func runServe(parent context.Context, cfg *config.Config) error {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout)

	d := initialize(cfg, log)
	defer d.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, log, handlers.New(d.finder, cfg, log)),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	if cfg.TrendingRetentionDays > 0 {
		if err := d.container.Cleanup.Start(gctx); err != nil {
			return err
		}
	}

	g.Go(func() error {
		log.Infof("[App] starting HTTP server on port %s", cfg.Port)
		if url := netutil.LANURL(cfg.Port); url != "" {
			log.Infof("[App] reachable on the local network at %s", url)
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Infof("[App] shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	d.finder.Wait()
	if err != nil {
		log.Errorf("[App] server stopped: %v", err)
	}
	return err
}
