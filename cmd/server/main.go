package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/owgcode2202/todoapp/api/handler"
	"github.com/owgcode2202/todoapp/internal/config"
	"github.com/owgcode2202/todoapp/internal/infrastructure/monitor"
	pgInfra "github.com/owgcode2202/todoapp/internal/infrastructure/postgres"
	redisInfra "github.com/owgcode2202/todoapp/internal/infrastructure/redis"
	"github.com/owgcode2202/todoapp/internal/middleware"
	"github.com/owgcode2202/todoapp/internal/router"
	"github.com/owgcode2202/todoapp/internal/services/lifecycle"
	"github.com/owgcode2202/todoapp/pkg/httpcontext"
	"github.com/owgcode2202/todoapp/pkg/logger"
	"github.com/owgcode2202/todoapp/repository/postgres"
	redisRepo "github.com/owgcode2202/todoapp/repository/redis"
	authUC "github.com/owgcode2202/todoapp/usecase/auth"
	taskUC "github.com/owgcode2202/todoapp/usecase/task"
	"github.com/owgcode2202/todoapp/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.Session.TTL, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	templates := web.Templates()

	sessionOpts := middleware.Options{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		Timeout:    cfg.Context.RequestTimeout,
	}

	handlers := router.Handlers{
		Pages:  apiHandler.NewPageHandler(sessionOpts, authUseCase, ctxAdapter, zapLogger, templates),
		Auth:   apiHandler.NewAuthHandler(authUseCase, sessionOpts, ctxAdapter, zapLogger, templates),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger, templates),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.SessionAuth(sessionOpts, authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
