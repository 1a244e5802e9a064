package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/tasklight/backend/api/handler"
	"github.com/tasklight/backend/internal/config"
	boltInfra "github.com/tasklight/backend/internal/infrastructure/bolt"
	"github.com/tasklight/backend/internal/infrastructure/monitor"
	pgInfra "github.com/tasklight/backend/internal/infrastructure/postgres"
	redisInfra "github.com/tasklight/backend/internal/infrastructure/redis"
	"github.com/tasklight/backend/internal/metrics"
	"github.com/tasklight/backend/internal/middleware"
	"github.com/tasklight/backend/internal/router"
	"github.com/tasklight/backend/internal/services"
	"github.com/tasklight/backend/internal/services/lifecycle"
	"github.com/tasklight/backend/pkg/httpcontext"
	"github.com/tasklight/backend/pkg/logger"
	"github.com/tasklight/backend/repository"
	boltRepo "github.com/tasklight/backend/repository/bolt"
	fileRepo "github.com/tasklight/backend/repository/file"
	memoryRepo "github.com/tasklight/backend/repository/memory"
	pgRepo "github.com/tasklight/backend/repository/postgres"
	redisRepo "github.com/tasklight/backend/repository/redis"
	accountUC "github.com/tasklight/backend/usecase/account"
	authUC "github.com/tasklight/backend/usecase/auth"
	taskUC "github.com/tasklight/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		FilePath:   cfg.Logger.FilePath,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	var (
		userRepo repository.UserRepository
		taskRepo repository.TaskRepository
		probes   []monitor.Probe
	)

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
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
		userRepo = pgRepo.NewUserRepository(pool)
		taskRepo = pgRepo.NewTaskRepository(pool)
		probes = append(probes, monitor.Probe{Name: "postgres", Check: pool.Ping})

	case config.BackendBolt:
		store, err := boltInfra.Open(cfg.Storage.BoltPath, boltRepo.UsersBucket, boltRepo.TasksBucket)
		if err != nil {
			zapLogger.Fatal("failed to open bolt store", zap.Error(err))
		}
		manager.Register("bolt", func(ctx context.Context) error {
			return store.Close()
		})
		userRepo = boltRepo.NewUserRepository(store)
		taskRepo = boltRepo.NewTaskRepository(store)
		probes = append(probes, monitor.Probe{Name: "bolt", Check: func(context.Context) error { return store.Ping() }})

	default:
		store, err := fileRepo.NewStore(cfg.Storage.DataDir)
		if err != nil {
			zapLogger.Fatal("failed to open data directory", zap.Error(err))
		}
		userRepo = fileRepo.NewUserRepository(store)
		taskRepo = fileRepo.NewTaskRepository(store)
		probes = append(probes, monitor.Probe{Name: "storage", Check: func(context.Context) error { return store.Ping() }})
	}

	var sessionRepo repository.SessionRepository
	switch cfg.Session.Backend {
	case config.SessionRedis:
		redisClient, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		sessionRepo = redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)
		probes = append(probes, monitor.Probe{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})

	default:
		sessions := memoryRepo.NewSessionRepository()
		sessionRepo = sessions

		janitor := services.NewSessionJanitor(sessions, cfg.Session.SweepInterval, zapLogger)
		janitor.Start()
		manager.Register("session_janitor", func(ctx context.Context) error {
			janitor.Stop(ctx)
			return nil
		})
	}

	mon := monitor.New(probes, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	accountUseCase := accountUC.New(userRepo, zapLogger)
	authUseCase := authUC.New(sessionRepo, cfg.Session.TTL, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	cookie := apiHandler.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	}

	handlers := router.Handlers{
		Pages:   apiHandler.NewPageHandler(authUseCase, cfg.Pages.Dir, cfg.Session.CookieName, ctxAdapter, zapLogger),
		Account: apiHandler.NewAccountHandler(accountUseCase, ctxAdapter, zapLogger),
		Session: apiHandler.NewSessionHandler(accountUseCase, authUseCase, cookie, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.SessionAuth(authUseCase, cfg.Session.CookieName, zapLogger)
	r := router.New(handlers, authMiddleware)

	handler := r.Handler
	if cfg.Metrics.Enabled {
		m := metrics.New(cfg.AppName)
		r.GET("/metrics", m.Handler())
		handler = m.Middleware(r.Handler)
	}

	server := &fasthttp.Server{
		Handler:      handler,
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
