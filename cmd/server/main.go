package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/ministryflow/api/handler"
	"github.com/fastygo/ministryflow/internal/config"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/ministryflow/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/ministryflow/internal/infrastructure/redis"
	"github.com/fastygo/ministryflow/internal/middleware"
	"github.com/fastygo/ministryflow/internal/router"
	"github.com/fastygo/ministryflow/internal/services"
	"github.com/fastygo/ministryflow/internal/services/lifecycle"
	"github.com/fastygo/ministryflow/pkg/httpcontext"
	"github.com/fastygo/ministryflow/pkg/logger"
	"github.com/fastygo/ministryflow/repository"
	boltRepo "github.com/fastygo/ministryflow/repository/bolt"
	"github.com/fastygo/ministryflow/repository/postgres"
	redisRepo "github.com/fastygo/ministryflow/repository/redis"
	authUC "github.com/fastygo/ministryflow/usecase/auth"
	boardUC "github.com/fastygo/ministryflow/usecase/board"
	profileUC "github.com/fastygo/ministryflow/usecase/profile"
	taskUC "github.com/fastygo/ministryflow/usecase/task"
	teamUC "github.com/fastygo/ministryflow/usecase/team"
	viewUC "github.com/fastygo/ministryflow/usecase/view"
)

type repositories struct {
	users    repository.UserRepository
	teams    repository.TeamRepository
	boards   repository.BoardRepository
	tasks    repository.TaskRepository
	sessions repository.SessionRepository
	sweeper  repository.SessionSweeper
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
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
		store       *kvstore.Store
		pool        *pgxpool.Pool
		redisClient *redislib.Client
	)

	if cfg.UsesBolt() {
		store, err = kvstore.Open(cfg.Storage.Path)
		if err != nil {
			zapLogger.Fatal("failed to open store", zap.String("path", cfg.Storage.Path), zap.Error(err))
		}
		manager.Register("store", func(ctx context.Context) error {
			return store.Close()
		})
		zapLogger.Info("store opened", zap.String("path", cfg.Storage.Path))
	}

	if cfg.Storage.Driver == config.DriverPostgres {
		if err := pgInfra.RunMigrations(cfg.Database, cfg.Migrations, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
		pool, err = pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("postgres connection failed", zap.Error(err))
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pgInfra.Close(pool, zapLogger)
			return nil
		})
	}

	if cfg.Session.Store == config.DriverRedis {
		redisClient, err = redisInfra.NewClient(appCtx, cfg.Redis, zapLogger)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	repos := buildRepositories(cfg, store, pool, redisClient)

	mon := monitor.New(store, pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	if repos.sweeper != nil {
		sweeper := services.NewSessionSweeper(repos.sweeper, cfg.Session.SweepInterval, zapLogger)
		sweeper.Start()
		manager.Register("session_sweeper", func(ctx context.Context) error {
			sweeper.Stop(ctx)
			return nil
		})
	}

	authUseCase := authUC.New(repos.users, repos.sessions, authUC.Config{
		SessionTTL: cfg.Session.TTL,
		BcryptCost: cfg.Security.BcryptCost,
	}, zapLogger)
	profileUseCase := profileUC.New(repos.users, zapLogger)
	teamUseCase := teamUC.New(repos.teams, zapLogger)
	boardUseCase := boardUC.New(repos.boards, repos.tasks, zapLogger)
	taskUseCase := taskUC.New(repos.tasks, zapLogger)
	viewUseCase := viewUC.New(repos.tasks, zapLogger)

	if cfg.JWT.Secret == "" {
		zapLogger.Warn("JWT_SECRET is empty, tokens are signed with an empty key")
	}
	tokens := middleware.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer)
	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, tokens, ctxAdapter, zapLogger, cfg.Session.TTL),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Team:    apiHandler.NewTeamHandler(teamUseCase, ctxAdapter, zapLogger),
		Board:   apiHandler.NewBoardHandler(boardUseCase, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, boardUseCase, profileUseCase, ctxAdapter, zapLogger),
		View:    apiHandler.NewViewHandler(viewUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(tokens, authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("sessions", cfg.Session.Store),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

func buildRepositories(cfg *config.Config, store *kvstore.Store, pool *pgxpool.Pool, redisClient *redislib.Client) repositories {
	var repos repositories

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		repos.users = postgres.NewUserRepository(pool)
		repos.teams = postgres.NewTeamRepository(pool)
		repos.boards = postgres.NewBoardRepository(pool)
		repos.tasks = postgres.NewTaskRepository(pool)
	default:
		repos.users = boltRepo.NewUserRepository(store)
		repos.teams = boltRepo.NewTeamRepository(store)
		repos.boards = boltRepo.NewBoardRepository(store)
		repos.tasks = boltRepo.NewTaskRepository(store)
	}

	switch cfg.Session.Store {
	case config.DriverRedis:
		repos.sessions = redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)
	default:
		sessions := boltRepo.NewSessionRepository(store, cfg.Session.TTL)
		repos.sessions = sessions
		repos.sweeper = sessions
	}

	return repos
}
