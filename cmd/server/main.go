package main

import (
	"log/slog"
	"net/http"
	"os"

	"review-rotation-service/internal/http/handlers"
	prh "review-rotation-service/internal/http/handlers/pr"
	teamh "review-rotation-service/internal/http/handlers/team"
	userh "review-rotation-service/internal/http/handlers/user"
	mw "review-rotation-service/internal/http/middleware"
	"review-rotation-service/internal/lib/config"
	"review-rotation-service/internal/lib/sl"
	"review-rotation-service/internal/repository/memory"
	"review-rotation-service/internal/repository/postgres"
	"review-rotation-service/internal/service"
	"review-rotation-service/internal/service/pr"
	"review-rotation-service/internal/service/team"
	"review-rotation-service/internal/service/user"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	log.Info("Starting Review Rotation Service",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Type),
	)

	var (
		trManager service.TransactionManager
		teamSvc   *team.TeamService
		userSvc   *user.UserService
		prSvc     *pr.PullRequestService
	)

	switch cfg.Storage.Type {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			log.Error("failed to establish connection with database", sl.Err(err))
			os.Exit(1)
		}

		if err := postgres.RunMigrations(db); err != nil {
			log.Error("failed to run migrations", sl.Err(err))
			os.Exit(1)
		}

		trManager = manager.Must(trmsqlx.NewDefaultFactory(db))

		teamRepo := postgres.NewTeamRepo(db, trmsqlx.DefaultCtxGetter)
		userRepo := postgres.NewUserRepo(db, trmsqlx.DefaultCtxGetter)
		prRepo := postgres.NewPullRequestRepo(db, trmsqlx.DefaultCtxGetter)

		teamSvc = team.NewTeamService(trManager, teamRepo, userRepo)
		userSvc = user.NewUserService(trManager, userRepo, prRepo)
		prSvc = pr.NewPullRequestService(trManager, prRepo, prRepo, userRepo,
			cfg.Assignment.MinReviewers, cfg.Assignment.MaxReviewers)

	default:
		store := memory.NewStore()
		trManager = store

		teamRepo := memory.NewTeamRepo(store)
		userRepo := memory.NewUserRepo(store)
		prRepo := memory.NewPullRequestRepo(store)

		teamSvc = team.NewTeamService(trManager, teamRepo, userRepo)
		userSvc = user.NewUserService(trManager, userRepo, prRepo)
		prSvc = pr.NewPullRequestService(trManager, prRepo, prRepo, userRepo,
			cfg.Assignment.MinReviewers, cfg.Assignment.MaxReviewers)
	}

	teamHandler := teamh.NewTeamHandler(log, teamSvc)
	userHandler := userh.NewUserHandler(log, userSvc)
	prHandler := prh.NewPrHandler(log, prSvc)

	auth := mw.NewAuth(cfg.Auth.AdminAPIKey, cfg.Auth.UserAPIKey)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mw.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	log.Info("starting http server", slog.String("address", cfg.HTTPServer.Address))

	// public methods
	router.Get("/health", handlers.Healthcheck())
	router.Handle("/metrics", promhttp.Handler())
	router.Post("/team/add", teamHandler.Add)

	// user methods
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Get("/team/get", teamHandler.Get)
		r.Get("/users/getReview", userHandler.GetReview)
	})

	// admin methods
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)

		r.Post("/team/deactivate", teamHandler.Deactivate)
		r.Post("/users/setIsActive", userHandler.SetIsActive)
		r.Post("/pullRequest/create", prHandler.Create)
		r.Post("/pullRequest/merge", prHandler.Merge)
		r.Post("/pullRequest/reassign", prHandler.Reassign)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Error("failed to start http server", sl.Err(err))
		os.Exit(1)
	}

	log.Error("http server stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
