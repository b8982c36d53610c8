package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"clubcine-quiz/internal/app"
	"clubcine-quiz/internal/config"
	"clubcine-quiz/internal/domain"
	"clubcine-quiz/internal/infra/memory"
	pgloader "clubcine-quiz/internal/infra/postgres"
	infraredis "clubcine-quiz/internal/infra/redis"
	"clubcine-quiz/internal/infra/resource"
	"clubcine-quiz/internal/logger"
	transport "clubcine-quiz/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultQuestionSource  = "data/questions.json"
	postgresQuestionSource = "postgres:questions"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	redisClient := newRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	loader, source := questionLoader(cfg, pool)
	if redisClient != nil {
		cacheTTL := config.DurationOr(cfg.Quiz.CacheTTL, 10*time.Minute)
		loader = infraredis.NewQuestionCache(redisClient, loader, source, cacheTTL, log)
	}
	bank := memory.NewQuestionBank(loader, source, log)
	if err := bank.Load(ctx); err != nil {
		// stay up: rounds report the load error until a reload succeeds
		log.Error("questions unavailable", zap.Error(err))
	}

	var sessions app.SessionRepository
	var themes app.ThemeStore
	if redisClient != nil {
		sessions = infraredis.NewSessionStore(redisClient, config.DurationOr(cfg.Redis.TTL, 30*time.Minute))
		themes = infraredis.NewThemeStore(redisClient)
	} else {
		sessions = memory.NewSessionStore()
		themes = memory.NewThemeStore()
	}

	fallbackTheme, err := domain.ParseTheme(cfg.Theme.Default)
	if err != nil {
		fallbackTheme = domain.ThemeLight
	}

	service := app.NewQuizService(bank, sessions, cfg.Quiz.QuestionsPerRound, log)
	themeService := app.NewThemeService(themes, fallbackTheme)
	api := transport.NewAPIHandler(service, themeService, bank, log)

	mux := http.NewServeMux()
	api.Register(mux, transport.NewWSHandler(service, log))

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  config.DurationOr(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.DurationOr(cfg.Server.WriteTimeout, 15*time.Second),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting quiz service", zap.String("addr", server.Addr), zap.String("questions", source))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// questionLoader picks the question resource: Postgres when configured, else an
// http(s) URL or a local file named by quiz.source.
// newRedisClient returns nil when Redis is not configured.
func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func questionLoader(cfg config.Config, pool *pgxpool.Pool) (memory.QuestionLoader, string) {
	if pool != nil {
		return pgloader.NewQuestionLoader(pool), postgresQuestionSource
	}
	source := cfg.Quiz.Source
	if source == "" {
		source = defaultQuestionSource
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return resource.NewHTTPLoader(source, config.DurationOr(cfg.Quiz.FetchTimeout, 10*time.Second)), source
	}
	return resource.NewFileLoader(source), source
}
