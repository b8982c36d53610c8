package cli

import (
	"context"

	"clubcine-quiz/internal/config"
	pgloader "clubcine-quiz/internal/infra/postgres"
	infraredis "clubcine-quiz/internal/infra/redis"
	"clubcine-quiz/internal/infra/resource"
	"clubcine-quiz/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewImportCmd loads a JSON or YAML question document into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a question document into Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, args[0], replace)
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "remove existing questions before importing")
	return cmd
}

func runImport(ctx context.Context, configPath, file string, replace bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	questions, err := resource.NewFileLoader(file).LoadQuestions(ctx)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}

	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := pgloader.NewQuestionWriter(db).Import(ctx, questions, replace)
	if err != nil {
		return err
	}
	log.Info("questions imported", zap.String("file", file), zap.Int("count", n), zap.Bool("replace", replace))

	if client := newRedisClient(cfg); client != nil {
		defer client.Close()
		if err := infraredis.DropQuestions(ctx, client, postgresQuestionSource); err != nil {
			log.Warn("cached question set not dropped", zap.Error(err))
		}
	}
	return nil
}
