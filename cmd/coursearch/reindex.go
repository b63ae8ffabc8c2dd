package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/wynnteo/coursearch/internal/logger"
	indexrepo "github.com/wynnteo/coursearch/internal/repository/catalog"
	searchindex "github.com/wynnteo/coursearch/internal/repository/index"
	indexinguc "github.com/wynnteo/coursearch/internal/usecase/indexing"
)

var reindexForce bool

func init() {
	reindexCmd.Flags().BoolVar(&reindexForce, "force", false,
		"re-embed courses whose indexed document is already current")
	rootCmd.AddCommand(reindexCmd)
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Index the course catalog into the search backend",
	Long: `reindex reads every course from the SQLite catalog, embeds its
name and description, and upserts the resulting documents. Courses whose
indexed document already matches the catalog's modification time are
skipped unless --force is given. Per-course failures are reported at the
end and do not abort the run.`,
	RunE: runReindex,
}

func runReindex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	boot, err := newBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer boot.close()

	cfg := boot.cfg
	logger := boot.logger
	ctx = logpkg.ContextWithLogger(ctx, logger)

	catalog, err := indexrepo.Open(cfg.Catalog.SQLitePath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer catalog.Close()

	indexRepo := searchindex.New(boot.store, cfg.Embedding.Dimensions)
	svc := indexinguc.New(catalog, indexRepo, boot.embedder, cfg.Embedding.Dimensions, cfg.Indexing.Workers, reindexForce)

	report, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("indexing run: %w", err)
	}

	for _, f := range report.Failures {
		logger.Warn("course not indexed", zap.Int64("course_id", f.CourseID), zap.Error(f.Err))
	}
	logger.Info("Reindex complete",
		zap.Int("total", report.Total),
		zap.Int("indexed", report.Indexed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d courses failed to index", report.Failed, report.Total)
	}
	return nil
}
