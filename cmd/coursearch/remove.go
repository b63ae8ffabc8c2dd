package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	searchindex "github.com/wynnteo/coursearch/internal/repository/index"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <course-id>",
	Short: "Remove a course document from the search backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid course id %q", args[0])
	}

	ctx := cmd.Context()

	boot, err := newBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer boot.close()

	indexRepo := searchindex.New(boot.store, boot.cfg.Embedding.Dimensions)
	removed, err := indexRepo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("remove course %d: %w", id, err)
	}
	if !removed {
		return fmt.Errorf("course %d is not indexed", id)
	}

	boot.logger.Info("Course removed from index", zap.Int64("course_id", id))
	return nil
}
