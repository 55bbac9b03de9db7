package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/daskindex/internal/awsenv"
	"github.com/raphaelgruber/daskindex/internal/catalog"
	"github.com/raphaelgruber/daskindex/internal/metrics"
	"github.com/raphaelgruber/daskindex/internal/search"
)

var (
	reindexFile   string
	reindexRegion string
	reindexStats  bool
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the OpenSearch file catalog from a file list",
	Long: `Rebuild the file catalog index from a local newline-delimited file list.

The pipeline is strictly sequential and fail-fast: resolve the worker's
region and cross-region parameters, build a signed client, read the file
list, delete the bucket-named index, and bulk-submit one document per
file. A missing index is the only deletion failure the run tolerates.

Examples:
  daskindex reindex
  daskindex reindex --file /data/fileToWriteToOpenSearch.txt
  daskindex reindex --region eu-west-1 --stats`,
	RunE: runReindex,
}

func init() {
	reindexCmd.Flags().StringVarP(&reindexFile, "file", "f", "", "file list to index (default from config)")
	reindexCmd.Flags().StringVarP(&reindexRegion, "region", "r", "", "local region override (skips instance metadata)")
	reindexCmd.Flags().BoolVar(&reindexStats, "stats", false, "print run statistics on completion")
}

func runReindex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	collector := metrics.NewCollector()

	if reindexFile != "" {
		cfg.InputFile = reindexFile
	}
	if reindexRegion != "" {
		cfg.Region = reindexRegion
	}

	stop := collector.Time(metrics.OpResolveEnv)
	env, awsCfg, err := awsenv.NewResolver(cfg, logger).Resolve(ctx)
	stop()
	if err != nil {
		return fmt.Errorf("resolve environment: %w", err)
	}

	client, err := search.NewClient(env, awsCfg)
	if err != nil {
		return fmt.Errorf("build search client: %w", err)
	}
	indexer := search.NewIndexer(client, logger)

	stop = collector.Time(metrics.OpReadList)
	paths, err := catalog.ReadFileList(cfg.InputFile)
	stop()
	if err != nil {
		return fmt.Errorf("read file list: %w", err)
	}
	docs := catalog.BuildDocuments(paths, env.Bucket, env.LocalRegion)
	logger.Info("built catalog documents", "file", cfg.InputFile, "documents", len(docs))

	// Clear out the previous catalog. Only "index absent" is benign here;
	// permission or transport failures abort before the bulk submission.
	stop = collector.Time(metrics.OpDeleteIndex)
	err = indexer.DeleteIndex(ctx, env.Bucket)
	stop()
	if errors.Is(err, search.ErrIndexNotFound) {
		logger.Info("index does not currently exist", "index", env.Bucket)
	} else if err != nil {
		return err
	}

	fmt.Println("Starting Bulk Upload to OpenSearch")
	logger.Info("starting bulk upload", "index", env.Bucket, "documents", len(docs))

	begin := time.Now()
	stats, err := indexer.BulkIndex(ctx, env.Bucket, docs)
	collector.RecordItems(metrics.OpBulkIndex, time.Since(begin), int64(stats.Added))
	if err != nil {
		return err
	}

	fmt.Println("Bulk Done")
	logger.Info("bulk upload complete", "index", env.Bucket, "added", stats.Added)

	if reindexStats {
		fmt.Print(collector.Snapshot())
	}

	return nil
}
