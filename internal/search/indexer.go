package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	opensearch "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
	"github.com/opensearch-project/opensearch-go/v2/opensearchutil"

	"github.com/raphaelgruber/daskindex/internal/catalog"
)

// Indexer performs the index operations of a refresh run.
type Indexer struct {
	client *opensearch.Client
	logger *slog.Logger
}

// NewIndexer creates an Indexer on top of an OpenSearch client.
func NewIndexer(client *opensearch.Client, logger *slog.Logger) *Indexer {
	return &Indexer{
		client: client,
		logger: logger,
	}
}

// DeleteIndex deletes the named index. A missing index is reported as
// ErrIndexNotFound so callers can treat only that case as benign.
func (ix *Indexer) DeleteIndex(ctx context.Context, name string) error {
	res, err := opensearchapi.IndicesDeleteRequest{
		Index: []string{name},
	}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("delete index %q: %w", name, err)
	}
	defer res.Body.Close()

	if err := classifyResponse(res); err != nil {
		return fmt.Errorf("delete index %q: %w", name, err)
	}

	ix.logger.Debug("deleted index", "index", name)
	return nil
}

// BulkStats summarizes one bulk submission.
type BulkStats struct {
	Added  uint64
	Failed uint64
}

// BulkIndex submits all documents in one bulk pass, id = document id.
// Item-level failures are logged as they happen and surfaced as a single
// error at the end, so a run never reports success with documents missing.
func (ix *Indexer) BulkIndex(ctx context.Context, index string, docs []catalog.Document) (BulkStats, error) {
	// One worker: the refresh is a single sequential submission, not a
	// streaming pipeline.
	bi, err := opensearchutil.NewBulkIndexer(opensearchutil.BulkIndexerConfig{
		Client:     ix.client,
		Index:      index,
		NumWorkers: 1,
		OnError: func(_ context.Context, err error) {
			ix.logger.Error("bulk indexer error", "error", err)
		},
	})
	if err != nil {
		return BulkStats{}, fmt.Errorf("create bulk indexer: %w", err)
	}

	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			return BulkStats{}, fmt.Errorf("marshal document %q: %w", doc.ID(), err)
		}

		err = bi.Add(ctx, opensearchutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID(),
			Body:       bytes.NewReader(body),
			OnFailure: func(_ context.Context, item opensearchutil.BulkIndexerItem, res opensearchutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					ix.logger.Error("document rejected", "id", item.DocumentID, "error", err)
					return
				}
				ix.logger.Error("document rejected",
					"id", item.DocumentID,
					"status", res.Status,
					"type", res.Error.Type,
					"reason", res.Error.Reason,
				)
			},
		})
		if err != nil {
			return BulkStats{}, fmt.Errorf("enqueue document %q: %w", doc.ID(), err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return BulkStats{}, fmt.Errorf("flush bulk indexer: %w", err)
	}

	stats := bi.Stats()
	result := BulkStats{
		Added:  stats.NumAdded,
		Failed: stats.NumFailed,
	}
	if stats.NumFailed > 0 {
		return result, fmt.Errorf("bulk index %q: %d of %d documents failed", index, stats.NumFailed, len(docs))
	}

	return result, nil
}
