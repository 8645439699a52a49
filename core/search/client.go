package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
)

// Index is the subset of search index operations the repositories consume.
// Implementations must treat documents as disposable projections: any document
// can be overwritten wholesale by a resync at any time.
type Index interface {
	// AddDocuments upserts full documents.
	AddDocuments(ctx context.Context, docs any) error
	// UpdateDocuments applies partial documents; absent fields are left as-is.
	UpdateDocuments(ctx context.Context, docs any) error
	// Search runs a query with the given pagination, filter and sort.
	Search(ctx context.Context, query string, opts Options) (*Result, error)
}

// Options carries pagination, filtering and sorting for a search call.
type Options struct {
	Offset int64
	Limit  int64
	// Filter is a textual boolean predicate, built via Filter to keep
	// caller input escaped.
	Filter string
	// Sort is an ordered list of "field direction" strings.
	Sort []string
}

// Result is a page of raw hits plus the engine's total estimate.
type Result struct {
	Hits           []json.RawMessage
	EstimatedTotal int64
}

// Client wraps the Meilisearch service manager.
type Client struct {
	manager meilisearch.ServiceManager
}

// NewClient creates a Meilisearch client from the configuration. The
// underlying client connects lazily; failures surface on first use.
func NewClient(cfg Config) *Client {
	opts := []meilisearch.Option{}
	if cfg.APIKey != "" {
		opts = append(opts, meilisearch.WithAPIKey(cfg.APIKey))
	}
	return &Client{manager: meilisearch.New(cfg.Host, opts...)}
}

// Index returns a handle for the named index.
func (c *Client) Index(name string) Index {
	return &meiliIndex{index: c.manager.Index(name)}
}

type meiliIndex struct {
	index meilisearch.IndexManager
}

func (m *meiliIndex) AddDocuments(ctx context.Context, docs any) error {
	if _, err := m.index.AddDocumentsWithContext(ctx, docs); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

func (m *meiliIndex) UpdateDocuments(ctx context.Context, docs any) error {
	if _, err := m.index.UpdateDocumentsWithContext(ctx, docs); err != nil {
		return fmt.Errorf("failed to update documents: %w", err)
	}
	return nil
}

func (m *meiliIndex) Search(ctx context.Context, query string, opts Options) (*Result, error) {
	res, err := m.index.SearchWithContext(ctx, query, &meilisearch.SearchRequest{
		Offset: opts.Offset,
		Limit:  opts.Limit,
		Filter: opts.Filter,
		Sort:   opts.Sort,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]json.RawMessage, 0, len(res.Hits))
	for _, hit := range res.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode hit: %w", err)
		}
		hits = append(hits, raw)
	}

	return &Result{
		Hits:           hits,
		EstimatedTotal: res.EstimatedTotalHits,
	}, nil
}
