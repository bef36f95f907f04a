package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/hairhealth/api-contract-tests/internal/model"
)

// ElasticHook indexes one document per run, so that run history can be searched and
// charted next to the service's own logs.
type ElasticHook struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticHook(url, index string) (*ElasticHook, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
	if err != nil {
		return nil, fmt.Errorf("creating elasticsearch client: %w", err)
	}
	return &ElasticHook{client: client, index: index}, nil
}

func (h *ElasticHook) Name() string {
	return "elastic-search"
}

type runDocument struct {
	*model.Run
	DurationMS int64 `json:"durationMs"`
}

func (h *ElasticHook) RunFinished(ctx context.Context, run *model.Run) error {
	body, err := json.Marshal(runDocument{Run: run, DurationMS: run.DurationMS()})
	if err != nil {
		return fmt.Errorf("encoding run document: %w", err)
	}

	res, err := h.client.Index(h.index, bytes.NewReader(body), h.client.Index.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indexing run: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("indexing run: [%s] %s", res.Status(), detail)
	}
	return nil
}
