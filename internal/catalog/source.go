// internal/catalog/source.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Source loads a catalog from wherever it is kept.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

type BuiltinSource struct{}

func (BuiltinSource) Load(context.Context) (*Catalog, error) {
	return Builtin(), nil
}

type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) (*Catalog, error) {
	return LoadFile(s.Path)
}

const DefaultIndex = "card-profiles"

// maxCatalogSize bounds the single search request used to read the index.
const maxCatalogSize = 1000

// ElasticsearchSource reads card documents from an index, one card per document.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchSource(client *elasticsearch.Client, index string) *ElasticsearchSource {
	if index == "" {
		index = DefaultIndex
	}
	return &ElasticsearchSource{client: client, index: index}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchSource) Load(ctx context.Context) (*Catalog, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"size":  maxCatalogSize,
		"sort":  []interface{}{map[string]interface{}{"_doc": "asc"}},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", s.index, res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	cards := make([]Card, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		var card Card
		if err := json.Unmarshal(hit.Source, &card); err != nil {
			return nil, fmt.Errorf("decode card %s: %w", hit.ID, err)
		}
		if card.ID == "" {
			card.ID = hit.ID
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("index %s holds no cards", s.index)
	}

	doc, err := json.Marshal(document{Cards: cards})
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// Publish writes every card of the catalog into the index, keyed by card id.
func (s *ElasticsearchSource) Publish(ctx context.Context, c *Catalog) error {
	for _, card := range c.All() {
		body, err := json.Marshal(card)
		if err != nil {
			return err
		}

		req := esapi.IndexRequest{
			Index:      s.index,
			DocumentID: card.ID,
			Body:       bytes.NewReader(body),
			Refresh:    "wait_for",
		}
		res, err := req.Do(ctx, s.client)
		if err != nil {
			return fmt.Errorf("index card %s: %w", card.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index card %s: %s", card.ID, res.Status())
		}
	}
	return nil
}

// NewSource picks a source by kind: "builtin", "file" or "elasticsearch".
func NewSource(kind, path string, es *elasticsearch.Client, index string) (Source, error) {
	switch strings.ToLower(kind) {
	case "", "builtin":
		return BuiltinSource{}, nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("catalog source %q needs a path", kind)
		}
		return FileSource{Path: path}, nil
	case "elasticsearch":
		if es == nil {
			return nil, fmt.Errorf("catalog source %q needs an elasticsearch client", kind)
		}
		return NewElasticsearchSource(es, index), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", kind)
}
