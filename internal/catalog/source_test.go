package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIndex serves just enough of the search and index APIs for one index.
type fakeIndex struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
	ids  []string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[string]json.RawMessage{}}
}

func (f *fakeIndex) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasSuffix(r.URL.Path, "/_search"):
		hits := make([]map[string]interface{}, 0, len(f.ids))
		for _, id := range f.ids {
			hits = append(hits, map[string]interface{}{"_id": id, "_source": f.docs[id]})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{"hits": hits},
		})
	case strings.Contains(r.URL.Path, "/_doc/"):
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		body, _ := io.ReadAll(r.Body)
		if _, exists := f.docs[id]; !exists {
			f.ids = append(f.ids, id)
		}
		f.docs[id] = body
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}
}

func newTestClient(t *testing.T, handler http.Handler) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchSource_PublishAndLoad(t *testing.T) {
	index := newFakeIndex()
	source := NewElasticsearchSource(newTestClient(t, index), "")

	subset := Builtin().Subset([]string{"costco-anywhere-visa-citi", "citi-strata"})
	require.NoError(t, source.Publish(context.Background(), subset))
	assert.Len(t, index.ids, 2)

	loaded, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, subset.All(), loaded.All())
}

func TestElasticsearchSource_EmptyIndex(t *testing.T) {
	source := NewElasticsearchSource(newTestClient(t, newFakeIndex()), "cards")

	_, err := source.Load(context.Background())
	assert.ErrorContains(t, err, "holds no cards")
}

func TestElasticsearchSource_SearchError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"}}`))
	})
	source := NewElasticsearchSource(newTestClient(t, handler), "cards")

	_, err := source.Load(context.Background())
	assert.ErrorContains(t, err, "404")
}

func TestNewSource(t *testing.T) {
	s, err := NewSource("", "", nil, "")
	require.NoError(t, err)
	assert.IsType(t, BuiltinSource{}, s)

	s, err = NewSource("file", "/etc/cards.json", nil, "")
	require.NoError(t, err)
	assert.Equal(t, FileSource{Path: "/etc/cards.json"}, s)

	_, err = NewSource("file", "", nil, "")
	assert.Error(t, err)

	_, err = NewSource("elasticsearch", "", nil, "")
	assert.Error(t, err)

	_, err = NewSource("s3", "", nil, "")
	assert.ErrorContains(t, err, "unknown catalog source")

	c, err := BuiltinSource{}.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, Builtin(), c)
}
