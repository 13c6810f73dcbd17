package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/justestif/go-mindcanvas/internal/normalize"
)

// categoryServer replies per category and records the probe order.
type categoryServer struct {
	replies map[string]string
	status  map[string]int

	mu     sync.Mutex
	probed []string
	count  atomic.Int32
}

func (s *categoryServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.count.Add(1)
	category := r.URL.Query().Get("category")

	s.mu.Lock()
	s.probed = append(s.probed, category)
	s.mu.Unlock()

	if code, ok := s.status[category]; ok {
		w.WriteHeader(code)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	reply, ok := s.replies[category]
	if !ok {
		reply = `[]`
	}
	_, _ = w.Write([]byte(reply))
}

func newTestClient(server *httptest.Server, key string) *Client {
	return &Client{apiKey: key, httpClient: server.Client(), baseURL: server.URL}
}

func TestProbe_StopsAtFirstSuccess(t *testing.T) {
	backend := &categoryServer{replies: map[string]string{
		"dreams":        `[]`,
		"inspirational": `[{"quote":"Believe you can and you're halfway there.","author":"Theodore Roosevelt","category":"inspirational"}]`,
		"life":          `[{"quote":"should never be reached","author":"nobody"}]`,
	}}
	server := httptest.NewServer(backend)
	defer server.Close()

	result, requests := newTestClient(server, "key").Probe(context.Background(), []string{"dreams", "inspirational", "life"})

	if result.Status != normalize.StatusOK {
		t.Fatalf("Status = %v, want ok (err %v)", result.Status, result.Err)
	}
	want := normalize.Quote{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt", Category: "inspirational"}
	if result.Value != want {
		t.Errorf("Value = %+v, want %+v", result.Value, want)
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
	if backend.count.Load() != 2 {
		t.Errorf("server saw %d requests, want 2", backend.count.Load())
	}
	if len(backend.probed) != 2 || backend.probed[0] != "dreams" || backend.probed[1] != "inspirational" {
		t.Errorf("probe order = %v, want [dreams inspirational]", backend.probed)
	}
}

func TestProbe_AllEmpty(t *testing.T) {
	backend := &categoryServer{}
	server := httptest.NewServer(backend)
	defer server.Close()

	result, requests := newTestClient(server, "key").Probe(context.Background(), []string{"dreams", "inspirational", "life"})

	if result.Status != normalize.StatusNotFound {
		t.Errorf("Status = %v, want not_found", result.Status)
	}
	if requests != 3 {
		t.Errorf("requests = %d, want 3", requests)
	}
}

func TestProbe_ErrorStopsProbing(t *testing.T) {
	backend := &categoryServer{status: map[string]int{"dreams": http.StatusInternalServerError}}
	server := httptest.NewServer(backend)
	defer server.Close()

	result, requests := newTestClient(server, "key").Probe(context.Background(), []string{"dreams", "life"})

	if result.Status != normalize.StatusProviderError {
		t.Errorf("Status = %v, want provider_error", result.Status)
	}
	if result.Err == nil {
		t.Error("Err = nil, want upstream error")
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestProbe_MalformedStopsProbing(t *testing.T) {
	backend := &categoryServer{replies: map[string]string{"dreams": `{"error":"Invalid category"}`}}
	server := httptest.NewServer(backend)
	defer server.Close()

	result, requests := newTestClient(server, "key").Probe(context.Background(), []string{"dreams", "life"})

	if result.Status != normalize.StatusProviderError || requests != 1 {
		t.Errorf("Status = %v requests = %d, want provider_error after 1 request", result.Status, requests)
	}
}

func TestProbe_MissingKeyMakesNoRequest(t *testing.T) {
	backend := &categoryServer{}
	server := httptest.NewServer(backend)
	defer server.Close()

	result, requests := newTestClient(server, "").Probe(context.Background(), nil)

	if result.Status != normalize.StatusNotConfigured {
		t.Errorf("Status = %v, want not_configured", result.Status)
	}
	if requests != 0 || backend.count.Load() != 0 {
		t.Errorf("requests = %d, server saw %d; want 0", requests, backend.count.Load())
	}
}

func TestProbe_SendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		_, _ = w.Write([]byte(`[{"quote":"q","author":"a"}]`))
	}))
	defer server.Close()

	result, _ := newTestClient(server, "ninja").Probe(context.Background(), []string{"dreams"})

	if gotKey != "ninja" {
		t.Errorf("X-Api-Key = %q, want ninja", gotKey)
	}
	if result.Value.Category != "dreams" {
		t.Errorf("Category = %q, want the probed category", result.Value.Category)
	}
}

func TestProbe_DefaultCategories(t *testing.T) {
	backend := &categoryServer{}
	server := httptest.NewServer(backend)
	defer server.Close()

	_, requests := newTestClient(server, "key").Probe(context.Background(), nil)
	if requests != len(DefaultCategories) {
		t.Errorf("requests = %d, want %d", requests, len(DefaultCategories))
	}
}
