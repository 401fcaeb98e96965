package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	pErrors "github.com/zhubert/scribe/internal/errors"
	"github.com/zhubert/scribe/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

// fakeOllama serves the two endpoints scribe uses.
type fakeOllama struct {
	models     []string
	response   string
	status     int
	delay      time.Duration
	genDelay   time.Duration
	tagsHits   atomic.Int32
	lastPrompt string
	lastModel  string
	lastStream *bool
	mu         sync.Mutex
}

func (f *fakeOllama) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		f.tagsHits.Add(1)
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
		if r.Method != http.MethodGet {
			t.Errorf("tags method = %s, want GET", r.Method)
		}
		models := make([]map[string]any, 0, len(f.models))
		for _, name := range f.models {
			models = append(models, map[string]any{"name": name, "model": name})
		}
		json.NewEncoder(w).Encode(map[string]any{"models": models})
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("generate method = %s, want POST", r.Method)
		}
		var body struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream *bool  `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad generate body: %v", err)
		}
		f.mu.Lock()
		f.lastPrompt, f.lastModel, f.lastStream = body.Prompt, body.Model, body.Stream
		f.mu.Unlock()

		if f.genDelay > 0 {
			time.Sleep(f.genDelay)
		}
		if f.status != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			json.NewEncoder(w).Encode(map[string]any{"error": "model not found"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model":    body.Model,
			"response": f.response,
			"done":     true,
		})
	})
	return mux
}

func newFake(t *testing.T, f *fakeOllama) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClient_InvalidURL(t *testing.T) {
	if _, err := NewClient("not a url", nil); err == nil {
		t.Error("NewClient should reject URLs without scheme and host")
	}
}

func TestListModels(t *testing.T) {
	c := newFake(t, &fakeOllama{models: []string{"llama3.2:3b", "qwen2.5-coder:7b"}})

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 2 || models[0] != "llama3.2:3b" {
		t.Errorf("ListModels() = %v", models)
	}
}

func TestListModels_Empty(t *testing.T) {
	c := newFake(t, &fakeOllama{})

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 0 {
		t.Errorf("ListModels() = %v, want empty", models)
	}
}

func TestListModels_Timeout(t *testing.T) {
	c := newFake(t, &fakeOllama{delay: 300 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ListModels(ctx)
	if !pErrors.IsUnavailable(err) {
		t.Errorf("error = %v, want unavailable", err)
	}
}

func TestListModels_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.ListModels(context.Background())
	if !pErrors.Is(err, pErrors.KindUnavailable) {
		t.Errorf("error = %v, want KindUnavailable", err)
	}
}

func TestListModels_SharesConcurrentProbes(t *testing.T) {
	f := &fakeOllama{models: []string{"m"}, delay: 100 * time.Millisecond}
	c := newFake(t, f)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.ListModels(context.Background()); err != nil {
				t.Errorf("ListModels() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if hits := f.tagsHits.Load(); hits >= 5 {
		t.Errorf("expected concurrent probes to share requests, got %d hits", hits)
	}
}

func TestGenerate(t *testing.T) {
	f := &fakeOllama{response: "def add(a, b):\n    return a + b\n"}
	c := newFake(t, f)

	got, err := c.Generate(context.Background(), "llama3.2:3b", "Generate useful code:\nadd")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != f.response {
		t.Errorf("Generate() = %q, want %q", got, f.response)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastModel != "llama3.2:3b" || f.lastPrompt != "Generate useful code:\nadd" {
		t.Errorf("request = model %q prompt %q", f.lastModel, f.lastPrompt)
	}
	if f.lastStream == nil || *f.lastStream {
		t.Error("generate requests must set stream=false")
	}
}

func TestGenerate_TimeoutIsNotUnavailable(t *testing.T) {
	c := newFake(t, &fakeOllama{genDelay: 300 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Generate(ctx, "llama3.2:3b", "x")
	if !pErrors.Is(err, pErrors.KindTimeout) {
		t.Errorf("error = %v, want KindTimeout", err)
	}
	if pErrors.IsUnavailable(err) {
		t.Error("a generate that ran out of time must not mark the server unreachable")
	}
}

func TestGenerate_StatusErrorIsRequestFailure(t *testing.T) {
	c := newFake(t, &fakeOllama{status: http.StatusNotFound})

	_, err := c.Generate(context.Background(), "missing-model", "x")
	if !pErrors.Is(err, pErrors.KindInference) {
		t.Errorf("error = %v, want KindInference", err)
	}
	if pErrors.IsUnavailable(err) {
		t.Error("a reachable server answering with an error is not unavailable")
	}
}
