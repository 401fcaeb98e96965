package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/scribe/internal/config"
	pErrors "github.com/zhubert/scribe/internal/errors"
	"github.com/zhubert/scribe/internal/ollama"
)

type staticProber struct {
	models []string
	err    error
}

func (p staticProber) ListModels(ctx context.Context) ([]string, error) {
	return p.models, p.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestListModels(t *testing.T) {
	tests := []struct {
		name    string
		prober  staticProber
		want    []string
		wantErr bool
	}{
		{
			name:   "configured model starred",
			prober: staticProber{models: []string{"llama3.2:3b", "qwen2.5-coder"}},
			want:   []string{"* llama3.2:3b", "  qwen2.5-coder"},
		},
		{
			name:   "configured model missing",
			prober: staticProber{models: []string{"qwen2.5-coder"}},
			want:   []string{"  qwen2.5-coder", "ollama pull llama3.2:3b"},
		},
		{
			name:   "no models",
			prober: staticProber{},
			want:   []string{"No models installed. Run: ollama pull llama3.2:3b"},
		},
		{
			name:    "unreachable",
			prober:  staticProber{err: pErrors.InferenceUnavailable("http://localhost:11434", nil)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.SetModel(config.DefaultModel)

			var out bytes.Buffer
			err := listModels(context.Background(), &out, cfg, tt.prober)
			if (err != nil) != tt.wantErr {
				t.Fatalf("listModels() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output %q missing %q", out.String(), w)
				}
			}
		})
	}
}

func TestListModels_AgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{{"name": "llama3.2:3b"}},
		})
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.SetBaseURL(srv.URL)
	cfg.SetModel(config.DefaultModel)
	client, err := ollama.NewClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := listModels(context.Background(), &out, cfg, client); err != nil {
		t.Fatalf("listModels() error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "* llama3.2:3b" {
		t.Errorf("output = %q", out.String())
	}
}
