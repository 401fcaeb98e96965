// Package ollama talks to a local Ollama inference server and, when asked,
// supervises an `ollama serve` process of its own.
package ollama

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/singleflight"

	pErrors "github.com/zhubert/scribe/internal/errors"
	"github.com/zhubert/scribe/internal/logger"
)

// Client wraps the Ollama API client with scribe's error taxonomy.
// Generate never streams: the whole response arrives in one piece.
type Client struct {
	api     *api.Client
	baseURL string
	probes  singleflight.Group
	log     *slog.Logger
}

// NewClient creates a Client for baseURL. httpClient may be nil, in which
// case http.DefaultClient is used; per-call deadlines come from contexts.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, pErrors.ConfigInvalid("invalid inference server URL: " + baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		api:     api.NewClient(parsed, httpClient),
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logger.WithComponent("ollama"),
	}, nil
}

// BaseURL returns the server address this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListModels returns the names of installed models (GET /api/tags).
// Concurrent callers share one in-flight request.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	v, err, shared := c.probes.Do("tags", func() (interface{}, error) {
		resp, err := c.api.List(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(resp.Models))
		for _, m := range resp.Models {
			names = append(names, m.Name)
		}
		return names, nil
	})
	if err != nil {
		return nil, c.classifyProbe(err)
	}
	if shared {
		c.log.Debug("probe shared with a concurrent caller")
	}
	names := v.([]string)
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// Generate sends prompt to model (POST /api/generate with stream=false) and
// returns the response text.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: &stream,
	}

	var sb strings.Builder
	err := c.api.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		c.log.Warn("generate failed", "model", model, "error", err)
		return "", c.classify(err, model)
	}

	c.log.Debug("generate finished", "model", model, "promptBytes", len(prompt), "responseBytes", sb.Len())
	return sb.String(), nil
}

// classifyProbe is classify for health checks, where a server that does not
// answer in time is treated as unreachable.
func (c *Client) classifyProbe(err error) error {
	classified := c.classify(err, "")
	if pErrors.Is(classified, pErrors.KindTimeout) {
		return pErrors.InferenceUnavailable(c.baseURL, err)
	}
	return classified
}

// classify maps transport and API failures onto the error taxonomy: no
// answer at all means the server is unavailable, while an answer carrying
// an error status is a failed request. A request that was sent but ran out
// of time is a timeout, which leaves availability alone.
func (c *Client) classify(err error, model string) error {
	var status api.StatusError
	if errors.As(err, &status) {
		return pErrors.InferenceRequestFailed(model, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return pErrors.InferenceTimeout(c.baseURL, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return pErrors.InferenceTimeout(c.baseURL, err)
		}
		return pErrors.InferenceUnavailable(c.baseURL, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return pErrors.InferenceUnavailable(c.baseURL, err)
	}

	return pErrors.InferenceRequestFailed(model, err)
}
