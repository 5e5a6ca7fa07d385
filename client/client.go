// Package client hosts the provider registry and the generation
// orchestration entry point.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/davinci-studio/imagine/internal/logging"
	"github.com/davinci-studio/imagine/models"
)

// DefaultTimeout bounds a single adapter call. The vendor APIs have no
// documented worst case, so this is deliberately generous.
const DefaultTimeout = 60 * time.Second

// GenerateInput is the raw, weakly-typed caller input before normalization.
type GenerateInput struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	Style          string `json:"style,omitempty"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
}

// Client turns raw caller input into a GenerationResponse. It owns no request
// state; concurrent Generate calls are independent and need no coordination.
type Client struct {
	registry      *Registry
	logger        logging.Logger
	timeout       time.Duration
	limiter       *rate.Limiter
	maxConcurrent int
}

// New creates a Client over an already-composed registry.
func New(registry *Registry, options ...Option) *Client {
	c := &Client{
		registry:      registry,
		logger:        logging.NewDefaultLogger(),
		timeout:       DefaultTimeout,
		maxConcurrent: 4,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Registry exposes the underlying catalog for discovery queries.
func (c *Client) Registry() *Registry {
	return c.registry
}

// Generate runs the precondition chain and delegates to the resolved adapter.
// The gates fire in a strict order so every failure is attributed to exactly
// one cause: malformed input, then unknown model, then unavailable provider,
// then whatever the adapter reports. A request that fails an early gate never
// reaches a later one, and no network call is made before gate three passes.
func (c *Client) Generate(ctx context.Context, in GenerateInput) *models.GenerationResponse {
	if strings.TrimSpace(in.Prompt) == "" {
		return models.NewFailure("", in.Model, models.ErrCodeInvalidRequest, "prompt is required")
	}
	if strings.TrimSpace(in.Model) == "" {
		return models.NewFailure("", "", models.ErrCodeInvalidRequest, "model is required")
	}
	ratio, err := models.ParseAspectRatio(in.AspectRatio)
	if err != nil {
		return models.NewFailure("", in.Model, models.ErrCodeInvalidRequest, err.Error())
	}

	provider, ok := c.registry.ProviderForModel(in.Model)
	if !ok {
		return models.NewFailure("", in.Model, models.ErrCodeModelNotFound,
			fmt.Sprintf("no provider found for model %q", in.Model))
	}

	if err := provider.Availability(); err != nil {
		c.logger.Warnf("provider %q unavailable: %v", provider.ID(), err)
		return models.NewFailure(provider.ID(), in.Model, models.ErrCodeProviderUnavailable, err.Error())
	}

	req := &models.GenerationRequest{
		Prompt:         in.Prompt,
		Model:          in.Model,
		AspectRatio:    ratio,
		Style:          in.Style,
		NegativePrompt: in.NegativePrompt,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debugf("generating with provider %q model %q ratio %s", provider.ID(), req.Model, req.AspectRatio)
	resp := provider.Generate(ctx, req)
	if !resp.Success {
		c.logger.Debugf("generation failed: provider %q model %q: %s", resp.Provider, resp.Model, resp.Error)
	}
	return resp
}

// GenerateBatch runs several generations concurrently and returns their
// results in input order. Individual failures stay response-shaped, so one
// bad request never aborts its siblings.
func (c *Client) GenerateBatch(ctx context.Context, inputs []GenerateInput) []*models.GenerationResponse {
	results := make([]*models.GenerationResponse, len(inputs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.maxConcurrent)
	for i, in := range inputs {
		i, in := i, in
		eg.Go(func() error {
			if c.limiter != nil {
				if err := c.limiter.Wait(egCtx); err != nil {
					results[i] = models.NewFailure("", in.Model, models.ErrCodeTimeout, err.Error())
					return nil
				}
			}
			results[i] = c.Generate(egCtx, in)
			return nil
		})
	}
	_ = eg.Wait()
	return results
}
