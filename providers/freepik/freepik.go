// Package freepik implements the generation contract against Freepik's
// text-to-image REST API.
package freepik

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/davinci-studio/imagine/models"
)

const (
	// ProviderID is the stable registry id of this adapter.
	ProviderID   = "freepik"
	providerName = "Freepik"

	apiKeyEnv      = "FREEPIK_API_KEY"
	defaultBaseURL = "https://api.freepik.com/v1/ai/text-to-image"
)

// engines maps studio model ids to Freepik engine names. Unmapped ids use
// defaultEngine.
var engines = map[string]string{
	"freepik-mystic":  "mystic",
	"freepik-classic": "classic-fast",
	"freepik-flux":    "flux-dev",
}

const defaultEngine = "mystic"

// dimensions translates an aspect ratio into explicit pixel sizes: the larger
// axis is 1024 and the smaller one is scaled down proportionally.
var dimensions = map[models.AspectRatio][2]int{
	models.AspectSquare:    {1024, 1024},
	models.AspectWide:      {1024, 576},
	models.AspectTall:      {576, 1024},
	models.AspectLandscape: {1024, 768},
	models.AspectPortrait:  {768, 1024},
}

var catalog = []models.ModelInfo{
	{
		ID:          "freepik-mystic",
		Name:        "Freepik Mystic",
		Description: "Photorealistic flagship engine",
	},
	{
		ID:          "freepik-classic",
		Name:        "Freepik Classic",
		Description: "Fast general-purpose engine",
	},
	{
		ID:          "freepik-flux",
		Name:        "Freepik Flux",
		Description: "Flux-based artistic engine",
	},
}

// Provider is the Freepik-backed adapter. The credential is read from the
// environment on every call so a key provisioned after startup takes effect
// without restarting.
type Provider struct {
	baseURL string
	client  *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the vendor endpoint. Used by tests.
func WithBaseURL(url string) Option {
	return func(p *Provider) { p.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// New creates the Freepik provider. A missing API key is not an error here;
// it surfaces through Availability.
func New(opts ...Option) *Provider {
	p := &Provider{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) apiKey() string { return os.Getenv(apiKeyEnv) }

func (p *Provider) ID() string   { return ProviderID }
func (p *Provider) Name() string { return providerName }

// Models returns the static model catalog.
func (p *Provider) Models() []models.ModelInfo {
	out := make([]models.ModelInfo, len(catalog))
	copy(out, catalog)
	return out
}

// SupportsModel reports whether modelID is in this provider's catalog.
func (p *Provider) SupportsModel(modelID string) bool {
	for _, m := range catalog {
		if m.ID == modelID {
			return true
		}
	}
	return false
}

// Availability is a cheap local credential check; no network probe.
func (p *Provider) Availability() error {
	if p.apiKey() == "" {
		return fmt.Errorf("%s is not configured", apiKeyEnv)
	}
	return nil
}

type generateBody struct {
	Prompt         string        `json:"prompt"`
	NegativePrompt string        `json:"negative_prompt,omitempty"`
	Styling        *styling      `json:"styling,omitempty"`
	Image          imageSettings `json:"image"`
	Engine         string        `json:"engine"`
	NumImages      int           `json:"num_images"`
}

type styling struct {
	Style string `json:"style"`
}

type imageSettings struct {
	Size size `json:"size"`
}

type size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type generateResult struct {
	Data []struct {
		Base64 string `json:"base64"`
		URL    string `json:"url"`
	} `json:"data"`
	Message string `json:"message"`
}

// Generate performs one text-to-image call. All failure paths are converted
// into failure-shaped responses; this method never returns an error.
func (p *Provider) Generate(ctx context.Context, req *models.GenerationRequest) *models.GenerationResponse {
	if err := p.Availability(); err != nil {
		return p.failure(req.Model, models.ErrCodeProviderUnavailable, err.Error())
	}

	width, height := pixelSize(req.AspectRatio)
	body := generateBody{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Image:          imageSettings{Size: size{Width: width, Height: height}},
		Engine:         engine(req.Model),
		NumImages:      1,
	}
	if req.Style != "" {
		body.Styling = &styling{Style: req.Style}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return p.failure(req.Model, models.ErrCodeProviderError, err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return p.failure(req.Model, models.ErrCodeProviderError, err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-freepik-api-key", p.apiKey())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return p.failure(req.Model, models.ErrCodeTimeout, "request to Freepik timed out")
		}
		return p.failure(req.Model, models.ErrCodeProviderError, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return p.failure(req.Model, models.ErrCodeProviderError, err.Error())
	}

	var result generateResult
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if json.Unmarshal(respBody, &result) == nil && result.Message != "" {
			return p.failure(req.Model, models.ErrCodeProviderError, result.Message)
		}
		return p.failure(req.Model, models.ErrCodeProviderError, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return p.failure(req.Model, models.ErrCodeProviderError, err.Error())
	}
	if len(result.Data) == 0 {
		return p.failure(req.Model, models.ErrCodeProviderError, "no image in response")
	}

	imageURL := result.Data[0].URL
	if b64 := result.Data[0].Base64; imageURL == "" && b64 != "" {
		imageURL = "data:image/png;base64," + b64
	}
	if imageURL == "" {
		return p.failure(req.Model, models.ErrCodeProviderError, "no image in response")
	}

	return models.NewSuccess(ProviderID, req.Model, imageURL).
		WithMetadata("aspectRatio", string(req.AspectRatio)).
		WithMetadata("width", width).
		WithMetadata("height", height)
}

func (p *Provider) failure(model string, code models.ErrorCode, msg string) *models.GenerationResponse {
	return models.NewFailure(ProviderID, model, code, msg)
}

// engine resolves a studio model id to a Freepik engine name, falling back
// to defaultEngine for unmapped ids.
func engine(modelID string) string {
	if e, ok := engines[modelID]; ok {
		return e
	}
	return defaultEngine
}

// pixelSize resolves an aspect ratio into explicit dimensions; unknown ratios
// fall back to square, though normalization upstream makes that unreachable.
func pixelSize(ratio models.AspectRatio) (width, height int) {
	if dims, ok := dimensions[ratio]; ok {
		return dims[0], dims[1]
	}
	return 1024, 1024
}
