// Package gemini implements the generation contract on top of Google's
// Gemini API via the official genai SDK.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/davinci-studio/imagine/models"
)

const (
	// ProviderID is the stable registry id of this adapter.
	ProviderID   = "gemini"
	providerName = "Google Gemini"

	apiKeyEnv = "GEMINI_API_KEY"
)

// wireModels maps studio model ids to the vendor's own model names. Ids
// missing from the table fall back to defaultWireModel rather than failing;
// the fallback keeps older clients working when the catalog rotates.
var wireModels = map[string]string{
	"gemini-2.5-flash-image": "gemini-2.5-flash-image-preview",
	"gemini-2.0-flash-image": "gemini-2.0-flash-preview-image-generation",
}

const defaultWireModel = "gemini-2.5-flash-image-preview"

var catalog = []models.ModelInfo{
	{
		ID:          "gemini-2.5-flash-image",
		Name:        "Gemini 2.5 Flash Image",
		Description: "Fast conversational image generation",
	},
	{
		ID:          "gemini-2.0-flash-image",
		Name:        "Gemini 2.0 Flash Image",
		Description: "Previous generation image model",
	},
}

// Provider is the Gemini-backed adapter. The credential is read from the
// environment on every call, never cached, so a key provisioned after startup
// takes effect without restarting; the genai client is constructed per call
// for the same reason.
type Provider struct{}

// New creates the Gemini provider. A missing API key is not an error here;
// it surfaces through Availability.
func New() *Provider {
	return &Provider{}
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

// Availability is a cheap local check: it verifies the credential is present
// and never touches the network.
func (p *Provider) Availability() error {
	if p.apiKey() == "" {
		return fmt.Errorf("%s is not configured", apiKeyEnv)
	}
	return nil
}

// Generate issues one content call and scans the response for inline image
// data. All failure paths are converted into failure-shaped responses; this
// method never panics and never returns an error.
func (p *Provider) Generate(ctx context.Context, req *models.GenerationRequest) *models.GenerationResponse {
	if err := p.Availability(); err != nil {
		return p.failure(req.Model, models.ErrCodeProviderUnavailable, err.Error())
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey()))
	if err != nil {
		return p.failure(req.Model, models.ErrCodeProviderError, err.Error())
	}
	defer client.Close()

	model := client.GenerativeModel(wireModel(req.Model))
	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return p.failure(req.Model, models.ErrCodeTimeout, "request to Gemini timed out")
		}
		return p.failure(req.Model, models.ErrCodeProviderError, err.Error())
	}

	imageURL, text := extractImage(resp)
	if imageURL == "" {
		if text != "" {
			// The model answered with prose instead of pixels; the prose is
			// the most useful failure reason we have.
			return p.failure(req.Model, models.ErrCodeProviderError, text)
		}
		return p.failure(req.Model, models.ErrCodeProviderError, "no image in response")
	}

	return models.NewSuccess(ProviderID, req.Model, imageURL).
		WithMetadata("aspectRatio", string(req.AspectRatio)).
		WithMetadata("style", req.Style)
}

func (p *Provider) failure(model string, code models.ErrorCode, msg string) *models.GenerationResponse {
	return models.NewFailure(ProviderID, model, code, msg)
}

// wireModel resolves a studio model id to the vendor's model name, falling
// back to defaultWireModel for unmapped ids.
func wireModel(modelID string) string {
	if name, ok := wireModels[modelID]; ok {
		return name
	}
	return defaultWireModel
}

// buildPrompt folds the style preset, aspect ratio and negative prompt into
// a single text instruction, since the vendor takes one prompt string.
func buildPrompt(req *models.GenerationRequest) string {
	var b strings.Builder
	if req.Style != "" {
		fmt.Fprintf(&b, "%s style: ", req.Style)
	}
	b.WriteString(req.Prompt)
	fmt.Fprintf(&b, " (aspect ratio %s)", req.AspectRatio)
	if req.NegativePrompt != "" {
		fmt.Fprintf(&b, ". Avoid: %s", req.NegativePrompt)
	}
	return b.String()
}

// extractImage walks the response candidates and returns a data URI for the
// first inline image part, plus any accumulated text parts for diagnostics.
func extractImage(resp *genai.GenerateContentResponse) (imageURL, text string) {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			switch v := part.(type) {
			case genai.Blob:
				if imageURL == "" && len(v.Data) > 0 {
					mime := v.MIMEType
					if mime == "" {
						mime = "image/png"
					}
					imageURL = fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(v.Data))
				}
			case genai.Text:
				sb.WriteString(string(v))
			}
		}
	}
	return imageURL, strings.TrimSpace(sb.String())
}
