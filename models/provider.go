package models

// ModelInfo describes one model a provider offers. Defined at provider
// construction time and never mutated.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProviderInfo is a provider's public descriptor for discovery listings.
// Available is computed freshly per listing call and never cached, since
// credentials can change between calls.
type ProviderInfo struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Models    []ModelInfo `json:"models"`
	Available bool        `json:"available"`
}

// AvailableModel is one entry of the flattened "what can I generate with
// right now" listing.
type AvailableModel struct {
	ModelID      string `json:"modelId"`
	ModelName    string `json:"modelName"`
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
}
