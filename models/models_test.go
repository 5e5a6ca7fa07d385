package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAspectRatio(t *testing.T) {
	ratio, err := ParseAspectRatio("")
	require.NoError(t, err)
	assert.Equal(t, AspectSquare, ratio)

	for _, known := range AspectRatios {
		ratio, err := ParseAspectRatio(string(known))
		require.NoError(t, err)
		assert.Equal(t, known, ratio)
	}

	_, err = ParseAspectRatio("21:9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "21:9")
}

func TestResponseShapeInvariant(t *testing.T) {
	success := NewSuccess("gemini", "gemini-2.5-flash-image", "data:image/png;base64,xx")
	assert.True(t, success.Success)
	assert.NotEmpty(t, success.ImageURL)
	assert.Empty(t, success.Error)
	assert.Empty(t, success.ErrorCode)
	assert.Equal(t, "gemini", success.Provider)
	assert.Equal(t, "gemini-2.5-flash-image", success.Model)
	assert.False(t, success.GeneratedAt.IsZero())

	failure := NewFailure("freepik", "freepik-mystic", ErrCodeProviderError, "no image in response")
	assert.False(t, failure.Success)
	assert.Empty(t, failure.ImageURL)
	assert.Equal(t, "no image in response", failure.Error)
	assert.Equal(t, ErrCodeProviderError, failure.ErrorCode)
	assert.Equal(t, "freepik", failure.Provider)
	assert.False(t, failure.GeneratedAt.IsZero())
}

func TestResponseJSONShape(t *testing.T) {
	resp := NewSuccess("gemini", "m", "https://img.example/a.png").
		WithMetadata("aspectRatio", "16:9")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "https://img.example/a.png", decoded["imageUrl"])
	assert.NotContains(t, decoded, "error")
	assert.NotContains(t, decoded, "errorCode")
	assert.Contains(t, decoded, "generatedAt")

	// generatedAt must be RFC 3339 so non-Go callers can parse it.
	_, err = time.Parse(time.RFC3339, decoded["generatedAt"].(string))
	assert.NoError(t, err)

	meta := decoded["metadata"].(map[string]any)
	assert.Equal(t, "16:9", meta["aspectRatio"])
}

func TestFailureJSONOmitsImageURL(t *testing.T) {
	data, err := json.Marshal(NewFailure("freepik", "m", ErrCodeTimeout, "request to Freepik timed out"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "imageUrl")
	assert.Equal(t, "request to Freepik timed out", decoded["error"])
	assert.Equal(t, "timeout", decoded["errorCode"])
	assert.Equal(t, "freepik", decoded["provider"])
	assert.Equal(t, "m", decoded["model"])
}
