// Package aiml is the client for the AIML image-generation API. A portrait
// generation is a single slow, costly, non-idempotent call: the client never
// retries on its own.
package aiml

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultStyle = "renaissance"

const defaultModel = "google/gemini-2.5-flash-image-edit"

var stylePrompts = map[string]string{
	"renaissance": "Transform this pet photo into a majestic Renaissance oil painting portrait. The pet should be dressed as a noble aristocrat wearing ornate royal garments with rich velvet and gold embroidery. Seated on a luxurious velvet cushion with gold tassels. Dramatic Rembrandt lighting with a rich dark background. Museum-quality fine art style reminiscent of 16th century Italian masters. Highly detailed fur texture blended seamlessly with the clothing. Warm golden tones.",
	"baroque":     "Transform this pet photo into an opulent Baroque-era portrait painting. The pet should be dressed as a wealthy merchant prince wearing extravagant silk robes with lace collar and jeweled accessories. Dramatic chiaroscuro lighting in the style of Caravaggio. Rich, dark velvet background with a hint of draped curtain. Gilt frame worthy composition. Lavish detail in fabrics and textures.",
	"victorian":   "Transform this pet photo into a distinguished Victorian-era portrait. The pet should be dressed as a proper British aristocrat wearing a fitted waistcoat, cravat, and top hat or bonnet. Seated in an ornate wingback chair. Soft, refined lighting. Muted earth tones with deep greens and burgundy. Prim and proper pose. Style of John Singer Sargent.",
}

// KnownStyle reports whether style has a dedicated prompt.
func KnownStyle(style string) bool {
	_, ok := stylePrompts[style]
	return ok
}

// PromptForStyle returns the prompt for a style, falling back to the default
// style for unknown values.
func PromptForStyle(style string) string {
	if prompt, ok := stylePrompts[style]; ok {
		return prompt
	}
	return stylePrompts[DefaultStyle]
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   defaultModel,
		httpClient: &http.Client{
			// Generation takes tens of seconds; leave ample room.
			Timeout: 120 * time.Second,
		},
	}
}

type generationRequest struct {
	Model     string   `json:"model"`
	ImageURLs []string `json:"image_urls"`
	Prompt    string   `json:"prompt"`
	NumImages int      `json:"num_images"`
}

type generationResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// GeneratePortrait sends the source image as a data URL along with the
// style prompt and returns the generated image bytes. Any non-200 response
// is a hard failure carrying the upstream status.
func (c *Client) GeneratePortrait(imageData []byte, mimeType, style string) ([]byte, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	requestBody := generationRequest{
		Model:     c.model,
		ImageURLs: []string{dataURL},
		Prompt:    PromptForStyle(style),
		NumImages: 1,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/images/generations"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aiml api error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result generationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("no image generated in response, body: %s", string(body))
	}

	// The API delivers the image either inline or as a fetchable URL.
	if result.Data[0].B64JSON != "" {
		decoded, err := base64.StdEncoding.DecodeString(result.Data[0].B64JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode inline image: %w", err)
		}
		return decoded, nil
	}

	if result.Data[0].URL != "" {
		return c.downloadImage(result.Data[0].URL)
	}

	return nil, fmt.Errorf("no image generated in response, body: %s", string(body))
}

func (c *Client) downloadImage(downloadURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to download generated image: status %d, body: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
