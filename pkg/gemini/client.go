package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultModel   = "gemini-1.5-flash"

	// VideoMimeType is sent with every video link; the API resolves YouTube
	// URLs itself.
	VideoMimeType = "video/mp4"
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey  string
	model   string
	apiBase string
	client  *http.Client
}

// NewClient creates a Gemini client. An empty model selects DefaultModel.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		apiBase: defaultAPIBase,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBaseURL points the client at another models endpoint (proxies, tests).
func (c *Client) SetBaseURL(base string) {
	if base != "" {
		c.apiBase = strings.TrimRight(base, "/")
	}
}

// APIError captures non-200 responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API error (status %d): %s", e.StatusCode, e.Body)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text     string    `json:"text,omitempty"`
	FileData *fileData `json:"file_data,omitempty"`
}

type fileData struct {
	MimeType string `json:"mime_type"`
	FileURI  string `json:"file_uri"`
}

type responsePart struct {
	Text string `json:"text"`
}

type candidate struct {
	Content struct {
		Parts []responsePart `json:"parts"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}

type generateResponse struct {
	Candidates     []candidate `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

// GenerateFromVideo sends prompt together with a video reference and returns
// the concatenated text of the first candidate.
func (c *Client) GenerateFromVideo(ctx context.Context, prompt, fileURI string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini API key not configured")
	}

	reqBody := generateRequest{
		Contents: []content{
			{
				Parts: []part{
					{Text: prompt},
					{
						FileData: &fileData{
							MimeType: VideoMimeType,
							FileURI:  fileURI,
						},
					},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.apiBase, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyStr := string(bodyBytes)
		if len(bodyStr) > 200 {
			bodyStr = bodyStr[:200] + "...(truncated)"
		}
		return "", &APIError{StatusCode: resp.StatusCode, Body: bodyStr}
	}

	var genResp generateResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if genResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("content blocked: %s", genResp.PromptFeedback.BlockReason)
	}

	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates returned")
	}

	cand := genResp.Candidates[0]
	if cand.FinishReason == "SAFETY" {
		return "", fmt.Errorf("response blocked by safety filters")
	}
	if len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("no content parts in response")
	}

	var text strings.Builder
	for _, p := range cand.Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}
