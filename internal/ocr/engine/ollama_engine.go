package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	imgproc "identity-ocr/internal/image"
)

type OllamaEngine struct {
	baseURL string
	model   string
	client  *http.Client
}

type OllamaRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
	Stream bool     `json:"stream"`
}

type OllamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.2-vision"
)

const transcribePrompt = `
You are an OCR engine.
The image is a scanned identity document (Aadhaar, PAN, Passport or Driving License).

Transcribe every piece of printed text exactly as it appears:

1. Keep the original line breaks, one printed line per output line.
2. Keep labels and separators such as "Name:" or "DOB:".
3. Do not translate, correct, summarise or reformat anything.

Return only the transcribed text, with no explanations and no markdown.
`

func NewOllamaEngine(baseURL, model string) *OllamaEngine {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}

	return &OllamaEngine{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (o *OllamaEngine) Name() string { return "ollama" }

func (o *OllamaEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	imageData, err := imgproc.EncodePNG(img)
	if err != nil {
		return "", err
	}

	request := OllamaRequest{
		Model:  o.model,
		Prompt: transcribePrompt,
		Images: []string{base64.StdEncoding.EncodeToString(imageData)},
		Stream: false,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var ollamaResp OllamaResponse
	if err := json.Unmarshal(body, &ollamaResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return cleanTranscript(ollamaResp.Response), nil
}

func (o *OllamaEngine) Close() error {
	return nil
}

// cleanTranscript drops a surrounding markdown code fence, which vision
// models add despite being told not to, and normalises line endings.
func cleanTranscript(input string) string {
	text := strings.ReplaceAll(input, "\r\n", "\n")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "```") {
		return text
	}
	// opening fence may carry a language tag
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
