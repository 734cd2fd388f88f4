package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Labels are the ripeness categories the fallback draws from. The analysis
// endpoint may return anything; whatever label arrives is stored as-is.
var Labels = []string{"Ripe", "Unripe", "Overripe"}

type Result struct {
	Label       string
	Confidence  float64
	Explanation string
}

type Classifier interface {
	Classify(ctx context.Context, imagePath string) (Result, error)
}

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// HTTPClassifier posts the image to an external analysis endpoint as a
// base64 JSON payload and reads back a ripeness verdict.
type HTTPClassifier struct {
	cfg    Config
	client *http.Client
}

func NewHTTP(cfg Config) *HTTPClassifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPClassifier{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

type classifyRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

type classifyResponse struct {
	Ripeness    string  `json:"ripeness"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

func (c *HTTPClassifier) Classify(ctx context.Context, imagePath string) (Result, error) {
	if c.cfg.URL == "" {
		return Result{}, fmt.Errorf("classifier: no endpoint configured")
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return Result{}, fmt.Errorf("classifier: read image: %w", err)
	}
	body, _ := json.Marshal(classifyRequest{
		Image:    base64.StdEncoding.EncodeToString(data),
		MimeType: mimeTypeFor(imagePath),
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("classifier: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("classifier: endpoint returned %d", resp.StatusCode)
	}
	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("classifier: decode response: %w", err)
	}
	if out.Ripeness == "" || strings.EqualFold(out.Ripeness, "unknown") {
		return Result{}, fmt.Errorf("classifier: no usable verdict")
	}
	return Result{Label: out.Ripeness, Confidence: out.Confidence, Explanation: out.Explanation}, nil
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
