package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

// WhisperClient handles communication with a whisper-asr webservice.
type WhisperClient struct {
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *Logger.Logger
}

// NewWhisperClient creates a new Whisper client
func NewWhisperClient(baseURL, language string, timeout time.Duration, logger *Logger.Logger) *WhisperClient {
	return &WhisperClient{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		language: language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (w *WhisperClient) Name() string { return "whisper-http" }

// Transcribe uploads the media file and returns the JSON transcription.
func (w *WhisperClient) Transcribe(ctx context.Context, mediaPath string) ([]byte, error) {
	f, err := os.Open(mediaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open media: %w", err)
	}
	defer f.Close()

	// Create multipart form data
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio_file", filepath.Base(mediaPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to write media data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	query := url.Values{}
	query.Set("encode", "true")
	query.Set("task", "transcribe")
	query.Set("output", "json")
	if w.language != "" {
		query.Set("language", w.language)
	}
	requestURL := fmt.Sprintf("%s/asr?%s", w.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		w.logger.Errorf("Whisper service error (status %d): %s", resp.StatusCode, string(responseBody))
		return nil, fmt.Errorf("whisper service returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	if len(responseBody) == 0 {
		return nil, fmt.Errorf("whisper service returned empty response")
	}
	if !json.Valid(responseBody) {
		return nil, fmt.Errorf("whisper service returned non JSON response (length=%d)", len(responseBody))
	}

	w.logger.Debugf("Whisper transcription received for %s (%d bytes)", mediaPath, len(responseBody))
	return responseBody, nil
}
