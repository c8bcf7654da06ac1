// Package generator is the HTTP adapter for the remote document-generation
// service. A submission either yields the whole response body as a binary
// document or resolves to exactly one user-visible message; the message is
// extracted from the error body through an ordered chain of attempts, and
// failures inside the extraction itself are logged, never surfaced.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
)

// GenerationError carries the single message shown to the user for a failed
// attempt. StatusCode is zero when no response was received at all.
type GenerationError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generate: %s: %v", e.Message, e.Err)
	}
	return "generate: " + e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Client posts submission payloads to the generation service.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient builds a client for the service at baseURL. A zero timeout
// leaves the transport's default behavior in place; no retry or
// cancellation policy is layered on top.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// Generate issues one POST /generate and resolves it to a terminal outcome.
// Every returned error is a *GenerationError whose Message is safe to show.
func (c *Client) Generate(ctx context.Context, p domain.SubmissionPayload) (*domain.GeneratedDocument, error) {
	body, contentType, err := EncodeMultipart(p)
	if err != nil {
		return nil, &GenerationError{Message: domain.MsgGenerationFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", body)
	if err != nil {
		return nil, &GenerationError{Message: domain.MsgGenerationFailed, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.hc.Do(req)
	if err != nil {
		// No response at all: connection refused, DNS, timeout below HTTP.
		return nil, &GenerationError{Message: domain.MsgServerUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GenerationError{
			Message:    resolveErrorMessage(resp.Body),
			StatusCode: resp.StatusCode,
		}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		// The response died mid-body; treat it like never having arrived.
		return nil, &GenerationError{Message: domain.MsgServerUnavailable, StatusCode: resp.StatusCode, Err: err}
	}
	return &domain.GeneratedDocument{Name: domain.GeneratedFilename, Content: content}, nil
}

// messageExtractors are tried in order against the error body; the first
// to produce a message wins. Order matters: detail.error outranks the
// top-level error field.
var messageExtractors = []func(body []byte) (string, bool){
	detailErrorMessage,
	topErrorMessage,
}

// resolveErrorMessage reads a non-2xx body and walks the extraction chain.
// Anything that goes wrong along the way is logged and collapses to the
// generic message.
func resolveErrorMessage(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		slog.Warn("could not read generation error body", "err", err)
		return domain.MsgGenerationFailed
	}
	for _, extract := range messageExtractors {
		if msg, ok := extract(body); ok {
			return msg
		}
	}
	if !json.Valid(body) {
		slog.Warn("generation error body is not JSON", "bytes", len(body))
	}
	return domain.MsgGenerationFailed
}

// detailErrorMessage matches the {"detail":{"error":"..."}} shape.
func detailErrorMessage(body []byte) (string, bool) {
	var v struct {
		Detail struct {
			Error *string `json:"error"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &v); err != nil || v.Detail.Error == nil || *v.Detail.Error == "" {
		return "", false
	}
	return *v.Detail.Error, true
}

// topErrorMessage matches the {"error":"..."} shape.
func topErrorMessage(body []byte) (string, bool) {
	var v struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &v); err != nil || v.Error == nil || *v.Error == "" {
		return "", false
	}
	return *v.Error, true
}
