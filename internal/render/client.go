// Package render is the HTTP client for the external document renderer that turns an
// offer summary into a PDF or DOCX file.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"offer_summary_backend/internal/offersummary"
	"offer_summary_backend/platform/config"
)

// Format is a document format supported by the renderer.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

const maxErrorBody = 2048

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatPDF:
		return FormatPDF, true
	case FormatDOCX:
		return FormatDOCX, true
	default:
		return "", false
	}
}

// ContentType returns the MIME type of documents in this format.
func (f Format) ContentType() string {
	if f == FormatDOCX {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/pdf"
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName returns the download name: nabidka-<code>.pdf for offers, cenik-<code>.docx for price lists.
func (f Format) FileName(offerCode string) string {
	base := "nabidka"
	if f == FormatDOCX {
		base = "cenik"
	}
	code := strings.Trim(unsafeFileChars.ReplaceAllString(offerCode, "-"), "-")
	if code == "" || offerCode == offersummary.NotProvided {
		return base + "." + string(f)
	}
	return base + "-" + code + "." + string(f)
}

// Document is a rendered file.
type Document struct {
	Data        []byte
	ContentType string
	FileName    string
}

// Request is the body posted to the renderer.
type Request struct {
	Template offersummary.Template      `json:"template"`
	Summary  *offersummary.OfferSummary `json:"summary"`
	Overview offersummary.Overview      `json:"overview"`
}

// Client posts summaries to the renderer.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a renderer client from configuration.
func New(cfg config.RendererConfig) *Client {
	timeout := cfg.GetRendererTimeout()
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.GetRendererURL(), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Render asks the renderer for a document of the given format.
func (c *Client) Render(ctx context.Context, format Format, req Request) (*Document, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode render request: %w", err)
	}

	data, err := c.doPost(ctx, "/documents/"+string(format), payload)
	if err != nil {
		return nil, err
	}

	code := offersummary.NotProvided
	if req.Summary != nil {
		code = req.Summary.OfferCode
	}
	return &Document{
		Data:        data,
		ContentType: format.ContentType(),
		FileName:    format.FileName(code),
	}, nil
}

// doPost sends a POST request and reads the response body.
func (c *Client) doPost(ctx context.Context, path string, payload []byte) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("renderer %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("renderer %s returned %d: %s", path, resp.StatusCode, string(errBody))
	}

	result, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", path, err)
	}
	return result, nil
}
