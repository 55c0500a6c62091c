// Package summarizer is the HTTP client for the external analysis service.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"

	"lexbrief/internal/config"
	"lexbrief/internal/domain"
	"lexbrief/internal/port"
	"lexbrief/internal/trace"
)

const (
	docxPath        = "/summarize/docx"
	formFieldFile   = "file"
	maxErrorBodyLen = 64 * 1024
)

// Client calls the analysis service under a single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client from the remote service config.
func NewClient(cfg *config.RemoteConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: newHTTPClient(cfg.Timeout),
	}
}

// NewClientWithHTTP creates a Client with a caller-supplied http.Client (for testing).
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = newHTTPClient(0)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

var _ port.Summarizer = (*Client)(nil)

// Summarize posts the document as multipart field "file" to the profile's
// path and decodes the JSON object it answers with.
func (c *Client) Summarize(ctx context.Context, profile domain.UploadProfile, file port.FileInput) (map[string]interface{}, error) {
	resp, err := c.postFile(ctx, profile.Path, file)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readRemoteError(resp)
	}

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.RemoteError{
			Status:  http.StatusBadGateway,
			Message: "The analysis service returned an unreadable response. Please try again.",
		}
	}
	if out == nil {
		out = map[string]interface{}{}
	}
	return out, nil
}

// SummarizeDocx posts the document to /summarize/docx and hands back the
// response body for pass-through download.
func (c *Client) SummarizeDocx(ctx context.Context, file port.FileInput) (*port.DocxStream, error) {
	resp, err := c.postFile(ctx, docxPath, file)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		return nil, readRemoteError(resp)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return &port.DocxStream{
		Body:          resp.Body,
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		FileName:      dispositionFileName(resp.Header.Get("Content-Disposition")),
	}, nil
}

// Ping succeeds when the service answers at all, whatever the status.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) postFile(ctx context.Context, relPath string, file port.FileInput) (*http.Response, error) {
	body, contentType, err := multipartBody(file)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, relPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return resp, nil
}

// newRequest joins relPath onto the base URL, keeping a trailing slash
// (the legal flow posts to "/upload/").
func (c *Client) newRequest(ctx context.Context, method, relPath string, body io.Reader) (*http.Request, error) {
	if strings.Contains(relPath, "?") {
		return nil, fmt.Errorf("summarizer: relPath must not contain a query string: %s", relPath)
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing remote base URL: %w", err)
	}
	if relPath != "" && relPath != "/" {
		joined := path.Join(base.Path, relPath)
		if strings.HasSuffix(relPath, "/") {
			joined += "/"
		}
		base.Path = joined
	} else if base.Path == "" {
		base.Path = "/"
	}
	req, err := http.NewRequestWithContext(ctx, method, base.String(), body)
	if err != nil {
		return nil, err
	}
	if requestID := trace.RequestID(ctx); requestID != "" {
		req.Header.Set(trace.HeaderRequestID, requestID)
	}
	return req, nil
}

func multipartBody(file port.FileInput) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		formFieldFile, escapeQuotes(file.FileName)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func dispositionFileName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// readRemoteError builds a RemoteError from a non-2xx response. The message
// comes from a JSON "detail" field when present: a string, an object with
// "message", or a list of validation entries with "msg".
func readRemoteError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	msg := detailMessage(body)
	if msg == "" {
		msg = GenericMessage(resp.StatusCode)
	}
	return &domain.RemoteError{Status: resp.StatusCode, Message: msg}
}

func detailMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Detail, &obj); err == nil && strings.TrimSpace(obj.Message) != "" {
		return strings.TrimSpace(obj.Message)
	}

	var list []struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Detail, &list); err == nil {
		for _, item := range list {
			if m := strings.TrimSpace(item.Msg); m != "" {
				return m
			}
			if m := strings.TrimSpace(item.Message); m != "" {
				return m
			}
		}
	}
	return ""
}

// GenericMessage is the fallback text for a status without a usable detail.
func GenericMessage(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "The document could not be processed. Please check the file format and try again."
	case status == http.StatusRequestEntityTooLarge:
		return "The file is too large for the analysis service."
	case status == http.StatusUnprocessableEntity:
		return "The uploaded file does not appear to be a legal document."
	case status == http.StatusTooManyRequests:
		return "The analysis service is busy. Please try again in a moment."
	case status >= 500:
		return "The analysis service is temporarily unavailable. Please try again later."
	default:
		return fmt.Sprintf("Upload failed (HTTP %d). Please try again.", status)
	}
}
