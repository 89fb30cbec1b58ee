package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "http://localhost:8000"
	defaultAssetURL = "http://localhost:5173"
)

// Client talks to the lead-intelligence backend and the static asset origin.
// Every method is a single attempt with no retries; a request, once
// dispatched, runs to completion or failure.
type Client struct {
	baseURL  string
	assetURL string
	http     *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the backend base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithAssetBaseURL overrides the origin serving the sample and template files.
func WithAssetBaseURL(url string) Option {
	return func(c *Client) { c.assetURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a backend client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		assetURL: defaultAssetURL,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckHealth performs the single best-effort availability probe.
func (c *Client) CheckHealth(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return Health{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Health{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Health{}, serviceError(resp)
	}
	var h Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return Health{}, fmt.Errorf("decode health: %w", err)
	}
	return h, nil
}

// Process submits the lead file plus form parameters for scoring.
func (c *Client) Process(ctx context.Context, form ProcessForm) (*ProcessResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", form.FileName)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(form.File); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"target_states": form.TargetStates,
		"brand_name":    form.BrandName,
		"positioning":   form.Positioning,
		"tone":          form.Tone,
		"language":      form.Language,
		"use_ai":        strconv.FormatBool(form.UseAI),
		"ai_limit":      strconv.Itoa(form.AILimit),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/process", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, serviceError(resp)
	}
	var result ProcessResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode process result: %w", err)
	}
	return &result, nil
}

// RefineOutreach regenerates one lead's outreach draft from feedback.
func (c *Client) RefineOutreach(ctx context.Context, reqBody RefineRequest) (RefineResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return RefineResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/refine-outreach", bytes.NewReader(payload))
	if err != nil {
		return RefineResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return RefineResponse{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return RefineResponse{}, serviceError(resp)
	}
	var out RefineResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return RefineResponse{}, fmt.Errorf("decode refine response: %w", err)
	}
	return out, nil
}

// SampleLeads fetches the fixed sample lead file as opaque bytes.
func (c *Client) SampleLeads(ctx context.Context) ([]byte, error) {
	return c.fetchAsset(ctx, "/sample_leads.csv")
}

// LeadTemplate fetches the lead template file as raw text.
func (c *Client) LeadTemplate(ctx context.Context) (string, error) {
	data, err := c.fetchAsset(ctx, "/lead_template.csv")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Client) fetchAsset(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.assetURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, serviceError(resp)
	}
	return io.ReadAll(resp.Body)
}

// serviceError builds a ServiceError, pulling the optional detail field out of
// the response body. A body that is not JSON, or has no detail, yields an
// empty Detail and callers fall back to a generic message.
func serviceError(resp *http.Response) error {
	se := &ServiceError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return se
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		se.Detail = payload.Detail
	}
	return se
}
